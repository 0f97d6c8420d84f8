package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	migrationLockKey = "lock:credential_migration"
	migrationLockTTL = 10 * time.Minute
)

// MigrationLock is a Redis-backed single-flight lock for the credential
// migration batch. The TTL guards against a crashed holder pinning the lock
// forever; a migration outliving it would need manual cleanup.
type MigrationLock struct {
	client *redis.Client
}

// NewMigrationLock creates a MigrationLock wrapping the given Redis client.
func NewMigrationLock(client *redis.Client) *MigrationLock {
	return &MigrationLock{client: client}
}

// Acquire attempts to take the lock. Returns false when another migration
// currently holds it.
func (l *MigrationLock) Acquire(ctx context.Context) (bool, error) {
	ok, err := l.client.SetNX(ctx, migrationLockKey, "1", migrationLockTTL).Result()
	if err != nil {
		return false, fmt.Errorf("acquire migration lock: %w", err)
	}
	return ok, nil
}

// Release drops the lock so the next migration run can proceed.
func (l *MigrationLock) Release(ctx context.Context) error {
	if err := l.client.Del(ctx, migrationLockKey).Err(); err != nil {
		return fmt.Errorf("release migration lock: %w", err)
	}
	return nil
}

package ports

import (
	"context"
	"time"

	"github.com/gympulse/gym-management-api/internal/core/domain"
)

// AuthEventInput is the wire form of an auth event handed to the audit
// dispatcher. Username keys the worker shard so events for one account are
// recorded in order.
type AuthEventInput struct {
	Username  string
	Action    string
	Success   bool
	Reason    string
	RemoteIP  string
	Timestamp time.Time
}

// AuditService records authentication events.
type AuditService interface {
	Record(ctx context.Context, in AuthEventInput) error
}

// AuditRepository persists auth events for later inspection.
type AuditRepository interface {
	Insert(ctx context.Context, event *domain.AuthEvent) error
	ListByUsername(ctx context.Context, username string, limit int64) ([]*domain.AuthEvent, error)
}

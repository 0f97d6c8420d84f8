package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/gympulse/gym-management-api/internal/core/domain"
	"github.com/gympulse/gym-management-api/internal/core/ports"
	"github.com/gympulse/gym-management-api/internal/core/token"
)

// MigrationLock abstracts the single-flight lock (Redis) that serializes
// credential migration across processes.
type MigrationLock interface {
	Acquire(ctx context.Context) (bool, error)
	Release(ctx context.Context) error
}

// AuditSink accepts auth events for asynchronous recording. Enqueue must not
// block the request path.
type AuditSink interface {
	Enqueue(in ports.AuthEventInput)
}

// AuthService implements the stateless session workflow: login, registration,
// token refresh, token validation, and credential migration.
type AuthService struct {
	users ports.UserRepository
	codec *token.Codec
	lock  MigrationLock
	audit AuditSink
	log   zerolog.Logger
}

func NewAuthService(users ports.UserRepository, codec *token.Codec, lock MigrationLock, audit AuditSink, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, codec: codec, lock: lock, audit: audit, log: log}
}

// Login verifies the credential pair and, on success, returns a fresh
// access/refresh token pair plus a sanitized snapshot of the account.
func (s *AuthService) Login(ctx context.Context, username, password string) (*ports.AuthResult, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		s.record(username, domain.AuditLogin, false, "user not found")
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.record(username, domain.AuditLogin, false, "password mismatch")
		return nil, domain.ErrInvalidCredentials
	}

	if !user.IsActive {
		s.record(username, domain.AuditLogin, false, "account inactive")
		return nil, domain.ErrUserInactive
	}

	now := time.Now().UTC()
	if err := s.users.UpdateLastLogin(ctx, user.ID, now); err != nil {
		// Last-write-wins timestamp; losing one update is acceptable.
		s.log.Warn().Err(err).Str("username", username).Msg("failed to update last login")
	}
	user.LastLogin = &now

	result, err := s.issuePair(user)
	if err != nil {
		return nil, err
	}

	s.record(username, domain.AuditLogin, true, "")
	s.log.Info().Str("username", username).Str("role", user.Role).Msg("user authenticated")
	return result, nil
}

// Register creates a new active staff account and logs it in immediately.
// Username uniqueness is checked before email so duplicate reporting is
// deterministic.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
	if !domain.ValidRole(in.Role) {
		return nil, domain.ErrInvalidRole
	}

	taken, err := s.users.ExistsByUsername(ctx, in.Username)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	if taken {
		s.record(in.Username, domain.AuditRegister, false, "duplicate username")
		return nil, domain.ErrDuplicateUsername
	}

	taken, err = s.users.ExistsByEmail(ctx, in.Email)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	if taken {
		s.record(in.Username, domain.AuditRegister, false, "duplicate email")
		return nil, domain.ErrDuplicateEmail
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("register: hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Phone:        in.Phone,
		Role:         in.Role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	result, err := s.issuePair(created)
	if err != nil {
		return nil, err
	}

	s.record(in.Username, domain.AuditRegister, true, "")
	s.log.Info().Str("username", in.Username).Str("role", in.Role).Msg("user registered")
	return result, nil
}

// RefreshToken mints a new access token from a still-valid refresh token.
// The refresh token itself is returned unchanged; it is not rotated.
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*ports.AuthResult, error) {
	claims, err := s.codec.Decode(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidToken, err)
	}

	user, err := s.users.FindByUsername(ctx, claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("%w: unknown subject", domain.ErrInvalidToken)
	}
	if !user.IsActive || !s.codec.IsValid(refreshToken, user.Username) {
		return nil, domain.ErrInvalidToken
	}

	accessToken, err := s.codec.IssueAccess(user.Username, user.Role)
	if err != nil {
		return nil, fmt.Errorf("refresh: %w", err)
	}

	s.record(user.Username, domain.AuditRefresh, true, "")
	s.log.Info().Str("username", user.Username).Msg("access token refreshed")
	return s.result(accessToken, refreshToken, user), nil
}

// ValidateToken reports whether tokenString is valid for its own subject and
// that subject is an active account. Every failure mode yields false; it
// never returns an error.
func (s *AuthService) ValidateToken(ctx context.Context, tokenString string) bool {
	claims, err := s.codec.Decode(tokenString)
	if err != nil {
		return false
	}
	user, err := s.users.FindByUsername(ctx, claims.Subject)
	if err != nil {
		return false
	}
	return user.IsActive && s.codec.IsValid(tokenString, user.Username)
}

// MigrateCredentials re-hashes every stored credential that does not already
// carry a bcrypt prefix. Running it again after all credentials are hashed is
// a no-op. Concurrent runs are rejected via the migration lock.
func (s *AuthService) MigrateCredentials(ctx context.Context) (int, error) {
	acquired, err := s.lock.Acquire(ctx)
	if err != nil {
		return 0, fmt.Errorf("migrate credentials: acquire lock: %w", err)
	}
	if !acquired {
		return 0, domain.ErrMigrationRunning
	}
	defer func() {
		if err := s.lock.Release(context.WithoutCancel(ctx)); err != nil {
			s.log.Warn().Err(err).Msg("failed to release migration lock")
		}
	}()

	users, err := s.users.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("migrate credentials: %w", err)
	}

	migrated := 0
	for _, user := range users {
		if isBcryptHash(user.PasswordHash) {
			continue
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(user.PasswordHash), bcrypt.DefaultCost)
		if err != nil {
			return migrated, fmt.Errorf("migrate credentials: hash for %q: %w", user.Username, err)
		}
		if err := s.users.UpdatePassword(ctx, user.ID, string(hash)); err != nil {
			return migrated, fmt.Errorf("migrate credentials: persist for %q: %w", user.Username, err)
		}
		migrated++
		s.log.Info().Str("username", user.Username).Msg("credential migrated")
	}

	s.record("", domain.AuditMigrate, true, fmt.Sprintf("%d migrated", migrated))
	return migrated, nil
}

func (s *AuthService) issuePair(user *domain.User) (*ports.AuthResult, error) {
	accessToken, err := s.codec.IssueAccess(user.Username, user.Role)
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}
	refreshToken, err := s.codec.IssueRefresh(user.Username)
	if err != nil {
		return nil, fmt.Errorf("issue refresh token: %w", err)
	}
	return s.result(accessToken, refreshToken, user), nil
}

func (s *AuthService) result(accessToken, refreshToken string, user *domain.User) *ports.AuthResult {
	now := time.Now().UTC()
	ttl := s.codec.AccessTTL()
	return &ports.AuthResult{
		Token:        accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(ttl.Seconds()),
		User:         user,
		IssuedAt:     now,
		ExpiresAt:    now.Add(ttl),
	}
}

func (s *AuthService) record(username, action string, success bool, reason string) {
	if s.audit == nil {
		return
	}
	s.audit.Enqueue(ports.AuthEventInput{
		Username:  username,
		Action:    action,
		Success:   success,
		Reason:    reason,
		Timestamp: time.Now().UTC(),
	})
}

// isBcryptHash sniffs the bcrypt version prefix to tell stored hashes apart
// from legacy plaintext credentials.
func isBcryptHash(s string) bool {
	return strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$")
}

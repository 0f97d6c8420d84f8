package ports

import (
	"context"

	"github.com/gympulse/gym-management-api/internal/core/domain"
)

// UserService exposes staff-account administration, restricted to ADMIN
// callers at the API layer. Password hashes never cross this boundary.
type UserService interface {
	List(ctx context.Context) ([]*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	SetActive(ctx context.Context, id int64, active bool) error
	ChangePassword(ctx context.Context, id int64, currentPassword, newPassword string) error
	AuditTrail(ctx context.Context, id int64, limit int64) ([]*domain.AuthEvent, error)
}

package ports

import (
	"context"

	"github.com/gympulse/gym-management-api/internal/core/domain"
)

// MemberRepository defines the persistence interface for gym members.
type MemberRepository interface {
	Create(ctx context.Context, member *domain.Member) (*domain.Member, error)
	FindByID(ctx context.Context, id int64) (*domain.Member, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	List(ctx context.Context, activeOnly bool) ([]*domain.Member, error)
	Update(ctx context.Context, member *domain.Member) (*domain.Member, error)
	SetActive(ctx context.Context, id int64, active bool) error
	Delete(ctx context.Context, id int64) error
}

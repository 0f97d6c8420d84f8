package ports

import (
	"context"

	"github.com/gympulse/gym-management-api/internal/core/domain"
)

// CreateMemberInput carries the fields needed to enroll a new gym member.
type CreateMemberInput struct {
	FirstName        string
	LastName         string
	Email            string
	Phone            string
	DateOfBirth      string
	Address          string
	EmergencyContact string
	EmergencyPhone   string
	MembershipType   string
	StartDate        string
	EndDate          string
	Notes            string
}

// UpdateMemberInput carries optional field updates; nil means "leave as is".
type UpdateMemberInput struct {
	FirstName        *string
	LastName         *string
	Phone            *string
	Address          *string
	EmergencyContact *string
	EmergencyPhone   *string
	MembershipType   *string
	EndDate          *string
	Notes            *string
}

// MemberService exposes the members CRUD used by the protected API surface.
type MemberService interface {
	Create(ctx context.Context, in CreateMemberInput) (*domain.Member, error)
	GetByID(ctx context.Context, id int64) (*domain.Member, error)
	List(ctx context.Context, activeOnly bool) ([]*domain.Member, error)
	Update(ctx context.Context, id int64, in UpdateMemberInput) (*domain.Member, error)
	Deactivate(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}

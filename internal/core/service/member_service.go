package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/gympulse/gym-management-api/internal/core/domain"
	"github.com/gympulse/gym-management-api/internal/core/ports"
)

// MemberService implements the members CRUD on top of the member repository.
type MemberService struct {
	repo ports.MemberRepository
	log  zerolog.Logger
}

func NewMemberService(repo ports.MemberRepository, log zerolog.Logger) *MemberService {
	return &MemberService{repo: repo, log: log}
}

// Create enrolls a new active member after checking the email is unused.
func (s *MemberService) Create(ctx context.Context, in ports.CreateMemberInput) (*domain.Member, error) {
	membership := domain.MembershipType(in.MembershipType)
	if !domain.ValidMembership(membership) {
		return nil, fmt.Errorf("create member: unknown membership type %q", in.MembershipType)
	}

	taken, err := s.repo.ExistsByEmail(ctx, in.Email)
	if err != nil {
		return nil, fmt.Errorf("create member: %w", err)
	}
	if taken {
		return nil, domain.ErrDuplicateMemberEmail
	}

	now := time.Now().UTC()
	member := &domain.Member{
		FirstName:        in.FirstName,
		LastName:         in.LastName,
		Email:            in.Email,
		Phone:            in.Phone,
		DateOfBirth:      in.DateOfBirth,
		Address:          in.Address,
		EmergencyContact: in.EmergencyContact,
		EmergencyPhone:   in.EmergencyPhone,
		MembershipType:   membership,
		StartDate:        in.StartDate,
		EndDate:          in.EndDate,
		Notes:            in.Notes,
		IsActive:         true,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	created, err := s.repo.Create(ctx, member)
	if err != nil {
		return nil, err
	}

	s.log.Info().Int64("member_id", created.ID).Str("membership", string(membership)).Msg("member enrolled")
	return created, nil
}

func (s *MemberService) GetByID(ctx context.Context, id int64) (*domain.Member, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *MemberService) List(ctx context.Context, activeOnly bool) ([]*domain.Member, error) {
	return s.repo.List(ctx, activeOnly)
}

// Update applies the non-nil fields of in to the stored member.
func (s *MemberService) Update(ctx context.Context, id int64, in ports.UpdateMemberInput) (*domain.Member, error) {
	member, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.FirstName != nil {
		member.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		member.LastName = *in.LastName
	}
	if in.Phone != nil {
		member.Phone = *in.Phone
	}
	if in.Address != nil {
		member.Address = *in.Address
	}
	if in.EmergencyContact != nil {
		member.EmergencyContact = *in.EmergencyContact
	}
	if in.EmergencyPhone != nil {
		member.EmergencyPhone = *in.EmergencyPhone
	}
	if in.MembershipType != nil {
		membership := domain.MembershipType(*in.MembershipType)
		if !domain.ValidMembership(membership) {
			return nil, fmt.Errorf("update member: unknown membership type %q", *in.MembershipType)
		}
		member.MembershipType = membership
	}
	if in.EndDate != nil {
		member.EndDate = *in.EndDate
	}
	if in.Notes != nil {
		member.Notes = *in.Notes
	}
	member.UpdatedAt = time.Now().UTC()

	return s.repo.Update(ctx, member)
}

func (s *MemberService) Deactivate(ctx context.Context, id int64) error {
	if err := s.repo.SetActive(ctx, id, false); err != nil {
		return err
	}
	s.log.Info().Int64("member_id", id).Msg("member deactivated")
	return nil
}

func (s *MemberService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Int64("member_id", id).Msg("member deleted")
	return nil
}

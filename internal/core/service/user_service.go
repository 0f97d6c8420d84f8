package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/gympulse/gym-management-api/internal/core/domain"
	"github.com/gympulse/gym-management-api/internal/core/ports"
)

// UserService implements staff-account administration.
type UserService struct {
	users ports.UserRepository
	audit ports.AuditRepository
	log   zerolog.Logger
}

func NewUserService(users ports.UserRepository, audit ports.AuditRepository, log zerolog.Logger) *UserService {
	return &UserService{users: users, audit: audit, log: log}
}

func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.users.List(ctx)
}

func (s *UserService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

// SetActive flips the active flag. Deactivated accounts fail authentication
// on their next login or token validation.
func (s *UserService) SetActive(ctx context.Context, id int64, active bool) error {
	if err := s.users.SetActive(ctx, id, active); err != nil {
		return err
	}
	s.log.Info().Int64("user_id", id).Bool("active", active).Msg("user active flag changed")
	return nil
}

// ChangePassword verifies the current password before storing a new hash.
func (s *UserService) ChangePassword(ctx context.Context, id int64, currentPassword, newPassword string) error {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)) != nil {
		return domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("change password: %w", err)
	}
	if err := s.users.UpdatePassword(ctx, id, string(hash)); err != nil {
		return err
	}

	s.log.Info().Int64("user_id", id).Msg("password changed")
	return nil
}

// AuditTrail returns the most recent auth events for the account, newest
// first.
func (s *UserService) AuditTrail(ctx context.Context, id int64, limit int64) ([]*domain.AuthEvent, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.audit.ListByUsername(ctx, user.Username, limit)
}

package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/gympulse/gym-management-api/internal/core/domain"
	"github.com/gympulse/gym-management-api/internal/core/ports"
)

type auditService struct {
	repo ports.AuditRepository
	log  zerolog.Logger
}

// NewAuditService returns an AuditService that persists auth events.
func NewAuditService(repo ports.AuditRepository, log zerolog.Logger) ports.AuditService {
	return &auditService{repo: repo, log: log}
}

// Record persists a single auth event. Called from dispatcher workers, never
// directly from the request path.
func (s *auditService) Record(ctx context.Context, in ports.AuthEventInput) error {
	event := &domain.AuthEvent{
		Username:  in.Username,
		Action:    in.Action,
		Success:   in.Success,
		Reason:    in.Reason,
		RemoteIP:  in.RemoteIP,
		Timestamp: in.Timestamp,
	}
	if err := s.repo.Insert(ctx, event); err != nil {
		return fmt.Errorf("record auth event: %w", err)
	}

	s.log.Debug().
		Str("username", in.Username).
		Str("action", in.Action).
		Bool("success", in.Success).
		Msg("auth event recorded")
	return nil
}

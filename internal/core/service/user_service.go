package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/stockpanel/admin-api/internal/core/domain"
	"github.com/stockpanel/admin-api/internal/core/ports"
	"github.com/stockpanel/admin-api/internal/pkg/metrics"
)

type UserService struct {
	users    ports.UserRepository
	accounts ports.AccountRepository
	audit    ports.AuditSink
	logger   zerolog.Logger
	now      func() time.Time
}

func NewUserService(users ports.UserRepository, accounts ports.AccountRepository, audit ports.AuditSink, logger zerolog.Logger) *UserService {
	return &UserService{users: users, accounts: accounts, audit: audit, logger: logger, now: time.Now}
}

func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.users.List(ctx)
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	if err := validID(id); err != nil {
		return nil, err
	}
	return s.users.FindByID(ctx, id)
}

// Delete removes a user that owns no account. The user is first dropped from
// every managers list so no account keeps a dangling reference.
func (s *UserService) Delete(ctx context.Context, id, actorID string) error {
	if err := validID(id); err != nil {
		return err
	}
	if _, err := s.users.FindByID(ctx, id); err != nil {
		return err
	}

	owned, err := s.accounts.CountByOwner(ctx, id)
	if err != nil {
		return err
	}
	if owned > 0 {
		return domain.ErrUserOwnsAccounts
	}

	if err := s.accounts.PullManager(ctx, id); err != nil {
		return err
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}

	metrics.ResourcesDeletedTotal.WithLabelValues("user").Inc()
	emit(s.audit, s.now, domain.AuditUserDeleted, id, actorID)
	s.logger.Info().Str("user_id", id).Str("actor_id", actorID).Msg("user deleted")
	return nil
}

package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/stockpanel/admin-api/internal/core/domain"
	"github.com/stockpanel/admin-api/internal/core/ports"
	"github.com/stockpanel/admin-api/internal/pkg/metrics"
)

// AdminService manages admin accounts.
type AdminService struct {
	repo   ports.AdminRepository
	hasher ports.PasswordHasher
	audit  ports.AuditSink
	logger zerolog.Logger
	now    func() time.Time
}

func NewAdminService(repo ports.AdminRepository, hasher ports.PasswordHasher, audit ports.AuditSink, logger zerolog.Logger) *AdminService {
	return &AdminService{repo: repo, hasher: hasher, audit: audit, logger: logger, now: time.Now}
}

func (s *AdminService) List(ctx context.Context) ([]*domain.Admin, error) {
	return s.repo.List(ctx)
}

func (s *AdminService) Get(ctx context.Context, id string) (*domain.Admin, error) {
	if err := validID(id); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

// Create registers a new admin. Field validation happens at the transport
// layer; the password confirmation is checked again here before hashing.
func (s *AdminService) Create(ctx context.Context, input ports.CreateAdminInput) (*domain.Admin, error) {
	if input.Password != input.PasswordConfirm {
		return nil, domain.ErrAdminPasswordsDiffer
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	created, err := s.repo.Create(ctx, &domain.Admin{
		Username:     strings.TrimSpace(input.Username),
		Name:         strings.TrimSpace(input.Name),
		Email:        normalizeEmail(input.Email),
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("email", input.Email).Msg("admin create failed")
		return nil, err
	}

	metrics.AdminsCreatedTotal.Inc()
	emit(s.audit, s.now, domain.AuditAdminCreated, created.ID, input.ActorID)
	s.logger.Info().Str("admin_id", created.ID).Str("actor_id", input.ActorID).Msg("admin created")
	return created, nil
}

// UpdateSettings replaces the caller's username, name and email.
func (s *AdminService) UpdateSettings(ctx context.Context, id string, update ports.ProfileUpdate) (*domain.Admin, error) {
	if err := validID(id); err != nil {
		return nil, err
	}
	update.Username = strings.TrimSpace(update.Username)
	update.Name = strings.TrimSpace(update.Name)
	update.Email = normalizeEmail(update.Email)

	updated, err := s.repo.UpdateProfile(ctx, id, update)
	if err != nil {
		return nil, err
	}

	emit(s.audit, s.now, domain.AuditAdminUpdated, id, id)
	s.logger.Info().Str("admin_id", id).Msg("admin settings updated")
	return updated, nil
}

// UpdatePassword changes the caller's password after checking the current one.
// Nothing is hashed or written unless both checks pass.
func (s *AdminService) UpdatePassword(ctx context.Context, id string, input ports.UpdatePasswordInput) error {
	if err := validID(id); err != nil {
		return err
	}
	if input.NewPassword != input.PasswordConfirm {
		return domain.ErrNewPasswordMismatch
	}

	admin, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !s.hasher.Verify(input.CurrentPassword, admin.PasswordHash) {
		return domain.ErrCurrentPasswordInvalid
	}

	hash, err := s.hasher.Hash(input.NewPassword)
	if err != nil {
		return err
	}
	if err := s.repo.UpdatePassword(ctx, id, hash); err != nil {
		return err
	}

	emit(s.audit, s.now, domain.AuditAdminPasswordChange, id, id)
	s.logger.Info().Str("admin_id", id).Msg("admin password updated")
	return nil
}

func (s *AdminService) Delete(ctx context.Context, id, actorID string) error {
	if err := validID(id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	metrics.ResourcesDeletedTotal.WithLabelValues("admin").Inc()
	emit(s.audit, s.now, domain.AuditAdminDeleted, id, actorID)
	s.logger.Info().Str("admin_id", id).Str("actor_id", actorID).Msg("admin deleted")
	return nil
}

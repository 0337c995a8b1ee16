package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/stockpanel/admin-api/internal/core/domain"
	"github.com/stockpanel/admin-api/internal/core/ports"
	"github.com/stockpanel/admin-api/internal/pkg/metrics"
)

const resetTokenTTL = time.Hour

// AuthDeps groups the collaborators of AuthService.
type AuthDeps struct {
	Admins   ports.AdminRepository
	Hasher   ports.PasswordHasher
	Sessions ports.SessionCodec
	Resets   ports.ResetTokenCodec
	Limiter  ports.LoginLimiter // optional
	Notifier ports.ResetNotifier
	Audit    ports.AuditSink
}

// AuthService implements login and password recovery for admins.
type AuthService struct {
	AuthDeps
	logger zerolog.Logger
	now    func() time.Time
}

func NewAuthService(deps AuthDeps, logger zerolog.Logger) *AuthService {
	return &AuthService{AuthDeps: deps, logger: logger, now: time.Now}
}

// Login verifies the admin's credentials and issues a session.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		metrics.LoginAttemptsTotal.WithLabelValues("invalid").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	if s.blocked(ctx, email) {
		metrics.LoginAttemptsTotal.WithLabelValues("throttled").Inc()
		s.logger.Warn().Str("email", email).Msg("login throttled")
		return nil, domain.ErrTooManyAttempts
	}

	admin, err := s.Admins.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrAdminNotFound) {
			metrics.LoginAttemptsTotal.WithLabelValues("not_found").Inc()
			s.recordFailure(ctx, email)
			return nil, err
		}
		metrics.LoginAttemptsTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	if !s.Hasher.Verify(password, admin.PasswordHash) {
		metrics.LoginAttemptsTotal.WithLabelValues("bad_password").Inc()
		s.recordFailure(ctx, email)
		return nil, domain.ErrIncorrectPassword
	}

	session, err := s.Sessions.Issue(admin.Claims())
	if err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	if s.Limiter != nil {
		if err := s.Limiter.Reset(ctx, email); err != nil {
			s.logger.Warn().Err(err).Str("email", email).Msg("login limiter reset failed")
		}
	}
	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	s.logger.Info().Str("admin_id", admin.ID).Msg("admin logged in")
	return session, nil
}

// blocked fails open: a limiter outage must not lock admins out.
func (s *AuthService) blocked(ctx context.Context, email string) bool {
	if s.Limiter == nil {
		return false
	}
	blocked, err := s.Limiter.Blocked(ctx, email)
	if err != nil {
		s.logger.Warn().Err(err).Str("email", email).Msg("login limiter unavailable")
		return false
	}
	return blocked
}

func (s *AuthService) recordFailure(ctx context.Context, email string) {
	if s.Limiter == nil {
		return
	}
	if err := s.Limiter.RecordFailure(ctx, email); err != nil {
		s.logger.Warn().Err(err).Str("email", email).Msg("login limiter record failed")
	}
}

// ForgotPassword stores a reset token for the admin owning email and hands it
// to the notifier. Unknown emails succeed silently.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if email == "" {
		return domain.ErrInvalidCredentials
	}

	admin, err := s.Admins.FindByEmail(ctx, email)
	if errors.Is(err, domain.ErrAdminNotFound) {
		s.logger.Debug().Str("email", email).Msg("password reset for unknown email ignored")
		return nil
	}
	if err != nil {
		return err
	}

	nonce := uuid.NewString()
	expiry := s.now().UTC().Add(resetTokenTTL)
	if err := s.Admins.SetResetToken(ctx, admin.ID, hashNonce(nonce), expiry); err != nil {
		return err
	}

	token, err := s.Resets.Issue(admin.ID, nonce)
	if err != nil {
		return err
	}
	if err := s.Notifier.NotifyReset(ctx, admin, token); err != nil {
		return err
	}

	metrics.PasswordResetsTotal.WithLabelValues("requested").Inc()
	s.logger.Info().Str("admin_id", admin.ID).Msg("password reset requested")
	return nil
}

// ResetPassword sets a new password using a token from ForgotPassword. The
// token is single use.
func (s *AuthService) ResetPassword(ctx context.Context, input ports.ResetPasswordInput) error {
	if input.Password != input.PasswordConfirm {
		return domain.ErrNewPasswordMismatch
	}

	adminID, nonce, err := s.Resets.Parse(input.Token)
	if err != nil {
		metrics.PasswordResetsTotal.WithLabelValues("rejected").Inc()
		return domain.ErrInvalidResetToken
	}

	admin, err := s.Admins.FindByID(ctx, adminID)
	if errors.Is(err, domain.ErrAdminNotFound) || errors.Is(err, domain.ErrInvalidID) {
		metrics.PasswordResetsTotal.WithLabelValues("rejected").Inc()
		return domain.ErrInvalidResetToken
	}
	if err != nil {
		return err
	}
	if !admin.ResetTokenValid(hashNonce(nonce), s.now()) {
		metrics.PasswordResetsTotal.WithLabelValues("rejected").Inc()
		return domain.ErrInvalidResetToken
	}

	hash, err := s.Hasher.Hash(input.Password)
	if err != nil {
		return err
	}
	if err := s.Admins.UpdatePassword(ctx, admin.ID, hash); err != nil {
		return err
	}

	metrics.PasswordResetsTotal.WithLabelValues("completed").Inc()
	s.emit(domain.AuditAdminPasswordReset, admin.ID, admin.ID)
	s.logger.Info().Str("admin_id", admin.ID).Msg("password reset completed")
	return nil
}

func (s *AuthService) emit(action domain.AuditAction, subjectID, actorID string) {
	emit(s.Audit, s.now, action, subjectID, actorID)
}

// hashNonce returns the form of a reset nonce kept in the store.
func hashNonce(nonce string) string {
	sum := sha256.Sum256([]byte(nonce))
	return hex.EncodeToString(sum[:])
}

// normalizeEmail trims surrounding space only. Emails are stored as entered
// and the admin store matches them case-insensitively.
func normalizeEmail(email string) string {
	return strings.TrimSpace(email)
}

package ports

import (
	"context"

	"github.com/stockpanel/admin-api/internal/core/domain"
)

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}

// SessionCodec signs and verifies session tokens.
type SessionCodec interface {
	Issue(claims domain.SessionClaims) (*domain.Session, error)
	Parse(token string) (*domain.SessionClaims, error)
}

// ResetTokenCodec signs and verifies password reset tokens.
type ResetTokenCodec interface {
	Issue(adminID, nonce string) (string, error)
	Parse(token string) (adminID, nonce string, err error)
}

// LoginLimiter throttles repeated failed logins per email.
type LoginLimiter interface {
	Blocked(ctx context.Context, email string) (bool, error)
	RecordFailure(ctx context.Context, email string) error
	Reset(ctx context.Context, email string) error
}

// ResetNotifier delivers a password reset token to its admin.
type ResetNotifier interface {
	NotifyReset(ctx context.Context, admin *domain.Admin, token string) error
}

// AuditSink accepts audit events for asynchronous publication.
type AuditSink interface {
	Emit(event domain.AuditEvent)
}

// AuditPublisher writes a single audit event to its destination.
type AuditPublisher interface {
	Publish(ctx context.Context, event domain.AuditEvent) error
}

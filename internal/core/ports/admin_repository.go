package ports

import (
	"context"
	"time"

	"github.com/stockpanel/admin-api/internal/core/domain"
)

// ProfileUpdate holds the self-editable fields of an admin.
type ProfileUpdate struct {
	Username string
	Name     string
	Email    string
}

// AdminRepository defines persistence for admin credentials.
type AdminRepository interface {
	List(ctx context.Context) ([]*domain.Admin, error)
	FindByID(ctx context.Context, id string) (*domain.Admin, error)
	FindByEmail(ctx context.Context, email string) (*domain.Admin, error)
	// Create inserts admin and returns it with its generated id.
	// A duplicate username or email yields domain.ErrAdminExists.
	Create(ctx context.Context, admin *domain.Admin) (*domain.Admin, error)
	UpdateProfile(ctx context.Context, id string, update ProfileUpdate) (*domain.Admin, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	SetResetToken(ctx context.Context, id, tokenHash string, expiry time.Time) error
	// Delete removes the admin, returning domain.ErrAdminNotFound when absent.
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

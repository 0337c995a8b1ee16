package ports

import (
	"context"

	"github.com/stockpanel/admin-api/internal/core/domain"
)

// CreateAdminInput carries the data needed to register a new admin.
type CreateAdminInput struct {
	Username        string
	Name            string
	Email           string
	Password        string
	PasswordConfirm string
	ActorID         string
}

// UpdatePasswordInput carries a self-service password change.
type UpdatePasswordInput struct {
	CurrentPassword string
	NewPassword     string
	PasswordConfirm string
}

// AdminService defines use-case operations for admins. Authorization is
// enforced by the caller; the service only validates ids and data.
type AdminService interface {
	List(ctx context.Context) ([]*domain.Admin, error)
	Get(ctx context.Context, id string) (*domain.Admin, error)
	Create(ctx context.Context, input CreateAdminInput) (*domain.Admin, error)
	UpdateSettings(ctx context.Context, id string, update ProfileUpdate) (*domain.Admin, error)
	UpdatePassword(ctx context.Context, id string, input UpdatePasswordInput) error
	Delete(ctx context.Context, id, actorID string) error
}

package ports

import (
	"context"

	"github.com/stockpanel/admin-api/internal/core/domain"
)

// ResetPasswordInput carries a password reset request.
type ResetPasswordInput struct {
	Token           string
	Password        string
	PasswordConfirm string
}

// AuthService authenticates admins and manages credential recovery.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*domain.Session, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, input ResetPasswordInput) error
}

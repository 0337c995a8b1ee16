package handler

import (
	"time"

	"github.com/stockpanel/admin-api/internal/core/domain"
)

// --- Auth ---

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// sessionResponse never carries the signed token; it only travels in the
// httpOnly cookie.
type sessionResponse struct {
	User      domain.SessionClaims `json:"user"`
	ExpiresAt *time.Time           `json:"expires,omitempty"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type resetPasswordRequest struct {
	Token           string `json:"token"           validate:"required"`
	Password        string `json:"password"        validate:"required,min=7"`
	PasswordConfirm string `json:"passwordConfirm" validate:"required,eqfield=Password"`
}

// --- Admins ---

type createAdminRequest struct {
	Username        string `json:"username"        validate:"required"`
	Name            string `json:"name"            validate:"required"`
	Email           string `json:"email"           validate:"required,email"`
	Password        string `json:"password"        validate:"required,min=7"`
	PasswordConfirm string `json:"passwordConfirm" validate:"required"`
}

type adminSettingsRequest struct {
	Username string `json:"username" validate:"required"`
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
}

type updatePasswordRequest struct {
	PasswordCurrent string `json:"passwordCurrent" validate:"required"`
	NewPassword     string `json:"newPassword"     validate:"required,min=7"`
	PasswordConfirm string `json:"passwordConfirm" validate:"required"`
}

// --- Shared ---

type messageResponse struct {
	Message string `json:"message"`
	ID      string `json:"_id,omitempty"`
}

// errorBody documents the error envelope rendered by the API error handler.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

package domain

import "errors"

// Authentication.
var (
	ErrUnauthenticated    = errors.New("authentication required")
	ErrInvalidCredentials = errors.New("credentials not provided")
	ErrIncorrectPassword  = errors.New("incorrect password")
	ErrLoginFailed        = errors.New("invalid email or password")
	ErrTooManyAttempts    = errors.New("too many failed login attempts, try again later")
	ErrInvalidResetToken  = errors.New("reset token is invalid or has expired")
)

// Authorization.
var (
	ErrNotSelf   = errors.New("you can only modify your own account")
	ErrAdminOnly = errors.New("admin role required")
)

// Validation.
var (
	ErrInvalidID              = errors.New("invalid id format")
	ErrAdminPasswordsDiffer   = errors.New("passwords are not the same")
	ErrNewPasswordMismatch    = errors.New("new password and confirmation do not match")
	ErrCurrentPasswordInvalid = errors.New("current password is incorrect")
)

// Not found.
var (
	ErrAdminNotFound   = errors.New("admin not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrAccountNotFound = errors.New("account not found")
	ErrStockNotFound   = errors.New("stock not found")
	ErrItemNotFound    = errors.New("item not found")
	ErrNoItems         = errors.New("no items found")
)

// Conflict.
var (
	ErrAdminExists      = errors.New("admin exists already")
	ErrUserOwnsAccounts = errors.New("user still owns accounts")
)

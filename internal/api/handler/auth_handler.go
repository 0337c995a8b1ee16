package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/stockpanel/admin-api/internal/core/domain"
	"github.com/stockpanel/admin-api/internal/core/ports"
)

// CookieConfig describes the session cookie.
type CookieConfig struct {
	Name   string
	Domain string
	Secure bool
}

type AuthHandler struct {
	auth   ports.AuthService
	admins ports.AdminService
	cookie CookieConfig
}

func NewAuthHandler(auth ports.AuthService, admins ports.AdminService, cookie CookieConfig) *AuthHandler {
	return &AuthHandler{auth: auth, admins: admins, cookie: cookie}
}

// Login authenticates an admin and sets the session cookie.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  sessionResponse
// @Failure      401   {object}  errorBody
// @Failure      429   {object}  errorBody
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	session, err := h.auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials),
			errors.Is(err, domain.ErrAdminNotFound),
			errors.Is(err, domain.ErrIncorrectPassword):
			return domain.ErrLoginFailed
		}
		return err
	}

	c.SetCookie(h.sessionCookie(session.Token, session.ExpiresAt))
	return c.JSON(http.StatusOK, sessionResponse{
		User:      session.Claims,
		ExpiresAt: &session.ExpiresAt,
	})
}

// Logout expires the session cookie.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  messageResponse
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(h.sessionCookie("", time.Unix(0, 0)))
	return c.JSON(http.StatusOK, messageResponse{Message: "logged out"})
}

// Session returns the identity of the current session.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Security     SessionCookie
// @Success      200  {object}  sessionResponse
// @Failure      401  {object}  errorBody
// @Router       /api/auth/session [get]
func (h *AuthHandler) Session(c echo.Context, claims *domain.SessionClaims) error {
	return c.JSON(http.StatusOK, sessionResponse{User: *claims})
}

// DeleteSessionAccount deletes the admin owning the current session.
//
// @Summary      Delete own account
// @Tags         auth
// @Produce      json
// @Security     SessionCookie
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  errorBody
// @Failure      404  {object}  errorBody
// @Router       /api/auth/delete-session-account [delete]
func (h *AuthHandler) DeleteSessionAccount(c echo.Context, claims *domain.SessionClaims) error {
	if err := h.admins.Delete(c.Request().Context(), claims.ID, claims.ID); err != nil {
		return err
	}
	c.SetCookie(h.sessionCookie("", time.Unix(0, 0)))
	return c.JSON(http.StatusOK, messageResponse{Message: "your account has been deleted"})
}

// ForgotPassword starts the password reset flow. The response does not
// reveal whether the email is registered.
//
// @Summary      Request a password reset
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      forgotPasswordRequest  true  "Admin email"
// @Success      202   {object}  messageResponse
// @Failure      400   {object}  errorBody
// @Router       /api/auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req forgotPasswordRequest
	if err := bindAndValidate(c, &req, http.StatusBadRequest); err != nil {
		return err
	}
	if err := h.auth.ForgotPassword(c.Request().Context(), req.Email); err != nil {
		return err
	}
	return c.JSON(http.StatusAccepted, messageResponse{Message: "if the email is registered, a reset link has been sent"})
}

// ResetPassword sets a new password using a reset token.
//
// @Summary      Reset password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      resetPasswordRequest  true  "Token and new password"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorBody
// @Router       /api/auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := bindAndValidate(c, &req, http.StatusBadRequest); err != nil {
		return err
	}
	err := h.auth.ResetPassword(c.Request().Context(), ports.ResetPasswordInput{
		Token:           req.Token,
		Password:        req.Password,
		PasswordConfirm: req.PasswordConfirm,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "password has been reset"})
}

func (h *AuthHandler) sessionCookie(value string, expires time.Time) *http.Cookie {
	cookie := &http.Cookie{
		Name:     h.cookie.Name,
		Value:    value,
		Path:     "/",
		Domain:   h.cookie.Domain,
		Expires:  expires,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	if value == "" {
		cookie.MaxAge = -1
	}
	return cookie
}

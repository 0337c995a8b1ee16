package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/stockpanel/admin-api/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their HTTP status codes.
//   - Logs unexpected errors without leaking them to the client, except for
//     the details field when running in development.
//   - Renders {"error": "<status text>", "message": "..."}.
func NewHTTPErrorHandler(log zerolog.Logger, development bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err)
		resp := errorResponse{Error: http.StatusText(code), Message: msg}

		if code == http.StatusInternalServerError {
			log.Error().
				Err(err).
				Str("method", c.Request().Method).
				Str("path", c.Path()).
				Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
				Msg("unhandled error")
			if development {
				resp.Details = err.Error()
			}
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, resp)
	}
}

func resolveError(err error) (int, string) {
	// Echo's own errors (bind failures, 404 from router, middleware rejections).
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Code == http.StatusInternalServerError && he.Internal != nil {
			return he.Code, "internal server error"
		}
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	switch {
	case errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrNewPasswordMismatch),
		errors.Is(err, domain.ErrCurrentPasswordInvalid),
		errors.Is(err, domain.ErrInvalidResetToken):
		return http.StatusBadRequest, err.Error()

	case errors.Is(err, domain.ErrUnauthenticated),
		errors.Is(err, domain.ErrLoginFailed):
		return http.StatusUnauthorized, err.Error()

	case errors.Is(err, domain.ErrNotSelf),
		errors.Is(err, domain.ErrAdminOnly):
		return http.StatusForbidden, err.Error()

	case errors.Is(err, domain.ErrAdminNotFound),
		errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrAccountNotFound),
		errors.Is(err, domain.ErrStockNotFound),
		errors.Is(err, domain.ErrItemNotFound),
		errors.Is(err, domain.ErrNoItems):
		return http.StatusNotFound, err.Error()

	case errors.Is(err, domain.ErrAdminExists),
		errors.Is(err, domain.ErrAdminPasswordsDiffer),
		errors.Is(err, domain.ErrUserOwnsAccounts):
		return http.StatusUnprocessableEntity, err.Error()

	case errors.Is(err, domain.ErrTooManyAttempts):
		return http.StatusTooManyRequests, err.Error()
	}

	return http.StatusInternalServerError, "internal server error"
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stockpanel/admin-api/internal/api/middleware"
	"github.com/stockpanel/admin-api/internal/core/domain"
)

// ClaimsHandlerFunc is a handler that receives the verified session claims
// as an explicit argument.
type ClaimsHandlerFunc func(c echo.Context, claims *domain.SessionClaims) error

// WithClaims adapts h to an echo.HandlerFunc. Routes using it must sit
// behind middleware.Authenticate; a request without claims fails with 401.
func WithClaims(h ClaimsHandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := middleware.Claims(c)
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, domain.ErrUnauthenticated.Error())
		}
		return h(c, claims)
	}
}

// bindAndValidate decodes the request body into req and validates it,
// reporting validation failures with status.
func bindAndValidate(c echo.Context, req any, status int) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(status, err.Error())
	}
	return nil
}

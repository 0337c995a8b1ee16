package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stockpanel/admin-api/internal/core/domain"
)

// RequireRole lets the request through only when the session role is one of
// allowedRoles. It must run after Authenticate.
func RequireRole(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := Claims(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, domain.ErrUnauthenticated.Error())
			}
			if _, ok := allowed[claims.Role]; !ok {
				return echo.NewHTTPError(http.StatusForbidden, domain.ErrAdminOnly.Error())
			}
			return next(c)
		}
	}
}

// RequireSelf lets the request through only when the path parameter param
// equals the session subject. Role is not considered.
func RequireSelf(param string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := Claims(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, domain.ErrUnauthenticated.Error())
			}
			if claims.ID == "" || claims.ID != c.Param(param) {
				return echo.NewHTTPError(http.StatusForbidden, domain.ErrNotSelf.Error())
			}
			return next(c)
		}
	}
}

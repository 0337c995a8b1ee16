package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/stockpanel/admin-api/internal/core/domain"
	"github.com/stockpanel/admin-api/internal/core/ports"
)

const claimsKey = "session_claims"

// Authenticate verifies the session token carried by the cookie named
// cookieName, or by an "Authorization: Bearer" header, and stores the
// verified claims on the context. It never touches persistence.
func Authenticate(codec ports.SessionCodec, cookieName string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, err := sessionToken(c, cookieName)
			if err != nil {
				return err
			}

			claims, err := codec.Parse(raw)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired session")
			}

			c.Set(claimsKey, claims)
			return next(c)
		}
	}
}

func sessionToken(c echo.Context, cookieName string) (string, error) {
	if cookie, err := c.Cookie(cookieName); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}

	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if authHeader == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, domain.ErrUnauthenticated.Error())
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
	}
	return parts[1], nil
}

// Claims returns the claims stored by Authenticate.
func Claims(c echo.Context) (*domain.SessionClaims, bool) {
	claims, ok := c.Get(claimsKey).(*domain.SessionClaims)
	return claims, ok && claims != nil
}

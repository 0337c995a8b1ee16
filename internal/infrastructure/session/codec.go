// Package session signs and verifies the JWTs carried by the admin session
// cookie and by password reset links.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/stockpanel/admin-api/internal/core/domain"
)

const (
	issuer = "stock-admin"
	// DefaultTTL matches the thirty day lifetime of a browser session.
	DefaultTTL = 30 * 24 * time.Hour
)

// ErrTokenInvalid is returned for any token that fails signature, expiry or
// shape checks.
var ErrTokenInvalid = errors.New("invalid session token")

type sessionClaims struct {
	jwt.RegisteredClaims
	Email    string `json:"email"`
	Username string `json:"username"`
	Role     string `json:"role"`
	Name     string `json:"name"`
}

// Codec issues and parses HS256 session tokens.
type Codec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewCodec returns a Codec signing with secret. A non-positive ttl selects
// DefaultTTL.
func NewCodec(secret string, ttl time.Duration) *Codec {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Codec{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (c *Codec) Issue(claims domain.SessionClaims) (*domain.Session, error) {
	now := c.now()
	expiresAt := now.Add(c.ttl)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   claims.ID,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Email:    claims.Email,
		Username: claims.Username,
		Role:     claims.Role,
		Name:     claims.Name,
	})

	signed, err := token.SignedString(c.secret)
	if err != nil {
		return nil, fmt.Errorf("sign session token: %w", err)
	}

	return &domain.Session{Token: signed, Claims: claims, ExpiresAt: expiresAt.UTC()}, nil
}

func (c *Codec) Parse(raw string) (*domain.SessionClaims, error) {
	claims := &sessionClaims{}
	tkn, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil || !tkn.Valid {
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
	if claims.Subject == "" || claims.Role == "" {
		return nil, fmt.Errorf("%w: missing subject or role", ErrTokenInvalid)
	}

	return &domain.SessionClaims{
		ID:       claims.Subject,
		Email:    claims.Email,
		Username: claims.Username,
		Role:     claims.Role,
		Name:     claims.Name,
	}, nil
}

package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/stockpanel/admin-api/internal/core/domain"
)

const (
	resetAudience = "password-reset"
	// ResetTTL bounds how long a reset link stays usable.
	ResetTTL = time.Hour
)

type resetClaims struct {
	jwt.RegisteredClaims
	Nonce string `json:"nonce"`
}

// ResetCodec issues and parses password reset tokens. The nonce inside the
// token is matched against the hash stored on the admin, so a token is
// single-use.
type ResetCodec struct {
	secret []byte
	now    func() time.Time
}

func NewResetCodec(secret string) *ResetCodec {
	return &ResetCodec{secret: []byte(secret), now: time.Now}
}

func (c *ResetCodec) Issue(adminID, nonce string) (string, error) {
	now := c.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, resetClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Audience:  jwt.ClaimStrings{resetAudience},
			Subject:   adminID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ResetTTL)),
		},
		Nonce: nonce,
	})
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign reset token: %w", err)
	}
	return signed, nil
}

func (c *ResetCodec) Parse(raw string) (string, string, error) {
	claims := &resetClaims{}
	tkn, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithAudience(resetAudience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil || !tkn.Valid || claims.Subject == "" || claims.Nonce == "" {
		return "", "", domain.ErrInvalidResetToken
	}
	return claims.Subject, claims.Nonce, nil
}

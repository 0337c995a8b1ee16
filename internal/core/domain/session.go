package domain

import "time"

// SessionClaims is the verified identity carried by a session token.
type SessionClaims struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Role     string `json:"role"`
	Name     string `json:"name"`
}

// Session is an issued, signed session token together with its claims.
type Session struct {
	Token     string
	Claims    SessionClaims
	ExpiresAt time.Time
}

package domain

import "time"

// Admin is an operator of the back-office. Only admins authenticate against
// this API.
type Admin struct {
	ID               string     `json:"_id"`
	Username         string     `json:"username"`
	Name             string     `json:"name"`
	Email            string     `json:"email"`
	PasswordHash     string     `json:"-"`
	Role             string     `json:"role"`
	ResetToken       string     `json:"-"`
	ResetTokenExpiry *time.Time `json:"-"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

// Claims returns the identity embedded into a session token for this admin.
func (a *Admin) Claims() SessionClaims {
	return SessionClaims{
		ID:       a.ID,
		Email:    a.Email,
		Username: a.Username,
		Role:     a.Role,
		Name:     a.Name,
	}
}

// ResetTokenValid reports whether hash matches the stored reset token and the
// token has not expired at now.
func (a *Admin) ResetTokenValid(hash string, now time.Time) bool {
	if a.ResetToken == "" || a.ResetTokenExpiry == nil {
		return false
	}
	return a.ResetToken == hash && now.Before(*a.ResetTokenExpiry)
}

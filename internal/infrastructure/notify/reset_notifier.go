// Package notify hands password reset links to their recipients.
package notify

import (
	"context"
	"net/url"
	"strings"

	"github.com/rs/zerolog"

	"github.com/stockpanel/admin-api/internal/core/domain"
)

const resetPath = "/reset-password"

// LogNotifier records reset links in the log. Mail delivery lives outside this service.
type LogNotifier struct {
	authURL string
	log     zerolog.Logger
}

func NewLogNotifier(authURL string, log zerolog.Logger) *LogNotifier {
	return &LogNotifier{authURL: strings.TrimRight(authURL, "/"), log: log}
}

// NotifyReset implements ports.ResetNotifier.
func (n *LogNotifier) NotifyReset(_ context.Context, admin *domain.Admin, token string) error {
	n.log.Info().
		Str("admin_id", admin.ID).
		Str("email", admin.Email).
		Str("reset_link", n.ResetLink(token)).
		Msg("password reset requested")
	return nil
}

// ResetLink builds the link the admin follows to choose a new password.
func (n *LogNotifier) ResetLink(token string) string {
	return n.authURL + resetPath + "?token=" + url.QueryEscape(token)
}

// Package notify delivers issued tokens to users out-of-band, typically as
// a link in an email. Delivery is best-effort plumbing around the token
// engine and takes no part in its correctness.
package notify

import (
	"context"
	"log/slog"

	"github.com/antonybholmes/go-auth/internal/auth/domain"
)

// Notifier hands a freshly issued token to its user.
type Notifier interface {
	Send(ctx context.Context, user domain.User, purpose domain.TokenPurpose, token string) error
}

// LogNotifier writes the token to the log instead of delivering it. For
// development and tests.
type LogNotifier struct {
	Logger *slog.Logger
}

func (n *LogNotifier) Send(ctx context.Context, user domain.User, purpose domain.TokenPurpose, token string) error {
	logger := n.Logger
	if logger == nil {
		logger = slog.Default()
	}

	logger.Info("notify (log only)",
		slog.String("user_id", user.ID),
		slog.String("email", user.Email),
		slog.String("purpose", purpose.String()),
		slog.String("token", token),
	)
	return nil
}

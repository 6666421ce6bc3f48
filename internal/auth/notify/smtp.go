package notify

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/antonybholmes/go-auth/internal/auth/domain"
	"github.com/wneessen/go-mail"
)

// SMTPConfig holds the outbound mail settings.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string // e.g. "Accounts <accounts@example.com>"

	// LinkBase is the frontend origin tokens are linked against,
	// e.g. "https://app.example.com".
	LinkBase string

	// TokenTTL is the mailed-token lifetime quoted in bodies. It must match
	// the issuing policy's action ttl; zero falls back to the stock default.
	TokenTTL time.Duration
}

// SMTPNotifier emails tokens as links using an authenticated SMTP relay.
type SMTPNotifier struct {
	cfg    SMTPConfig
	client *mail.Client
}

func NewSMTPNotifier(cfg SMTPConfig) (*SMTPNotifier, error) {
	client, err := mail.NewClient(cfg.Host,
		mail.WithPort(cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.Username),
		mail.WithPassword(cfg.Password),
	)
	if err != nil {
		return nil, fmt.Errorf("notify: smtp client: %w", err)
	}

	return &SMTPNotifier{cfg: cfg, client: client}, nil
}

// Send renders the purpose's template and delivers it to the user's address.
func (n *SMTPNotifier) Send(ctx context.Context, user domain.User, purpose domain.TokenPurpose, token string) error {
	subject, body, err := n.compose(user, purpose, token)
	if err != nil {
		return err
	}

	msg := mail.NewMsg()
	if err := msg.From(n.cfg.From); err != nil {
		return fmt.Errorf("notify: from address: %w", err)
	}
	if err := msg.To(user.Email); err != nil {
		return fmt.Errorf("notify: to address: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, body)

	if err := n.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("notify: send: %w", err)
	}
	return nil
}

// compose renders the subject and HTML body for a purpose. The quoted
// lifetime comes from the configured ttl so mails never promise a longer or
// shorter window than the tokens actually carry.
func (n *SMTPNotifier) compose(user domain.User, purpose domain.TokenPurpose, token string) (subject, body string, err error) {
	subject, path, ok := purposeMail(purpose)
	if !ok {
		return "", "", fmt.Errorf("notify: no mail template for purpose %q", purpose)
	}

	link := fmt.Sprintf("%s%s?token=%s", n.cfg.LinkBase, path, url.QueryEscape(token))

	ttl := n.cfg.TokenTTL
	if ttl <= 0 {
		ttl = domain.DefaultActionTTL
	}

	body, err = renderMail(purpose, mailData{
		Name:    displayName(user),
		Link:    link,
		Expires: humanDuration(ttl),
	})
	if err != nil {
		return "", "", err
	}
	return subject, body, nil
}

func purposeMail(purpose domain.TokenPurpose) (subject, path string, ok bool) {
	switch purpose {
	case domain.PurposePasswordless:
		return "Your sign-in link", "/auth/passwordless/complete", true
	case domain.PurposeVerifyEmail:
		return "Verify your email address", "/auth/verify/confirm", true
	case domain.PurposeResetPassword:
		return "Reset your password", "/auth/reset/complete", true
	}
	return "", "", false
}

func displayName(user domain.User) string {
	if user.FirstName != "" {
		return user.FirstName
	}
	return user.Username
}

func humanDuration(d time.Duration) string {
	if d < time.Hour {
		return fmt.Sprintf("%d minutes", int(d.Minutes()))
	}
	return fmt.Sprintf("%d hours", int(d.Hours()))
}

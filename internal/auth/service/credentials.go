package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/antonybholmes/go-auth/internal/auth/domain"
	"github.com/antonybholmes/go-auth/internal/auth/store"
	"github.com/antonybholmes/go-auth/pkg/cryptox"
	"github.com/antonybholmes/go-auth/pkg/idx"
	"github.com/antonybholmes/go-auth/pkg/slogx"
)

var (
	// ErrUserDoesNotExist reports an identifier that resolved to no account.
	// Kept distinct from ErrInvalidCredentials for logging; the HTTP layer
	// collapses both into one generic message.
	ErrUserDoesNotExist = errors.New("user_does_not_exist")

	// ErrInvalidCredentials reports a resolved account with a wrong password.
	ErrInvalidCredentials = errors.New("invalid_credentials")

	// ErrUserAlreadyExists reports a registration conflict.
	ErrUserAlreadyExists = errors.New("user_already_exists")
)

// CredentialService authenticates identifier/password pairs against the user
// store and creates accounts.
type CredentialService struct {
	Store store.Store
}

// Authenticate resolves the identifier first as a username, falling back to
// an email lookup, then checks the password. A malformed stored hash is
// surfaced as-is: that is data corruption, not a login failure.
func (s *CredentialService) Authenticate(ctx context.Context, identifier, password string) (domain.User, error) {
	l := slogx.FromContext(ctx)

	user, err := s.resolve(ctx, identifier)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			l.Info("authenticate: unknown identifier", slog.String("identifier", identifier))
			return domain.User{}, ErrUserDoesNotExist
		}
		return domain.User{}, fmt.Errorf("authenticate: %w", err)
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			l.Info("authenticate: password mismatch", slog.String("user_id", user.ID))
			return domain.User{}, ErrInvalidCredentials
		}
		// ErrMalformedHash or an RNG fault; neither is the caller's doing.
		l.Error("authenticate: hash verification fault",
			slog.String("user_id", user.ID),
			slog.Any("error", err),
		)
		return domain.User{}, fmt.Errorf("authenticate: %w", err)
	}

	return user, nil
}

func (s *CredentialService) resolve(ctx context.Context, identifier string) (domain.User, error) {
	user, err := s.Store.Users().GetUserByUsername(ctx, identifier)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return domain.User{}, err
	}
	return s.Store.Users().GetUserByEmail(ctx, identifier)
}

// RegisterParams carries the fields needed to create an account. Password
// may be empty for passwordless-only accounts; they get an unguessable
// random hash so a password login can never succeed against them.
type RegisterParams struct {
	Username  string
	Email     string
	FirstName string
	LastName  string
	Password  string
}

// Register creates a new user with a fresh subject id and a hashed password.
func (s *CredentialService) Register(ctx context.Context, p RegisterParams) (domain.User, error) {
	p.Username = strings.TrimSpace(p.Username)
	p.Email = strings.TrimSpace(p.Email)
	if p.Username == "" || p.Email == "" {
		return domain.User{}, fmt.Errorf("register: username and email required")
	}

	var hash string
	var err error
	if p.Password == "" {
		hash = cryptox.RandomPasswordHash()
	} else {
		hash, err = cryptox.HashPassword(p.Password)
		if err != nil {
			return domain.User{}, fmt.Errorf("register: hash password: %w", err)
		}
	}

	user := domain.User{
		ID:           idx.New().String(),
		Username:     p.Username,
		Email:        p.Email,
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		PasswordHash: hash,
	}

	if err := s.Store.Users().CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrUserAlreadyExists
		}
		return domain.User{}, fmt.Errorf("register: %w", err)
	}

	// Re-read so the caller sees the store-assigned timestamps, which feed
	// the fingerprint.
	created, err := s.Store.Users().GetUserByID(ctx, user.ID)
	if err != nil {
		return domain.User{}, fmt.Errorf("register: reload user: %w", err)
	}

	slogx.FromContext(ctx).Info("user registered", slog.String("user_id", created.ID))
	return created, nil
}

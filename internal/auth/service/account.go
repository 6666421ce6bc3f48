package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"

	"github.com/antonybholmes/go-auth/internal/auth/domain"
	"github.com/antonybholmes/go-auth/internal/auth/notify"
	"github.com/antonybholmes/go-auth/internal/auth/store"
	"github.com/antonybholmes/go-auth/pkg/cryptox"
	"github.com/antonybholmes/go-auth/pkg/jwtx"
	"github.com/antonybholmes/go-auth/pkg/slogx"
)

// AccountService runs the single-use token flows: passwordless sign-in,
// email verification and password reset. Each flow issues a proof-bound
// token, delivers it out-of-band, and on presentation performs the action
// inside a transaction that also advances the user's fingerprint, which is
// what consumes the token. There is no delete-token step anywhere.
type AccountService struct {
	Tokens   *TokenService
	Store    store.Store
	Notifier notify.Notifier
}

// RequestPasswordless emails a one-shot sign-in token to the address.
func (s *AccountService) RequestPasswordless(ctx context.Context, email string) error {
	return s.request(ctx, email, domain.PurposePasswordless)
}

// RequestEmailVerification emails a one-shot verification token.
func (s *AccountService) RequestEmailVerification(ctx context.Context, email string) error {
	return s.request(ctx, email, domain.PurposeVerifyEmail)
}

// RequestPasswordReset emails a one-shot reset token.
func (s *AccountService) RequestPasswordReset(ctx context.Context, email string) error {
	return s.request(ctx, email, domain.PurposeResetPassword)
}

func (s *AccountService) request(ctx context.Context, email string, purpose domain.TokenPurpose) error {
	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserDoesNotExist
		}
		return fmt.Errorf("request %s: %w", purpose, err)
	}

	return s.SendToken(ctx, user, purpose)
}

// SendToken issues a token for the user and hands it to the notifier. Called
// directly after registration, when the caller already holds the user row.
func (s *AccountService) SendToken(ctx context.Context, user domain.User, purpose domain.TokenPurpose) error {
	token, err := s.Tokens.Issue(ctx, user, purpose)
	if err != nil {
		return fmt.Errorf("issue %s: %w", purpose, err)
	}

	if err := s.Notifier.Send(ctx, user, purpose, token); err != nil {
		return fmt.Errorf("deliver %s: %w", purpose, err)
	}

	slogx.FromContext(ctx).Info("token delivered",
		slog.String("user_id", user.ID),
		slog.String("purpose", purpose.String()),
	)
	return nil
}

// CompletePasswordless verifies a passwordless token, consumes it by
// touching the fingerprint, and signs the user in with a fresh session pair.
func (s *AccountService) CompletePasswordless(ctx context.Context, raw string) (domain.TokenPair, error) {
	claims, err := s.Tokens.Verify(ctx, raw, domain.PurposePasswordless)
	if err != nil {
		return domain.TokenPair{}, err
	}

	user, err := s.consume(ctx, claims, func(tx store.Tx, u domain.User) error {
		return tx.Users().TouchFingerprint(ctx, u.ID)
	})
	if err != nil {
		return domain.TokenPair{}, err
	}

	return s.Tokens.IssuePair(ctx, user)
}

// ConfirmEmail verifies a verification token and marks the address verified.
// The mark bumps the fingerprint, consuming the token.
func (s *AccountService) ConfirmEmail(ctx context.Context, raw string) error {
	claims, err := s.Tokens.Verify(ctx, raw, domain.PurposeVerifyEmail)
	if err != nil {
		return err
	}

	_, err = s.consume(ctx, claims, func(tx store.Tx, u domain.User) error {
		return tx.Users().MarkEmailVerified(ctx, u.ID)
	})
	return err
}

// FinalizePasswordReset verifies a reset token and persists the new password
// hash. The hash update bumps the fingerprint, consuming the token.
func (s *AccountService) FinalizePasswordReset(ctx context.Context, raw, newPassword string) error {
	claims, err := s.Tokens.Verify(ctx, raw, domain.PurposeResetPassword)
	if err != nil {
		return err
	}

	hash, err := cryptox.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("finalize reset: hash password: %w", err)
	}

	_, err = s.consume(ctx, claims, func(tx store.Tx, u domain.User) error {
		return tx.Users().UpdatePasswordHash(ctx, u.ID, hash)
	})
	return err
}

// consume re-checks the proof against current user state inside a
// transaction and then runs the mutation. The outer Verify already checked
// the proof once; doing it again transactionally closes the window where two
// presentations of the same token race each other. Returns the user as it
// was before the mutation.
func (s *AccountService) consume(ctx context.Context, claims *jwtx.Claims, mutate func(tx store.Tx, u domain.User) error) (domain.User, error) {
	var user domain.User

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		u, err := tx.Users().GetUserByID(ctx, claims.Subject)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrProofInvalidated
			}
			return err
		}

		want := cryptox.DeriveProof(u.ID, u.Fingerprint())
		if subtle.ConstantTimeCompare([]byte(claims.Proof), []byte(want)) != 1 {
			return ErrProofInvalidated
		}

		if err := mutate(tx, u); err != nil {
			return err
		}

		user = u
		return nil
	})
	if err != nil {
		return domain.User{}, err
	}

	return user, nil
}

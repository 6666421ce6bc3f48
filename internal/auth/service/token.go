package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/antonybholmes/go-auth/internal/auth/domain"
	"github.com/antonybholmes/go-auth/internal/auth/store"
	"github.com/antonybholmes/go-auth/pkg/cryptox"
	"github.com/antonybholmes/go-auth/pkg/jwtx"
	"github.com/antonybholmes/go-auth/pkg/slogx"
)

var (
	// ErrWrongPurpose reports an otherwise valid token presented for an
	// action it was not issued for.
	ErrWrongPurpose = errors.New("wrong_purpose")

	// ErrProofInvalidated reports a single-use token whose proof no longer
	// matches the user's current state. The token is stale, not necessarily
	// tampered: the fingerprint moved after issuance.
	ErrProofInvalidated = errors.New("proof_invalidated")
)

// TokenService issues and verifies purpose-scoped tokens. It owns no mutable
// state; everything lives in the signed tokens, the injected policy table and
// the external user store, so concurrent use needs no locking.
type TokenService struct {
	Signer   *jwtx.Signer
	Verifier *jwtx.Verifier
	Store    store.Store
	Policy   domain.Policy
}

// Issue signs a token for the user and purpose. TTL comes from the policy
// table; single-use purposes get a proof bound to the user's current
// fingerprint. The expiry is strictly in the future.
func (s *TokenService) Issue(ctx context.Context, user domain.User, purpose domain.TokenPurpose) (string, error) {
	ttl, err := s.Policy.TTL(purpose)
	if err != nil {
		return "", err
	}

	proof := ""
	if s.Policy.RequiresProof(purpose) {
		proof = cryptox.DeriveProof(user.ID, user.Fingerprint())
	}

	claims := jwtx.NewClaims(user.ID, purpose.String(), proof, ttl, time.Now())
	return s.Signer.Sign(claims)
}

// Verify validates a presented token end-to-end: signature and expiry via the
// codec, then the purpose tag, then, for single-use purposes, the proof
// against the user's current state. The proof check re-fetches the user so a
// fingerprint moved by another request is seen here (read-committed or
// stronger on the store side is all this relies on).
func (s *TokenService) Verify(ctx context.Context, raw string, expected domain.TokenPurpose) (*jwtx.Claims, error) {
	claims, err := s.Verifier.Verify(raw)
	if err != nil {
		return nil, err
	}

	if claims.Purpose != expected.String() {
		slogx.FromContext(ctx).Warn("token purpose mismatch",
			slog.String("expected", expected.String()),
			slog.String("got", claims.Purpose),
		)
		return nil, ErrWrongPurpose
	}

	if s.Policy.RequiresProof(expected) {
		user, err := s.Store.Users().GetUserByID(ctx, claims.Subject)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				// The state the proof was bound to is gone entirely.
				return nil, ErrProofInvalidated
			}
			return nil, fmt.Errorf("verify: refetch user: %w", err)
		}

		want := cryptox.DeriveProof(user.ID, user.Fingerprint())
		if subtle.ConstantTimeCompare([]byte(claims.Proof), []byte(want)) != 1 {
			return nil, ErrProofInvalidated
		}
	}

	return claims, nil
}

// IssuePair issues the access/refresh pair handed out at sign-in.
func (s *TokenService) IssuePair(ctx context.Context, user domain.User) (domain.TokenPair, error) {
	access, err := s.Issue(ctx, user, domain.PurposeAccess)
	if err != nil {
		return domain.TokenPair{}, err
	}

	refresh, err := s.Issue(ctx, user, domain.PurposeRefresh)
	if err != nil {
		return domain.TokenPair{}, err
	}

	accessTTL, err := s.Policy.TTL(domain.PurposeAccess)
	if err != nil {
		return domain.TokenPair{}, err
	}

	return domain.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    accessTTL,
	}, nil
}

// Refresh exchanges a valid refresh token for a fresh access token. The user
// row is re-read so deleted accounts stop refreshing immediately.
func (s *TokenService) Refresh(ctx context.Context, raw string) (string, error) {
	claims, err := s.Verify(ctx, raw, domain.PurposeRefresh)
	if err != nil {
		return "", err
	}

	user, err := s.Store.Users().GetUserByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrUserDoesNotExist
		}
		return "", fmt.Errorf("refresh: %w", err)
	}

	return s.Issue(ctx, user, domain.PurposeAccess)
}

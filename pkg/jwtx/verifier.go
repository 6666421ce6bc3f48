package jwtx

import (
	"crypto/ed25519"
	"errors"
	"strings"

	"github.com/antonybholmes/go-auth/pkg/cryptox"
	"github.com/golang-jwt/jwt/v5"
)

// Verifier validates tokens with an Ed25519 public key and gives back the
// claims if the signature and expiry hold. It never needs the private key.
type Verifier struct {
	pub ed25519.PublicKey
}

// NewVerifier loads an Ed25519 public key from PKIX PEM bytes.
func NewVerifier(pemKey []byte) (*Verifier, error) {
	pub, err := cryptox.ParseEd25519PublicKey(pemKey)
	if err != nil {
		return nil, err
	}
	return &Verifier{pub: pub}, nil
}

// NewVerifierForKey wraps an already-parsed public key, typically the one
// exposed by a Signer in the same process.
func NewVerifierForKey(pub ed25519.PublicKey) *Verifier {
	return &Verifier{pub: pub}
}

// Verify checks the signature first, then the expiry, and returns the parsed
// claims. An optional "Bearer " scheme prefix on the raw value is stripped;
// its absence is tolerated. Failures map onto ErrInvalidSignature, ErrExpired
// and ErrMalformed so callers can give precise feedback.
func (v *Verifier) Verify(raw string) (*Claims, error) {
	tokenStr := StripBearer(raw)
	if tokenStr == "" {
		return nil, ErrMalformed
	}

	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodEdDSA.Alg()}))

	token, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		return v.pub, nil
	})
	if err != nil {
		return nil, mapParseError(err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrMalformed
	}

	return claims, nil
}

// StripBearer removes an "Authorization: Bearer" scheme prefix from a raw
// header value, if one is present.
func StripBearer(raw string) string {
	s := strings.TrimSpace(raw)
	if rest, ok := strings.CutPrefix(s, "Bearer"); ok {
		return strings.TrimSpace(rest)
	}
	return s
}

// mapParseError folds the jwt library's error set onto this package's
// taxonomy. Signature problems win over expiry so a tampered token is never
// reported as merely expired.
func mapParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid),
		errors.Is(err, jwt.ErrSignatureInvalid),
		errors.Is(err, jwt.ErrTokenUnverifiable):
		return ErrInvalidSignature
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpired
	default:
		return ErrMalformed
	}
}

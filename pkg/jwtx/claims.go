package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the signed token payload. The subject id rides in the registered
// "sub" claim; the purpose tag and the one-time proof are custom claims so a
// verifier can assert what action a token authorizes and whether the user
// state it was bound to is still current.
type Claims struct {
	jwt.RegisteredClaims

	// Purpose tags what the token may be used for, e.g. "access" or
	// "reset_password". Verification asserts this against the caller's
	// expectation, so a reset token can never pass as a session token.
	Purpose string `json:"prp,omitempty"`

	// Proof is the one-time proof for single-use purposes. Empty for plain
	// bearer purposes (access, refresh).
	Proof string `json:"otp,omitempty"`
}

// NewClaims builds a claims value for a subject. The expiry is now+ttl,
// truncated to whole seconds on the wire, so ttls of at least a second keep
// it strictly in the future. Claims are immutable by convention once built;
// nothing in this package mutates them after signing.
func NewClaims(subject, purpose, proof string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		Purpose: purpose,
		Proof:   proof,
	}
}

// NewJTI returns a URL-safe random identifier for the "jti" claim.
func NewJTI() string {
	var b [20]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}

package domain

import (
	"fmt"
	"time"
)

// TokenPurpose is the closed set of uses a token can be issued for. The
// purpose rides inside the signed claims, so verification can assert that a
// presented token was issued for the action being attempted.
type TokenPurpose string

const (
	PurposeAccess        TokenPurpose = "access"
	PurposeRefresh       TokenPurpose = "refresh"
	PurposePasswordless  TokenPurpose = "passwordless"
	PurposeVerifyEmail   TokenPurpose = "verify_email"
	PurposeResetPassword TokenPurpose = "reset_password"
)

// Default TTLs per purpose. Session tokens are longer-lived bearer
// credentials; action tokens are short-lived and one-shot.
const (
	DefaultAccessTTL  = time.Hour
	DefaultRefreshTTL = 24 * time.Hour
	DefaultActionTTL  = 10 * time.Minute
)

func (p TokenPurpose) String() string { return string(p) }

// Valid reports whether p is a member of the closed purpose set.
func (p TokenPurpose) Valid() bool {
	switch p {
	case PurposeAccess, PurposeRefresh, PurposePasswordless, PurposeVerifyEmail, PurposeResetPassword:
		return true
	}
	return false
}

// RequiresProof reports whether tokens of this purpose are single-use and
// must carry a one-time proof bound to the user's fingerprint. Access and
// refresh tokens are plain bearer credentials and can't be "used up".
func (p TokenPurpose) RequiresProof() bool {
	switch p {
	case PurposePasswordless, PurposeVerifyEmail, PurposeResetPassword:
		return true
	}
	return false
}

// Policy is the static issuance table mapping each purpose to its TTL. It is
// the single authority the token service consults, so adding a purpose means
// adding data here, not code branches elsewhere.
type Policy struct {
	ttls map[TokenPurpose]time.Duration
}

// DefaultPolicy returns the policy with the stock TTLs.
func DefaultPolicy() Policy {
	return Policy{ttls: map[TokenPurpose]time.Duration{
		PurposeAccess:        DefaultAccessTTL,
		PurposeRefresh:       DefaultRefreshTTL,
		PurposePasswordless:  DefaultActionTTL,
		PurposeVerifyEmail:   DefaultActionTTL,
		PurposeResetPassword: DefaultActionTTL,
	}}
}

// WithTTL returns a copy of the policy with one purpose's TTL overridden.
// Non-positive durations and unknown purposes leave the policy unchanged.
func (p Policy) WithTTL(purpose TokenPurpose, ttl time.Duration) Policy {
	if !purpose.Valid() || ttl <= 0 {
		return p
	}

	ttls := make(map[TokenPurpose]time.Duration, len(p.ttls))
	for k, v := range p.ttls {
		ttls[k] = v
	}
	ttls[purpose] = ttl
	return Policy{ttls: ttls}
}

// TTL returns the time-to-live for a purpose.
func (p Policy) TTL(purpose TokenPurpose) (time.Duration, error) {
	ttl, ok := p.ttls[purpose]
	if !ok {
		return 0, fmt.Errorf("domain: no TTL policy for purpose %q", purpose)
	}
	return ttl, nil
}

// RequiresProof mirrors TokenPurpose.RequiresProof at the policy surface, so
// callers holding only a Policy need not reach into the purpose type.
func (p Policy) RequiresProof(purpose TokenPurpose) bool {
	return purpose.RequiresProof()
}

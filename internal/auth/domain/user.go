package domain

import "time"

// User is the account row as this core reads it. The subject id is the
// stable opaque identifier carried in tokens; username and email are lookup
// handles and may change over an account's lifetime.
type User struct {
	ID              string // ULID, the token subject
	Username        string
	Email           string
	FirstName       string
	LastName        string
	PasswordHash    string     // argon2id encoded
	EmailVerifiedAt *time.Time // nil until the address is confirmed
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Fingerprint is the per-user value that one-time proofs are derived from.
// It is the row's last-modified timestamp at whole-second resolution, so any
// security-relevant mutation (password change, email verification, an
// explicit touch) moves it and consumes every outstanding single-use token.
//
// Whole-second resolution means two mutations inside the same second yield
// the same fingerprint. That narrowing is inherited behaviour and accepted;
// see DESIGN.md.
func (u User) Fingerprint() string {
	return u.UpdatedAt.UTC().Truncate(time.Second).Format(time.RFC3339)
}

// Verified reports whether the user's email address has been confirmed.
func (u User) Verified() bool {
	return u.EmailVerifiedAt != nil
}

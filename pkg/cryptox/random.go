package cryptox

import "github.com/google/uuid"

// RandomPasswordHash hashes a throwaway random value. It is used as the
// stored hash for accounts that have no password (passwordless-only sign-up)
// so that a password login against them can never succeed.
func RandomPasswordHash() string {
	h, err := HashPassword(uuid.NewString())
	if err != nil {
		// Only reachable if the system RNG fails; retrying is all there is.
		return RandomPasswordHash()
	}
	return h
}

package domain

import "time"

// TokenPair is an access/refresh credential set issued after a successful
// sign-in (password or passwordless).
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    time.Duration // access token lifetime
}

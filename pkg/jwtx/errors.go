package jwtx

import "errors"

var (
	// ErrMalformed reports input that is not a parseable token at all,
	// including an empty string after bearer-scheme stripping.
	ErrMalformed = errors.New("jwtx: malformed token")

	// ErrInvalidSignature reports a token whose signature does not verify:
	// tampered content, the wrong key, or an unexpected algorithm.
	ErrInvalidSignature = errors.New("jwtx: invalid signature")

	// ErrExpired reports a correctly signed token past its expiry.
	ErrExpired = errors.New("jwtx: token expired")
)

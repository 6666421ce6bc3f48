package http

import (
	"errors"
	"net/http"

	"github.com/antonybholmes/go-auth/internal/auth/service"
	"github.com/antonybholmes/go-auth/pkg/httpx"
	"github.com/antonybholmes/go-auth/pkg/jwtx"
)

// writeServiceError translates service and token errors into HTTP responses.
// Credential failures collapse into one response so callers cannot tell a
// missing account from a wrong password. Token failures stay distinct so
// clients can decide between re-authenticating and requesting a fresh link.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrUserDoesNotExist):
		httpx.WriteError(w, http.StatusUnauthorized,
			"invalid_credentials", "username or password is incorrect")

	case errors.Is(err, service.ErrUserAlreadyExists):
		httpx.WriteError(w, http.StatusConflict,
			"user_exists", "an account with that username or email already exists")

	case errors.Is(err, jwtx.ErrExpired):
		httpx.WriteError(w, http.StatusUnauthorized,
			"token_expired", "token has expired")

	case errors.Is(err, service.ErrWrongPurpose):
		httpx.WriteError(w, http.StatusUnauthorized,
			"invalid_token", "token is not valid for this operation")

	case errors.Is(err, service.ErrProofInvalidated):
		httpx.WriteError(w, http.StatusUnauthorized,
			"token_used", "token has already been used or revoked")

	case errors.Is(err, jwtx.ErrInvalidSignature), errors.Is(err, jwtx.ErrMalformed):
		httpx.WriteError(w, http.StatusUnauthorized,
			"invalid_token", "token could not be verified")

	default:
		httpx.WriteError(w, http.StatusInternalServerError,
			"server_error", "internal server error")
	}
}

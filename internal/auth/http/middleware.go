package http

import (
	"errors"
	"net/http"

	"github.com/antonybholmes/go-auth/internal/auth/domain"
	"github.com/antonybholmes/go-auth/internal/auth/service"
	"github.com/antonybholmes/go-auth/pkg/httpx"
	"github.com/antonybholmes/go-auth/pkg/jwtx"
)

// AuthnMiddleware guards endpoints that require a valid access token. The
// Authorization header is verified end-to-end, then the subject id is placed
// on the request context for handlers downstream.
func AuthnMiddleware(tokens *service.TokenService) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get("Authorization")
			if raw == "" {
				httpx.WriteBearerError(w, "missing bearer token")
				return
			}

			claims, err := tokens.Verify(r.Context(), raw, domain.PurposeAccess)
			if err != nil {
				switch {
				case errors.Is(err, jwtx.ErrExpired):
					httpx.WriteBearerError(w, "token expired")
				case errors.Is(err, service.ErrWrongPurpose):
					httpx.WriteBearerError(w, "token not valid for this resource")
				default:
					httpx.WriteBearerError(w, "invalid token")
				}
				return
			}

			next.ServeHTTP(w, r.WithContext(httpx.WithUserID(r.Context(), claims.Subject)))
		})
	}
}

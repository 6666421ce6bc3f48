package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/antonybholmes/go-auth/internal/auth/service"
	"github.com/antonybholmes/go-auth/pkg/httpx"
	"github.com/antonybholmes/go-auth/pkg/slogx"
)

type emailRequest struct {
	Email string `json:"email"`
}

// requestHandler serves the three "email me a token" endpoints. The response
// is 202 whether or not the address has an account, so the endpoint cannot be
// used to enumerate users.
func requestHandler(send func(ctx context.Context, email string) error) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req emailRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if req.Email == "" {
			httpx.WriteError(w, http.StatusBadRequest,
				"invalid_request", "email is required")
			return
		}

		if err := send(r.Context(), req.Email); err != nil {
			if !errors.Is(err, service.ErrUserDoesNotExist) {
				slogx.FromContext(r.Context()).Error("token request failed",
					slog.String("error", err.Error()),
				)
				httpx.WriteError(w, http.StatusInternalServerError,
					"server_error", "internal server error")
				return
			}
			// Unknown address falls through to the same 202.
		}

		httpx.WriteJSON(w, http.StatusAccepted, map[string]string{
			"status": "if the address has an account, a mail is on its way",
		})
	})
}

type tokenRequest struct {
	Token string `json:"token"`
}

type PasswordlessCompleteHandler struct {
	Accounts *service.AccountService
}

func (h *PasswordlessCompleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req tokenRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	pair, err := h.Accounts.CompletePasswordless(r.Context(), req.Token)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, pairResponse(pair))
}

type VerifyConfirmHandler struct {
	Accounts *service.AccountService
}

func (h *VerifyConfirmHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req tokenRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.Accounts.ConfirmEmail(r.Context(), req.Token); err != nil {
		writeServiceError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "email verified"})
}

type ResetCompleteHandler struct {
	Accounts *service.AccountService
}

type resetCompleteRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

func (h *ResetCompleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req resetCompleteRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Password == "" {
		httpx.WriteError(w, http.StatusBadRequest,
			"invalid_request", "password is required")
		return
	}

	if err := h.Accounts.FinalizePasswordReset(r.Context(), req.Token, req.Password); err != nil {
		writeServiceError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "password updated"})
}

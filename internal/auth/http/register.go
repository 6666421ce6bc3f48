package http

import (
	"log/slog"
	"net/http"

	"github.com/antonybholmes/go-auth/internal/auth/domain"
	"github.com/antonybholmes/go-auth/internal/auth/service"
	"github.com/antonybholmes/go-auth/pkg/httpx"
	"github.com/antonybholmes/go-auth/pkg/slogx"
)

type RegisterHandler struct {
	Credentials *service.CredentialService
	Accounts    *service.AccountService
}

type registerRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Password  string `json:"password,omitempty"`
}

type registerResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if req.Username == "" || req.Email == "" {
		httpx.WriteError(w, http.StatusBadRequest,
			"invalid_request", "username and email are required")
		return
	}

	user, err := h.Credentials.Register(r.Context(), service.RegisterParams{
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	// Verification mail failing must not fail the registration itself; the
	// user can request another one from /auth/verify.
	if err := h.Accounts.SendToken(r.Context(), user, domain.PurposeVerifyEmail); err != nil {
		slogx.FromContext(r.Context()).Error("send verification mail",
			slog.String("user_id", user.ID),
			slog.String("error", err.Error()),
		)
	}

	httpx.WriteJSON(w, http.StatusCreated, registerResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	})
}

package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/antonybholmes/go-auth/internal/auth/store"
	"github.com/antonybholmes/go-auth/pkg/httpx"
)

type UserInfoHandler struct {
	Store store.Store
}

type userInfoResponse struct {
	ID            string     `json:"id"`
	Username      string     `json:"username"`
	Email         string     `json:"email"`
	FirstName     string     `json:"first_name,omitempty"`
	LastName      string     `json:"last_name,omitempty"`
	EmailVerified bool       `json:"email_verified"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	VerifiedAt    *time.Time `json:"email_verified_at,omitempty"`
}

func (h *UserInfoHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID, ok := httpx.UserIDFromContext(r.Context())
	if !ok {
		httpx.WriteBearerError(w, "missing bearer token")
		return
	}

	user, err := h.Store.Users().GetUserByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Token outlived the account.
			httpx.WriteBearerError(w, "invalid token")
			return
		}
		httpx.WriteError(w, http.StatusInternalServerError,
			"server_error", "internal server error")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, userInfoResponse{
		ID:            user.ID,
		Username:      user.Username,
		Email:         user.Email,
		FirstName:     user.FirstName,
		LastName:      user.LastName,
		EmailVerified: user.Verified(),
		CreatedAt:     user.CreatedAt,
		UpdatedAt:     user.UpdatedAt,
		VerifiedAt:    user.EmailVerifiedAt,
	})
}

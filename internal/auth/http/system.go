package http

import (
	"net/http"
	"time"

	"github.com/antonybholmes/go-auth/internal/auth/service"
	"github.com/antonybholmes/go-auth/internal/auth/store"
	"github.com/antonybholmes/go-auth/pkg/httpx"
)

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Uptime  string `json:"uptime"`
}

// LivezHandler reports process liveness only. It must stay dependency-free
// so a wedged database never makes the orchestrator restart-loop the process.
func LivezHandler(start time.Time, version string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, healthResponse{
			Status:  "ok",
			Version: version,
			Uptime:  time.Since(start).Round(time.Second).String(),
		})
	})
}

// ReadyzHandler reports whether the service can usefully take traffic: the
// store answers pings and the signing key is loaded.
func ReadyzHandler(start time.Time, version string, st store.Store, tokens *service.TokenService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := st.Ping(r.Context()); err != nil {
			httpx.WriteJSON(w, http.StatusServiceUnavailable, healthResponse{
				Status:  "store unavailable",
				Version: version,
				Uptime:  time.Since(start).Round(time.Second).String(),
			})
			return
		}

		if tokens == nil || tokens.Signer == nil {
			httpx.WriteJSON(w, http.StatusServiceUnavailable, healthResponse{
				Status:  "signing key not loaded",
				Version: version,
				Uptime:  time.Since(start).Round(time.Second).String(),
			})
			return
		}

		httpx.WriteJSON(w, http.StatusOK, healthResponse{
			Status:  "ready",
			Version: version,
			Uptime:  time.Since(start).Round(time.Second).String(),
		})
	})
}

package http

import (
	"encoding/json"
	"net/http"

	"github.com/antonybholmes/go-auth/pkg/httpx"
)

const maxBodyBytes = 1 << 20

// decodeJSON parses the request body into v. On failure it writes a 400
// response and returns false; callers just return.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		httpx.WriteError(w, http.StatusBadRequest,
			"invalid_request", "request body is not valid JSON")
		return false
	}
	return true
}

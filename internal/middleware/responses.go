package middleware

import (
	"encoding/json"
	"net/http"
)

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

// WriteError answers with a JSON body for htmx callers and plain text otherwise.
func WriteError(w http.ResponseWriter, r *http.Request, code int, msg string) {
	if IsHTMX(r.Context()) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(code)
		rid, _ := RequestID(r.Context())
		_ = json.NewEncoder(w).Encode(errorResponse{Error: msg, RequestID: rid})
		return
	}
	http.Error(w, msg, code)
}

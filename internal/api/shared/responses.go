package shared

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// ErrorResponse defines the standard error response structure. Every failed
// request, whatever its origin, serializes to this one shape.
type ErrorResponse struct {
	Status  int      `json:"status"`
	Message string   `json:"message"`
	Cause   []string `json:"cause,omitempty"`
}

// RespondWithJSON writes a JSON response with the given status code and data.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response",
			"error", err,
			"trace_id", GetTraceID(r.Context()))
	}
}

// RespondWithError writes the uniform error body with the given status code,
// message and optional cause list.
func RespondWithError(w http.ResponseWriter, r *http.Request, status int, message string, cause []string) {
	slog.Debug("sending error response",
		"status_code", status,
		"message", message,
		"trace_id", GetTraceID(r.Context()),
		"path", r.URL.Path,
		"method", r.Method)

	RespondWithJSON(w, r, status, ErrorResponse{
		Status:  status,
		Message: message,
		Cause:   cause,
	})
}

// Package httputil owns the JSON wire format of the API, including the
// error body shape and the mapping from domain errors to status codes.
package httputil

import (
	"encoding/json"
	"log"
	"net/http"
)

// ErrorResponse is the standard error body for every non-2xx response:
// an UPPER_SNAKE machine code, a human description, and optionally the
// field the error applies to.
type ErrorResponse struct {
	Error       string `json:"error"`
	Description string `json:"description"`
	Field       string `json:"field,omitempty"`
}

// RespondJSON sends a JSON response with the given status code.
// Logs encoding errors to avoid silent failures.
func RespondJSON(w http.ResponseWriter, data any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("ERROR: failed to encode JSON response: %v", err)
	}
}

// RespondNoContent sends an empty 204 response.
func RespondNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// RespondError sends a JSON error response with a machine-readable code
// and a human description.
func RespondError(w http.ResponseWriter, code, description string, statusCode int) {
	RespondJSON(w, ErrorResponse{Error: code, Description: description}, statusCode)
}

// RespondFieldError sends a JSON error response tied to a specific field.
func RespondFieldError(w http.ResponseWriter, code, description, field string, statusCode int) {
	RespondJSON(w, ErrorResponse{Error: code, Description: description, Field: field}, statusCode)
}

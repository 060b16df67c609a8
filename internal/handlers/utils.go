package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// parseID extracts the numeric {id} route parameter.
func parseID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// writeJSON writes a JSON body with the given status code.
func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// ErrorResponse is the error envelope shared by resource endpoints
// swagger:model ErrorResponse
type ErrorResponse struct {
	// Error message
	// example: Post not found
	Error string `json:"error"`
}

// MessageResponse is the confirmation envelope shared by resource endpoints
// swagger:model MessageResponse
type MessageResponse struct {
	// Confirmation message
	// example: Post deleted successfully
	Message string `json:"message"`
}

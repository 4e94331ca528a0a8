package handlers

import (
	"encoding/json"
	"net/http"
)

// ErrMessageInternal is the generic message for 500 responses. Do not expose internal details to clients.
const ErrMessageInternal = "internal server error"

// ErrorResponse is the standard error payload for the todo routes.
type ErrorResponse struct {
	Error string `json:"error" example:"todo not found"`
}

// AuthResponse is the payload of both auth endpoints: a token on
// success, a list of human-readable errors otherwise.
type AuthResponse struct {
	Success bool     `json:"success" example:"true"`
	Token   string   `json:"token,omitempty" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	Errors  []string `json:"errors,omitempty" example:"email must be a valid email address"`
}

// JSONError sends a JSON error response with a single "error" field.
func JSONError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}

// writeJSON sends v with the given status.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// authFailure sends the structured auth failure payload.
func authFailure(w http.ResponseWriter, status int, errs ...string) {
	writeJSON(w, status, AuthResponse{Success: false, Errors: errs})
}

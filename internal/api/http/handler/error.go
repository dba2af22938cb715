package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/okazarin/taskboard/internal/model"
)

// errorResponse is the uniform error payload.
type errorResponse struct {
	Status     string `json:"status"`
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}

// messageResponse is the confirmation payload of mutating operations.
type messageResponse struct {
	Message string `json:"message"`
}

// handleError maps service errors onto HTTP statuses. Internal detail is
// logged by callers and never reaches the client.
func handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrEmailTaken):
		writeError(w, http.StatusBadRequest, "User already exists")
	case errors.Is(err, model.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, model.ErrNotFound):
		writeError(w, http.StatusNotFound, "Task not found or unauthorized")
	default:
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func writeError(w http.ResponseWriter, code int, message string) {
	writeJSON(w, code, errorResponse{Status: "error", StatusCode: code, Message: message})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

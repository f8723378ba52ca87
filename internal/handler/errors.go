package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Elly-Sitoya/Trend-wave-server/internal/models"
)

// ErrorResponse - the single error shape every failure is funneled into
type ErrorResponse struct {
	Message string `json:"message"`
}

func WriteError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{Message: message})
}

func WriteSuccess(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// WriteServiceError maps the sentinel errors coming out of the
// services onto HTTP statuses; anything unrecognized is a 500.
func WriteServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		WriteError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, models.ErrForbidden):
		WriteError(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, models.ErrInvalidCredentials):
		WriteError(w, "Invalid credentials", http.StatusUnprocessableEntity)
	case errors.Is(err, models.ErrEmailExists):
		WriteError(w, "Email already exists", http.StatusUnprocessableEntity)
	default:
		WriteError(w, err.Error(), http.StatusInternalServerError)
	}
}

package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/Elly-Sitoya/Trend-wave-server/internal/config"
	"github.com/Elly-Sitoya/Trend-wave-server/internal/database"
	"github.com/Elly-Sitoya/Trend-wave-server/internal/service"
)

type Handlers struct {
	UserService service.UserService
	PostService service.PostService
	AuthService service.AuthService
	DB          *database.DB
	Cfg         *config.Config
	Validate    *validator.Validate
}

func NewHandlers(services *service.Service, db *database.DB, config *config.Config) *Handlers {
	return &Handlers{
		UserService: services.User,
		PostService: services.Post,
		AuthService: services.Auth,
		DB:          db,
		Cfg:         config,
		Validate:    validator.New(),
	}
}

func (h *Handlers) Home(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, map[string]string{"message": "Trend Wave API"}, http.StatusOK)
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.DB.HealthCheck(); err != nil {
		WriteError(w, "Database unavailable", http.StatusServiceUnavailable)
		return
	}

	WriteSuccess(w, map[string]string{"status": "ok"}, http.StatusOK)
}

// NotFound answers every unmatched route with the same JSON error
// shape the rest of the API uses.
func (h *Handlers) NotFound(w http.ResponseWriter, r *http.Request) {
	WriteError(w, "Route not found", http.StatusNotFound)
}

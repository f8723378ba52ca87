package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Elly-Sitoya/Trend-wave-server/cmd/app"
	"github.com/Elly-Sitoya/Trend-wave-server/internal/config"
	handlers "github.com/Elly-Sitoya/Trend-wave-server/internal/handler"
	"github.com/Elly-Sitoya/Trend-wave-server/internal/middleware"
)

func main() {
	// setting up config
	cfg := config.LoadConfig()

	if cfg.JWTSecretKey == "" {
		log.Fatal("JWT_SECRET_KEY is not set")
	}

	db, services := app.App(cfg)
	defer db.CloseDB()

	handler := handlers.NewHandlers(services, db, cfg)

	authRequired := middleware.Auth(services.Auth)

	// setting up routes
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(handler.NotFound)

	r.HandleFunc("/", handler.Home).Methods(http.MethodGet)
	r.HandleFunc("/health", handler.Health).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/users/register", handler.Register).Methods(http.MethodPost)
	api.HandleFunc("/users/login", handler.Login).Methods(http.MethodPost)
	api.Handle("/users/change-avatar", authRequired(http.HandlerFunc(handler.ChangeAvatar))).Methods(http.MethodPost)
	api.Handle("/users/edit-user", authRequired(http.HandlerFunc(handler.EditUser))).Methods(http.MethodPatch)
	api.HandleFunc("/users/{id}", handler.GetUser).Methods(http.MethodGet)
	api.HandleFunc("/users", handler.GetAuthors).Methods(http.MethodGet)

	api.HandleFunc("/posts", handler.GetPosts).Methods(http.MethodGet)
	api.Handle("/posts", authRequired(http.HandlerFunc(handler.CreatePost))).Methods(http.MethodPost)
	// categories/users prefixes must be registered before /posts/{id}
	api.HandleFunc("/posts/categories/{category}", handler.GetPostsByCategory).Methods(http.MethodGet)
	api.HandleFunc("/posts/users/{id}", handler.GetPostsByUser).Methods(http.MethodGet)
	api.HandleFunc("/posts/{id}", handler.GetPost).Methods(http.MethodGet)
	api.Handle("/posts/{id}", authRequired(http.HandlerFunc(handler.EditPost))).Methods(http.MethodPatch)
	api.Handle("/posts/{id}", authRequired(http.HandlerFunc(handler.DeletePost))).Methods(http.MethodDelete)

	// uploaded blobs, read-only
	if cfg.StorageBackend == "local" {
		r.PathPrefix("/uploads/").Handler(
			http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadsDir))))
	}

	handlerChain := middleware.Chain(
		r,
		middleware.Logging,
		middleware.CORS(cfg.AllowedOrigins),
	)

	// Starting the server
	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	log.Printf("Server listening on %s", addr)

	if err := http.ListenAndServe(addr, handlerChain); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

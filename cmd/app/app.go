package app

import (
	"log"

	"github.com/Elly-Sitoya/Trend-wave-server/internal/config"
	"github.com/Elly-Sitoya/Trend-wave-server/internal/database"
	"github.com/Elly-Sitoya/Trend-wave-server/internal/repository"
	"github.com/Elly-Sitoya/Trend-wave-server/internal/service"
	"github.com/Elly-Sitoya/Trend-wave-server/internal/storage"
)

func App(cfg *config.Config) (*database.DB, *service.Service) {
	// connection DB
	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Could not connect to the database: %v", err)
	}

	// blob store backend
	var store storage.Storage
	switch cfg.StorageBackend {
	case "minio":
		store, err = storage.NewMinIOClient(cfg)
		if err != nil {
			log.Fatalf("Could not initialize MinIO: %v", err)
		}
	default:
		store, err = storage.NewLocalStorage(cfg.UploadsDir)
		if err != nil {
			log.Fatalf("Could not initialize uploads directory: %v", err)
		}
	}

	// enabling dependencies
	repo := repository.NewRepository(db.DB)

	services := service.NewService(repo, cfg, store)

	return db, services
}

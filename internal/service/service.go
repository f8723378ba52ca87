package service

import (
	"github.com/Elly-Sitoya/Trend-wave-server/internal/config"
	"github.com/Elly-Sitoya/Trend-wave-server/internal/repository"
	"github.com/Elly-Sitoya/Trend-wave-server/internal/storage"
)

type Service struct {
	Auth AuthService
	User UserService
	Post PostService
}

func NewService(rep *repository.Repository, cfg *config.Config, storage storage.Storage) *Service {
	auth := NewAuthService(cfg)

	return &Service{
		Auth: auth,
		User: NewUserService(rep.User, auth, storage),
		Post: NewPostService(rep.Post, storage),
	}
}

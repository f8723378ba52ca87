package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/Elly-Sitoya/Trend-wave-server/internal/models"
	"github.com/Elly-Sitoya/Trend-wave-server/internal/repository"
	"github.com/Elly-Sitoya/Trend-wave-server/internal/storage"
)

// same cost the repository hashes with on registration
const bcryptCost = 10

type RegisterRequest struct {
	Name     string
	Email    string
	Password string
}

type EditUserRequest struct {
	UserID          string
	Name            string
	Email           string
	CurrentPassword string
	NewPassword     string
}

type UserService interface {
	Register(ctx context.Context, req RegisterRequest) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	GetUser(ctx context.Context, userID string) (*models.User, error)
	GetAuthors(ctx context.Context) ([]models.User, error)
	ChangeAvatar(ctx context.Context, userID, fileName string, file io.Reader, size int64) (*models.User, error)
	EditUser(ctx context.Context, req EditUserRequest) (*models.User, error)
}

type userService struct {
	userRepo repository.UserRepository
	auth     AuthService
	storage  storage.Storage
}

func NewUserService(userRepo repository.UserRepository, auth AuthService, storage storage.Storage) UserService {
	return &userService{
		userRepo: userRepo,
		auth:     auth,
		storage:  storage,
	}
}

func (s *userService) Register(ctx context.Context, req RegisterRequest) (*models.User, error) {
	email := strings.ToLower(req.Email)

	existing, err := s.userRepo.GetUserByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, models.ErrEmailExists
	}

	user := &models.User{
		Name:  req.Name,
		Email: email,
	}

	err = s.userRepo.CreateUser(ctx, user, req.Password)
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (s *userService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.userRepo.VerifyPassword(ctx, strings.ToLower(email), password)
	if err != nil {
		return nil, "", err
	}

	token, err := s.auth.IssueToken(user)
	if err != nil {
		return nil, "", fmt.Errorf("could not issue token: %w", err)
	}

	return user, token, nil
}

func (s *userService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	return s.userRepo.GetUserByID(ctx, userID)
}

func (s *userService) GetAuthors(ctx context.Context) ([]models.User, error) {
	return s.userRepo.GetAllUsers(ctx)
}

// ChangeAvatar writes the new file first, swaps the reference, and
// only then removes the old file. A failed removal leaves a stale
// blob behind but never a user pointing at a missing one.
func (s *userService) ChangeAvatar(ctx context.Context, userID, fileName string, file io.Reader, size int64) (*models.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	newName := storage.UniqueFileName(fileName)

	if err := s.storage.Save(ctx, newName, file, size); err != nil {
		return nil, fmt.Errorf("could not store avatar: %w", err)
	}

	oldAvatar := user.Avatar

	if err := s.userRepo.UpdateAvatar(ctx, userID, newName); err != nil {
		// record untouched, remove the file we just wrote
		if delErr := s.storage.Delete(ctx, newName); delErr != nil {
			log.Printf("Warning: could not remove avatar %s: %v", newName, delErr)
		}
		return nil, err
	}

	if oldAvatar != "" {
		if err := s.storage.Delete(ctx, oldAvatar); err != nil {
			log.Printf("Warning: could not delete old avatar %s: %v", oldAvatar, err)
		}
	}

	user.Avatar = newName
	return user, nil
}

func (s *userService) EditUser(ctx context.Context, req EditUserRequest) (*models.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	newEmail := strings.ToLower(req.Email)

	// the new email may only belong to the user being edited
	existing, err := s.userRepo.GetUserByEmail(ctx, newEmail)
	if err == nil && existing != nil && existing.UserID != req.UserID {
		return nil, models.ErrEmailExists
	}
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		return nil, err
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword))
	if err != nil {
		return nil, models.ErrInvalidCredentials
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("could not hash password: %w", err)
	}

	user.Name = req.Name
	user.Email = newEmail
	user.PasswordHash = string(hashedPassword)

	if err := s.userRepo.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

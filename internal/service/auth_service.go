package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Elly-Sitoya/Trend-wave-server/internal/config"
	"github.com/Elly-Sitoya/Trend-wave-server/internal/models"
)

// TokenIdentity is what a bearer token embeds about its holder.
type TokenIdentity struct {
	ID   string
	Name string
}

type AuthService interface {
	IssueToken(user *models.User) (string, error)
	ParseToken(tokenString string) (*TokenIdentity, error)
}

type authService struct {
	cfg *config.Config
}

func NewAuthService(cfg *config.Config) AuthService {
	return &authService{cfg: cfg}
}

func (s *authService) IssueToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"id":   user.UserID,
		"name": user.Name,
		"exp":  time.Now().Add(s.cfg.TokenDuration).Unix(),
		"iat":  time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(s.cfg.JWTSecretKey))
	if err != nil {
		return "", fmt.Errorf("could not sign token: %w", err)
	}

	return tokenString, nil
}

func (s *authService) ParseToken(tokenString string) (*TokenIdentity, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWTSecretKey), nil
	})
	if err != nil {
		return nil, fmt.Errorf("could not parse token: %w", err)
	}

	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}

	id, ok1 := claims["id"].(string)
	name, ok2 := claims["name"].(string)
	if !ok1 || !ok2 {
		return nil, fmt.Errorf("invalid identity in token")
	}

	return &TokenIdentity{ID: id, Name: name}, nil
}

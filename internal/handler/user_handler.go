package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/gorilla/mux"

	"github.com/Elly-Sitoya/Trend-wave-server/internal/service"
)

type RegisterRequest struct {
	Name      string `json:"name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required"`
	Password2 string `json:"password2" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type EditUserRequest struct {
	Name               string `json:"name" validate:"required"`
	Email              string `json:"email" validate:"required,email"`
	CurrentPassword    string `json:"currentPassword" validate:"required"`
	NewPassword        string `json:"newPassword" validate:"required"`
	ConfirmNewPassword string `json:"confirmNewPassword"`
}

type LoginResponse struct {
	Token string `json:"token"`
	ID    string `json:"id"`
	Name  string `json:"name"`
}

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Name == "" || req.Email == "" || req.Password == "" {
		WriteError(w, "Fill in all fields", http.StatusUnprocessableEntity)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Invalid email format", http.StatusUnprocessableEntity)
		return
	}

	if utf8.RuneCountInString(strings.TrimSpace(req.Password)) < 6 {
		WriteError(w, "Password must be atleast 6 characters", http.StatusUnprocessableEntity)
		return
	}

	if req.Password != req.Password2 {
		WriteError(w, "Passwords do not match", http.StatusUnprocessableEntity)
		return
	}

	user, err := h.UserService.Register(r.Context(), service.RegisterRequest{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	// acknowledgment only, the record itself is not returned
	WriteSuccess(w, map[string]string{"message": "New user " + user.Email + " created"}, http.StatusCreated)
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Email == "" || req.Password == "" {
		WriteError(w, "Fill in all fields", http.StatusUnprocessableEntity)
		return
	}

	user, token, err := h.UserService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, LoginResponse{
		Token: token,
		ID:    user.UserID,
		Name:  user.Name,
	}, http.StatusOK)
}

func (h *Handlers) GetUser(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["id"]

	user, err := h.UserService.GetUser(r.Context(), userID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, user, http.StatusOK)
}

func (h *Handlers) GetAuthors(w http.ResponseWriter, r *http.Request) {
	authors, err := h.UserService.GetAuthors(r.Context())
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, authors, http.StatusOK)
}

func (h *Handlers) ChangeAvatar(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		WriteError(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(h.Cfg.MaxAvatarSize); err != nil {
		WriteError(w, "Invalid multipart form", http.StatusUnprocessableEntity)
		return
	}

	file, header, err := r.FormFile("avatar")
	if err != nil {
		WriteError(w, "Choose an image", http.StatusUnprocessableEntity)
		return
	}
	defer file.Close()

	if header.Size > h.Cfg.MaxAvatarSize {
		WriteError(w, "Profile picture too big. Should be less than 500kb", http.StatusUnprocessableEntity)
		return
	}

	user, err := h.UserService.ChangeAvatar(r.Context(), userID, header.Filename, file, header.Size)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, user, http.StatusOK)
}

func (h *Handlers) EditUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		WriteError(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	var req EditUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Name == "" || req.Email == "" || req.CurrentPassword == "" || req.NewPassword == "" {
		WriteError(w, "Fill in all fields", http.StatusUnprocessableEntity)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Invalid email format", http.StatusUnprocessableEntity)
		return
	}

	// confirmation is optional but checked when the client sends it
	if req.ConfirmNewPassword != "" && req.NewPassword != req.ConfirmNewPassword {
		WriteError(w, "New passwords do not match", http.StatusUnprocessableEntity)
		return
	}

	user, err := h.UserService.EditUser(r.Context(), service.EditUserRequest{
		UserID:          userID,
		Name:            req.Name,
		Email:           req.Email,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, user, http.StatusOK)
}

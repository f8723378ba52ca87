package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/gorilla/mux"

	"github.com/Elly-Sitoya/Trend-wave-server/internal/models"
	"github.com/Elly-Sitoya/Trend-wave-server/internal/service"
)

type PostsResponse struct {
	Posts  []models.Post `json:"posts"`
	NbHits int           `json:"nbHits"`
}

func (h *Handlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		WriteError(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(h.Cfg.MaxThumbnailSize); err != nil {
		WriteError(w, "Invalid multipart form", http.StatusUnprocessableEntity)
		return
	}

	title := r.FormValue("title")
	category := r.FormValue("category")
	description := r.FormValue("description")

	if title == "" {
		WriteError(w, "Fill in title field", http.StatusUnprocessableEntity)
		return
	}
	if category == "" {
		WriteError(w, "Fill in category field", http.StatusUnprocessableEntity)
		return
	}
	if description == "" {
		WriteError(w, "Fill in description field", http.StatusUnprocessableEntity)
		return
	}
	if !models.ValidCategory(category) {
		WriteError(w, category+" is not supported", http.StatusUnprocessableEntity)
		return
	}

	file, header, err := r.FormFile("thumbnail")
	if err != nil {
		WriteError(w, "Choose thumbnail", http.StatusUnprocessableEntity)
		return
	}
	defer file.Close()

	if header.Size > h.Cfg.MaxThumbnailSize {
		WriteError(w, "Thumbnail is too large. It should be less than 2mb", http.StatusUnprocessableEntity)
		return
	}

	post, err := h.PostService.CreatePost(r.Context(), service.CreatePostRequest{
		Creator:     userID,
		Title:       title,
		Category:    category,
		Description: description,
		FileName:    header.Filename,
		File:        file,
		FileSize:    header.Size,
	})
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, post, http.StatusCreated)
}

func (h *Handlers) GetPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.PostService.GetPosts(r.Context())
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, PostsResponse{Posts: posts, NbHits: len(posts)}, http.StatusOK)
}

func (h *Handlers) GetPost(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["id"]

	post, err := h.PostService.GetPost(r.Context(), postID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, post, http.StatusOK)
}

func (h *Handlers) GetPostsByCategory(w http.ResponseWriter, r *http.Request) {
	category := mux.Vars(r)["category"]

	posts, err := h.PostService.GetPostsByCategory(r.Context(), category)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, posts, http.StatusOK)
}

func (h *Handlers) GetPostsByUser(w http.ResponseWriter, r *http.Request) {
	creatorID := mux.Vars(r)["id"]

	posts, err := h.PostService.GetPostsByCreator(r.Context(), creatorID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, posts, http.StatusOK)
}

// editPostBody carries the text fields of an edit, which arrive
// either as multipart form values (with a new thumbnail) or as JSON.
type editPostBody struct {
	Title       string `json:"title"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

func (h *Handlers) EditPost(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		WriteError(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	postID := mux.Vars(r)["id"]

	var body editPostBody
	var file multipart.File
	var fileName string
	var fileSize int64

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(h.Cfg.MaxThumbnailSize); err != nil {
			WriteError(w, "Invalid multipart form", http.StatusUnprocessableEntity)
			return
		}

		body.Title = r.FormValue("title")
		body.Category = r.FormValue("category")
		body.Description = r.FormValue("description")

		f, header, err := r.FormFile("thumbnail")
		if err == nil {
			defer f.Close()

			if header.Size > h.Cfg.MaxThumbnailSize {
				WriteError(w, "Thumbnail is too large. It should be less than 2mb", http.StatusUnprocessableEntity)
				return
			}

			file = f
			fileName = header.Filename
			fileSize = header.Size
		} else if !errors.Is(err, http.ErrMissingFile) {
			WriteError(w, "Invalid thumbnail upload", http.StatusUnprocessableEntity)
			return
		}
	} else {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			WriteError(w, "Invalid request body", http.StatusBadRequest)
			return
		}
	}

	if body.Title == "" || body.Category == "" || utf8.RuneCountInString(body.Description) < 12 {
		WriteError(w, "Fill in all fields", http.StatusUnprocessableEntity)
		return
	}
	if !models.ValidCategory(body.Category) {
		WriteError(w, body.Category+" is not supported", http.StatusUnprocessableEntity)
		return
	}

	req := service.EditPostRequest{
		PostID:      postID,
		ActorID:     userID,
		Title:       body.Title,
		Category:    body.Category,
		Description: body.Description,
		FileName:    fileName,
		FileSize:    fileSize,
	}
	if file != nil {
		req.File = io.Reader(file)
	}

	post, err := h.PostService.EditPost(r.Context(), req)
	if err != nil {
		if errors.Is(err, models.ErrForbidden) {
			WriteError(w, "Could not edit the post", http.StatusForbidden)
			return
		}
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, post, http.StatusOK)
}

func (h *Handlers) DeletePost(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		WriteError(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	postID := mux.Vars(r)["id"]
	if postID == "" {
		WriteError(w, "Post unavailable", http.StatusBadRequest)
		return
	}

	err := h.PostService.DeletePost(r.Context(), postID, userID)
	if err != nil {
		if errors.Is(err, models.ErrForbidden) {
			WriteError(w, "Post couldn't be deleted", http.StatusForbidden)
			return
		}
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, map[string]string{"message": "Post " + postID + " deleted successfully"}, http.StatusOK)
}

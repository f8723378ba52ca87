package service

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/Elly-Sitoya/Trend-wave-server/internal/models"
	"github.com/Elly-Sitoya/Trend-wave-server/internal/repository"
	"github.com/Elly-Sitoya/Trend-wave-server/internal/storage"
)

type CreatePostRequest struct {
	Creator     string
	Title       string
	Category    string
	Description string
	FileName    string
	File        io.Reader
	FileSize    int64
}

type EditPostRequest struct {
	PostID      string
	ActorID     string
	Title       string
	Category    string
	Description string
	// File is nil when the thumbnail is not being replaced
	FileName string
	File     io.Reader
	FileSize int64
}

type PostService interface {
	CreatePost(ctx context.Context, req CreatePostRequest) (*models.Post, error)
	GetPosts(ctx context.Context) ([]models.Post, error)
	GetPost(ctx context.Context, postID string) (*models.Post, error)
	GetPostsByCategory(ctx context.Context, category string) ([]models.Post, error)
	GetPostsByCreator(ctx context.Context, creatorID string) ([]models.Post, error)
	EditPost(ctx context.Context, req EditPostRequest) (*models.Post, error)
	DeletePost(ctx context.Context, postID, actorID string) error
}

type postService struct {
	postRepo repository.PostRepository
	storage  storage.Storage
}

func NewPostService(postRepo repository.PostRepository, storage storage.Storage) PostService {
	return &postService{
		postRepo: postRepo,
		storage:  storage,
	}
}

// CanMutate is the ownership rule for posts: only the creator may
// edit or delete one.
func CanMutate(actorID string, post *models.Post) bool {
	return actorID != "" && actorID == post.Creator
}

func (p *postService) CreatePost(ctx context.Context, req CreatePostRequest) (*models.Post, error) {
	newName := storage.UniqueFileName(req.FileName)

	if err := p.storage.Save(ctx, newName, req.File, req.FileSize); err != nil {
		return nil, fmt.Errorf("could not store thumbnail: %w", err)
	}

	post := &models.Post{
		Title:       req.Title,
		Category:    req.Category,
		Description: req.Description,
		Creator:     req.Creator,
		Thumbnail:   newName,
	}

	err := p.postRepo.Create(ctx, post)
	if err != nil {
		// no record was written, remove the orphaned file
		if delErr := p.storage.Delete(ctx, newName); delErr != nil {
			log.Printf("Warning: could not remove thumbnail %s: %v", newName, delErr)
		}
		return nil, err
	}

	return post, nil
}

func (p *postService) GetPosts(ctx context.Context) ([]models.Post, error) {
	return p.postRepo.GetAll(ctx)
}

func (p *postService) GetPost(ctx context.Context, postID string) (*models.Post, error) {
	return p.postRepo.GetByID(ctx, postID)
}

func (p *postService) GetPostsByCategory(ctx context.Context, category string) ([]models.Post, error) {
	posts, err := p.postRepo.GetByCategory(ctx, category)
	if err != nil {
		return nil, err
	}

	if len(posts) == 0 {
		return nil, fmt.Errorf("no posts with %s category: %w", category, models.ErrNotFound)
	}

	return posts, nil
}

func (p *postService) GetPostsByCreator(ctx context.Context, creatorID string) ([]models.Post, error) {
	posts, err := p.postRepo.GetByCreator(ctx, creatorID)
	if err != nil {
		return nil, err
	}

	if len(posts) == 0 {
		return nil, fmt.Errorf("no posts of author %s: %w", creatorID, models.ErrNotFound)
	}

	return posts, nil
}

// EditPost replaces the thumbnail write-new-first: the new file is
// stored and the record updated before the old file is touched, so
// the record never references a missing blob.
func (p *postService) EditPost(ctx context.Context, req EditPostRequest) (*models.Post, error) {
	post, err := p.postRepo.GetByID(ctx, req.PostID)
	if err != nil {
		return nil, err
	}

	if !CanMutate(req.ActorID, post) {
		return nil, models.ErrForbidden
	}

	post.Title = req.Title
	post.Category = req.Category
	post.Description = req.Description

	if req.File == nil {
		if err := p.postRepo.Update(ctx, post); err != nil {
			return nil, err
		}
		return post, nil
	}

	oldThumbnail := post.Thumbnail
	newName := storage.UniqueFileName(req.FileName)

	if err := p.storage.Save(ctx, newName, req.File, req.FileSize); err != nil {
		return nil, fmt.Errorf("could not store thumbnail: %w", err)
	}

	post.Thumbnail = newName

	if err := p.postRepo.Update(ctx, post); err != nil {
		if delErr := p.storage.Delete(ctx, newName); delErr != nil {
			log.Printf("Warning: could not remove thumbnail %s: %v", newName, delErr)
		}
		return nil, err
	}

	if err := p.storage.Delete(ctx, oldThumbnail); err != nil {
		log.Printf("Warning: could not delete old thumbnail %s: %v", oldThumbnail, err)
	}

	return post, nil
}

func (p *postService) DeletePost(ctx context.Context, postID, actorID string) error {
	post, err := p.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}

	if !CanMutate(actorID, post) {
		return models.ErrForbidden
	}

	if err := p.postRepo.Delete(ctx, postID, post.Creator); err != nil {
		return err
	}

	if err := p.storage.Delete(ctx, post.Thumbnail); err != nil {
		log.Printf("Warning: could not delete thumbnail %s: %v", post.Thumbnail, err)
	}

	return nil
}

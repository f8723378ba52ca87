package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Elly-Sitoya/Trend-wave-server/internal/models"
)

type PostRepositoryImpl struct {
	db *sqlx.DB
}

func NewPostRepository(db *sqlx.DB) *PostRepositoryImpl {
	return &PostRepositoryImpl{db: db}
}

// Create inserts the post and bumps the creator's post counter inside
// one transaction, so the counter cannot drift from the real count.
func (r *PostRepositoryImpl) Create(ctx context.Context, post *models.Post) error {
	if post.PostID == "" {
		post.PostID = uuid.New().String()
	}

	now := time.Now()
	post.CreatedAt = now
	post.UpdatedAt = now

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO posts (post_id, title, category, description, creator, thumbnail, created_at, updated_at)
		VALUES (:post_id, :title, :category, :description, :creator, :thumbnail, :created_at, :updated_at)
	`

	_, err = tx.NamedExecContext(ctx, query, post)
	if err != nil {
		return fmt.Errorf("could not create post: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE users SET posts = posts + 1 WHERE user_id = $1`, post.Creator)
	if err != nil {
		return fmt.Errorf("could not update post count: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("could not commit transaction: %w", err)
	}

	return nil
}

func (r *PostRepositoryImpl) GetByID(ctx context.Context, postID string) (*models.Post, error) {
	query := `SELECT * FROM posts WHERE post_id = $1`

	var post models.Post
	err := r.db.GetContext(ctx, &post, query, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("post %s: %w", postID, models.ErrNotFound)
		}
		return nil, fmt.Errorf("could not get post: %w", err)
	}

	return &post, nil
}

func (r *PostRepositoryImpl) GetAll(ctx context.Context) ([]models.Post, error) {
	query := `SELECT * FROM posts ORDER BY updated_at DESC`

	var posts []models.Post
	err := r.db.SelectContext(ctx, &posts, query)
	if err != nil {
		return nil, fmt.Errorf("could not list posts: %w", err)
	}

	return posts, nil
}

func (r *PostRepositoryImpl) GetByCategory(ctx context.Context, category string) ([]models.Post, error) {
	query := `SELECT * FROM posts WHERE category = $1 ORDER BY created_at DESC`

	var posts []models.Post
	err := r.db.SelectContext(ctx, &posts, query, category)
	if err != nil {
		return nil, fmt.Errorf("could not list posts by category: %w", err)
	}

	return posts, nil
}

func (r *PostRepositoryImpl) GetByCreator(ctx context.Context, creatorID string) ([]models.Post, error) {
	query := `SELECT * FROM posts WHERE creator = $1 ORDER BY created_at DESC`

	var posts []models.Post
	err := r.db.SelectContext(ctx, &posts, query, creatorID)
	if err != nil {
		return nil, fmt.Errorf("could not list posts by creator: %w", err)
	}

	return posts, nil
}

func (r *PostRepositoryImpl) Update(ctx context.Context, post *models.Post) error {
	post.UpdatedAt = time.Now()

	query := `
		UPDATE posts SET
			title = :title,
			category = :category,
			description = :description,
			thumbnail = :thumbnail,
			updated_at = :updated_at
		WHERE post_id = :post_id
	`

	result, err := r.db.NamedExecContext(ctx, query, post)
	if err != nil {
		return fmt.Errorf("could not update post: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not check updated rows: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("post %s: %w", post.PostID, models.ErrNotFound)
	}

	return nil
}

// Delete removes the post and drops the creator's post counter in the
// same transaction.
func (r *PostRepositoryImpl) Delete(ctx context.Context, postID, creatorID string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `DELETE FROM posts WHERE post_id = $1`, postID)
	if err != nil {
		return fmt.Errorf("could not delete post: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not check deleted rows: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("post %s: %w", postID, models.ErrNotFound)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE users SET posts = posts - 1 WHERE user_id = $1`, creatorID)
	if err != nil {
		return fmt.Errorf("could not update post count: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("could not commit transaction: %w", err)
	}

	return nil
}

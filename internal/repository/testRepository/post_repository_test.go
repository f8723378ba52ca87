package testRepository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Elly-Sitoya/Trend-wave-server/internal/models"
	"github.com/Elly-Sitoya/Trend-wave-server/internal/repository"
)

func setupMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	t.Cleanup(func() { sqlxDB.Close() })

	return sqlxDB, mock
}

func postRows(posts ...models.Post) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"post_id", "title", "category", "description", "creator", "thumbnail", "created_at", "updated_at",
	})
	for _, p := range posts {
		rows.AddRow(p.PostID, p.Title, p.Category, p.Description, p.Creator, p.Thumbnail, p.CreatedAt, p.UpdatedAt)
	}
	return rows
}

func TestPostRepository_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := repository.NewPostRepository(db)
	ctx := context.Background()

	t.Run("insert and counter share one transaction", func(t *testing.T) {
		post := &models.Post{
			Title:       "Hi",
			Category:    "Education",
			Description: "a long enough description",
			Creator:     "user-123",
			Thumbnail:   "pic-abc.png",
		}

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO posts").
			WithArgs(
				sqlmock.AnyArg(), // generated post_id
				"Hi",
				"Education",
				"a long enough description",
				"user-123",
				"pic-abc.png",
				sqlmock.AnyArg(),
				sqlmock.AnyArg(),
			).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectExec(`UPDATE users SET posts = posts \+ 1`).
			WithArgs("user-123").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.Create(ctx, post)

		assert.NoError(t, err)
		assert.NotEmpty(t, post.PostID)
		assert.False(t, post.CreatedAt.IsZero())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("failed insert rolls everything back", func(t *testing.T) {
		post := &models.Post{
			Title:     "Hi",
			Creator:   "user-123",
			Thumbnail: "pic.png",
		}

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO posts").
			WillReturnError(assert.AnError)
		mock.ExpectRollback()

		err := repo.Create(ctx, post)

		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostRepository_GetByID(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := repository.NewPostRepository(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT \* FROM posts WHERE post_id`).
			WithArgs("post-1").
			WillReturnRows(postRows(models.Post{
				PostID:  "post-1",
				Title:   "Hi",
				Creator: "user-123",
			}))

		post, err := repo.GetByID(ctx, "post-1")

		require.NoError(t, err)
		assert.Equal(t, "post-1", post.PostID)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT \* FROM posts WHERE post_id`).
			WithArgs("ghost").
			WillReturnError(sql.ErrNoRows)

		post, err := repo.GetByID(ctx, "ghost")

		assert.Nil(t, post)
		assert.ErrorIs(t, err, models.ErrNotFound)
	})
}

func TestPostRepository_Ordering(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := repository.NewPostRepository(db)
	ctx := context.Background()

	now := time.Now()

	t.Run("all posts by updated_at desc", func(t *testing.T) {
		mock.ExpectQuery(`SELECT \* FROM posts ORDER BY updated_at DESC`).
			WillReturnRows(postRows(
				models.Post{PostID: "post-2", UpdatedAt: now},
				models.Post{PostID: "post-1", UpdatedAt: now.Add(-time.Hour)},
			))

		posts, err := repo.GetAll(ctx)

		require.NoError(t, err)
		require.Len(t, posts, 2)
		assert.Equal(t, "post-2", posts[0].PostID)
	})

	t.Run("category posts by created_at desc", func(t *testing.T) {
		mock.ExpectQuery(`SELECT \* FROM posts WHERE category = \$1 ORDER BY created_at DESC`).
			WithArgs("Education").
			WillReturnRows(postRows(
				models.Post{PostID: "post-3", Category: "Education", CreatedAt: now},
			))

		posts, err := repo.GetByCategory(ctx, "Education")

		require.NoError(t, err)
		require.Len(t, posts, 1)
		assert.Equal(t, "Education", posts[0].Category)
	})

	t.Run("creator posts by created_at desc", func(t *testing.T) {
		mock.ExpectQuery(`SELECT \* FROM posts WHERE creator = \$1 ORDER BY created_at DESC`).
			WithArgs("user-123").
			WillReturnRows(postRows(
				models.Post{PostID: "post-4", Creator: "user-123", CreatedAt: now},
			))

		posts, err := repo.GetByCreator(ctx, "user-123")

		require.NoError(t, err)
		require.Len(t, posts, 1)
	})
}

func TestPostRepository_Update(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := repository.NewPostRepository(db)
	ctx := context.Background()

	t.Run("updates fields", func(t *testing.T) {
		post := &models.Post{
			PostID:      "post-1",
			Title:       "Updated",
			Category:    "Education",
			Description: "a long enough description",
			Creator:     "user-123",
			Thumbnail:   "pic.png",
		}

		mock.ExpectExec("UPDATE posts SET").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Update(ctx, post)

		assert.NoError(t, err)
		assert.False(t, post.UpdatedAt.IsZero())
	})

	t.Run("missing post", func(t *testing.T) {
		post := &models.Post{PostID: "ghost"}

		mock.ExpectExec("UPDATE posts SET").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Update(ctx, post)

		assert.ErrorIs(t, err, models.ErrNotFound)
	})
}

func TestPostRepository_Delete(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := repository.NewPostRepository(db)
	ctx := context.Background()

	t.Run("delete and counter share one transaction", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM posts").
			WithArgs("post-1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE users SET posts = posts - 1").
			WithArgs("user-123").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.Delete(ctx, "post-1", "user-123")

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing post leaves the counter alone", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM posts").
			WithArgs("ghost").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := repo.Delete(ctx, "ghost", "user-123")

		assert.ErrorIs(t, err, models.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

package storage

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Storage is the blob store holding uploaded images. Files are
// addressed by the generated name returned from UniqueFileName.
type Storage interface {
	Save(ctx context.Context, fileName string, file io.Reader, size int64) error
	Delete(ctx context.Context, fileName string) error
}

// UniqueFileName appends a random suffix to the uploaded name so two
// uploads of the same file never collide: <base><uuid><ext>.
func UniqueFileName(original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	if ext == "" {
		ext = ".jpg"
	}
	base := strings.TrimSuffix(filepath.Base(original), filepath.Ext(original))
	return base + uuid.New().String() + ext
}

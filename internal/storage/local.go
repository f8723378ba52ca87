package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalStorage keeps blobs in a directory on disk. This is the
// directory the /uploads/ static route serves.
type LocalStorage struct {
	dir string
}

func NewLocalStorage(dir string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("could not create uploads directory: %w", err)
	}
	return &LocalStorage{dir: dir}, nil
}

func (s *LocalStorage) Save(ctx context.Context, fileName string, file io.Reader, size int64) error {
	// fileName comes from UniqueFileName, but never trust it with a path
	dst := filepath.Join(s.dir, filepath.Base(fileName))

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("could not create file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, file); err != nil {
		os.Remove(dst)
		return fmt.Errorf("could not write file: %w", err)
	}

	return nil
}

func (s *LocalStorage) Delete(ctx context.Context, fileName string) error {
	err := os.Remove(filepath.Join(s.dir, filepath.Base(fileName)))
	if err != nil {
		return fmt.Errorf("could not delete file: %w", err)
	}
	return nil
}

package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"internhub/models"
	"os"
	"path/filepath"
	"sync"
)

// FileRepository stores the record set as one JSON array on disk.
type FileRepository struct {
	path string
	mu   sync.Mutex // Protects concurrent writes to the filesystem
}

// NewFileRepository ensures the parent directory exists.
func NewFileRepository(path string) (*FileRepository, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}
	return &FileRepository{path: path}, nil
}

// LoadAll reads the file. A missing file is an empty set; an unreadable or
// corrupt file is an error so that a later save cannot wipe it.
func (f *FileRepository) LoadAll(ctx context.Context) ([]models.Enrollment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	content, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return []models.Enrollment{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.path, err)
	}
	if len(content) == 0 {
		return []models.Enrollment{}, nil
	}

	var enrollments []models.Enrollment
	if err := json.Unmarshal(content, &enrollments); err != nil {
		return nil, fmt.Errorf("decode %s: %w", f.path, err)
	}
	return enrollments, nil
}

// SaveAll writes the whole set atomically: temp file first, then rename.
func (f *FileRepository) SaveAll(ctx context.Context, enrollments []models.Enrollment) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if enrollments == nil {
		enrollments = []models.Enrollment{}
	}
	bytes, err := json.MarshalIndent(enrollments, "", "  ")
	if err != nil {
		return err
	}

	tempPath := f.path + ".tmp"
	if err := os.WriteFile(tempPath, bytes, 0644); err != nil {
		return err
	}
	// Readers see either the old file or the new one, never a partial write.
	return os.Rename(tempPath, f.path)
}

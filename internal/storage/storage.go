package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// FileStore persists uploaded blobs under opaque keys.
type FileStore interface {
	Save(ctx context.Context, key string, data []byte) error
	Remove(ctx context.Context, key string) error
}

// LocalStore writes blobs to the local filesystem under a base directory.
type LocalStore struct {
	baseDir string
}

// NewLocalStore creates a disk-backed file store rooted at baseDir.
func NewLocalStore(baseDir string) *LocalStore {
	return &LocalStore{baseDir: baseDir}
}

// Save writes data at key, creating parent directories as needed.
func (s *LocalStore) Save(_ context.Context, key string, data []byte) error {
	path := filepath.Join(s.baseDir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create media dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write blob: %w", err)
	}
	return nil
}

// Remove deletes the blob at key. Missing blobs are not an error.
func (s *LocalStore) Remove(_ context.Context, key string) error {
	err := os.Remove(filepath.Join(s.baseDir, filepath.FromSlash(key)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove blob: %w", err)
	}
	return nil
}

// NewKey builds a storage key segmented by parent ID with a fresh random
// file name. Called for every write, including updates, so a stored path is
// never reused.
func NewKey(kind string, parentID uint, ext string) string {
	return fmt.Sprintf("%s/%d/%s%s", kind, parentID, uuid.New().String(), ext)
}

package repository

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
)

// FileRepository implements Repository with one JSON file per slot under a directory
type FileRepository struct {
	items *slotItems
}

// NewFileRepository creates a file-backed repository rooted at dir
func NewFileRepository(dir, key string) (*FileRepository, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	return &FileRepository{
		items: &slotItems{backend: &fileSlots{dir: dir}, key: key},
	}, nil
}

// Items returns the item repository
func (r *FileRepository) Items() ItemRepository {
	return r.items
}

// Close is a no-op; files are closed after every write
func (r *FileRepository) Close() error {
	return nil
}

type fileSlots struct {
	dir string
}

func (s *fileSlots) path(key string) string {
	return filepath.Join(s.dir, filepath.Base(key)+".json")
}

func (s *fileSlots) get(key string) ([]byte, bool, error) {
	raw, err := os.ReadFile(s.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return raw, true, nil
}

// put replaces the slot file atomically so a crash never leaves a half-written blob
func (s *fileSlots) put(key string, value []byte) error {
	return renameio.WriteFile(s.path(key), value, 0o644)
}

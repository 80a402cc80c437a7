package repository

import (
	"fmt"

	"github.com/dastanaron/mediacat/internal/models"
)

// ItemRepository persists the whole media collection as one serialized blob
type ItemRepository interface {
	// LoadAll returns the stored collection. A missing or malformed blob
	// yields an empty collection; it never fails.
	LoadAll() []models.MediaItem
	// SaveAll overwrites the stored collection with items.
	SaveAll(items []models.MediaItem) error
}

// Repository combines all repositories
type Repository interface {
	Items() ItemRepository
	Close() error
}

// slotBackend is a key-value store holding one value per persistence slot
type slotBackend interface {
	get(key string) ([]byte, bool, error)
	put(key string, value []byte) error
}

const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
)

// Open returns the repository for backend. For the file backend path is a directory.
func Open(backend, path, key string) (Repository, error) {
	switch backend {
	case BackendSQLite, "":
		return NewSQLiteRepository(path, key)
	case BackendFile:
		return NewFileRepository(path, key)
	default:
		return nil, fmt.Errorf("unknown backend %q", backend)
	}
}

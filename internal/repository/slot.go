package repository

import (
	"encoding/json"
	"fmt"

	"github.com/dastanaron/mediacat/internal/log"
	"github.com/dastanaron/mediacat/internal/models"
)

// slotItems implements ItemRepository on top of any slot backend
type slotItems struct {
	backend slotBackend
	key     string
}

func (r *slotItems) LoadAll() []models.MediaItem {
	logger := log.WithComponent("repository")

	raw, ok, err := r.backend.get(r.key)
	if err != nil {
		logger.Warn().Err(err).Str("key", r.key).Msg("read slot failed, using empty collection")
		return []models.MediaItem{}
	}
	if !ok || len(raw) == 0 {
		return []models.MediaItem{}
	}

	var items []models.MediaItem
	if err := json.Unmarshal(raw, &items); err != nil {
		logger.Warn().Err(err).Str("key", r.key).Msg("malformed slot content, using empty collection")
		return []models.MediaItem{}
	}
	if items == nil {
		items = []models.MediaItem{}
	}
	return items
}

func (r *slotItems) SaveAll(items []models.MediaItem) error {
	if items == nil {
		items = []models.MediaItem{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode collection: %w", err)
	}
	if err := r.backend.put(r.key, raw); err != nil {
		return fmt.Errorf("write slot %s: %w", r.key, err)
	}
	lg := log.WithComponent("repository")
	lg.Debug().
		Str("key", r.key).
		Int("items", len(items)).
		Int("bytes", len(raw)).
		Msg("collection saved")
	return nil
}

package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dastanaron/mediacat/internal/log"
	"github.com/dastanaron/mediacat/internal/models"
	"github.com/dastanaron/mediacat/internal/parser"
	"github.com/dastanaron/mediacat/internal/repository"
	"github.com/dastanaron/mediacat/internal/service"
)

// ImportCommand merges items from a JSON blob or an exported HTML gallery
type ImportCommand struct {
	catalog *service.CatalogService
	out     io.Writer
	now     func() time.Time
}

// NewImportCommand creates a new import command
func NewImportCommand(catalog *service.CatalogService, out io.Writer) *ImportCommand {
	return &ImportCommand{catalog: catalog, out: out, now: time.Now}
}

// Execute imports items from filePath. Items whose id is already stored are
// skipped, as are items without a title.
func (c *ImportCommand) Execute(filePath string) error {
	file, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("cannot open file: %w", err)
	}
	defer file.Close()

	var incoming []models.MediaItem
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".html", ".htm":
		incoming, err = parser.ParseGalleryHTML(file)
		if err != nil {
			return fmt.Errorf("failed to parse HTML: %w", err)
		}
	default:
		if err := json.NewDecoder(file).Decode(&incoming); err != nil {
			return fmt.Errorf("failed to parse JSON: %w", err)
		}
	}

	logger := log.WithComponent("import")
	c.catalog.Reload()
	merged := c.catalog.ListAll()
	seen := make(map[string]bool, len(merged))
	for _, it := range merged {
		seen[it.ID] = true
	}

	imported, skipped := 0, 0
	for _, it := range incoming {
		it.Title = strings.TrimSpace(it.Title)
		if it.Title == "" {
			logger.Warn().Str("id", it.ID).Msg("skipping item without title")
			skipped++
			continue
		}
		if it.ID == "" {
			it.ID = repository.UID()
		}
		if seen[it.ID] {
			skipped++
			continue
		}
		seen[it.ID] = true
		it.Rating = max(models.MinRating, min(it.Rating, models.MaxRating))
		if it.CreatedAt == 0 {
			it.CreatedAt = c.now().UnixMilli()
		}
		merged = append(merged, it)
		imported++
	}

	if imported > 0 {
		if err := c.catalog.Replace(merged); err != nil {
			return fmt.Errorf("failed to save imported items: %w", err)
		}
	}

	logger.Info().Int("imported", imported).Int("skipped", skipped).Str("file", filePath).Msg("import finished")
	fmt.Fprintf(c.out, "Imported %d items, skipped %d.\n", imported, skipped)
	return nil
}

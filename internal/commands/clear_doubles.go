package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/dastanaron/mediacat/internal/log"
	"github.com/dastanaron/mediacat/internal/models"
	"github.com/dastanaron/mediacat/internal/service"
)

// ClearDoublesCommand handles removal of duplicate items
type ClearDoublesCommand struct {
	catalog *service.CatalogService
	out     io.Writer
}

// NewClearDoublesCommand creates a new clear doubles command
func NewClearDoublesCommand(catalog *service.CatalogService, out io.Writer) *ClearDoublesCommand {
	return &ClearDoublesCommand{catalog: catalog, out: out}
}

// Execute removes items sharing type, title and date with an earlier item in
// storage order. Comparison ignores case and surrounding spaces.
func (c *ClearDoublesCommand) Execute() error {
	c.catalog.Reload()
	all := c.catalog.ListAll()

	keep := make(map[string]string, len(all)) // key -> id of the item kept
	kept := make([]models.MediaItem, 0, len(all))
	for _, it := range all {
		key := doubleKey(it)
		if existingID, ok := keep[key]; ok {
			fmt.Fprintf(c.out, "Found duplicate: '%s' (ID: %s, keeping ID: %s)\n", it.Title, it.ID, existingID)
			continue
		}
		keep[key] = it.ID
		kept = append(kept, it)
	}

	removed := len(all) - len(kept)
	if removed == 0 {
		fmt.Fprintln(c.out, "No duplicate items found.")
		return nil
	}

	if err := c.catalog.Replace(kept); err != nil {
		return fmt.Errorf("failed to save catalog: %w", err)
	}
	lg := log.WithComponent("clear-doubles")
	lg.Info().Int("removed", removed).Msg("duplicates removed")
	fmt.Fprintf(c.out, "Deleted %d duplicate item(s).\n", removed)
	return nil
}

func doubleKey(it models.MediaItem) string {
	norm := func(s string) string { return strings.ToLower(strings.TrimSpace(s)) }
	return norm(it.Type) + "\x00" + norm(it.Title) + "\x00" + norm(it.Date)
}

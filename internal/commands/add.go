package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/dastanaron/mediacat/internal/models"
	"github.com/dastanaron/mediacat/internal/service"
	"github.com/dastanaron/mediacat/internal/thumbnail"
)

// AddCommand creates one item from command line values
type AddCommand struct {
	catalog *service.CatalogService
	thumbs  *thumbnail.Processor
	out     io.Writer
}

// NewAddCommand creates a new add command
func NewAddCommand(catalog *service.CatalogService, thumbs *thumbnail.Processor, out io.Writer) *AddCommand {
	return &AddCommand{catalog: catalog, thumbs: thumbs, out: out}
}

// Execute validates d and stores it. A non-empty imagePath goes through the
// same JPEG check and downscale as the form.
func (c *AddCommand) Execute(ctx context.Context, d models.Draft, imagePath string) (models.MediaItem, error) {
	if imagePath != "" {
		dataURL, err := c.thumbs.Load(ctx, imagePath)
		if err != nil {
			return models.MediaItem{}, fmt.Errorf("failed to attach image: %w", err)
		}
		d.Image = dataURL
	}

	c.catalog.Reload()
	item, err := c.catalog.Create(d)
	if err != nil {
		return models.MediaItem{}, err
	}
	fmt.Fprintf(c.out, "Added '%s' (ID: %s)\n", item.Title, item.ID)
	return item, nil
}

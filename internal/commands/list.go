package commands

import (
	"fmt"
	"io"

	"github.com/dastanaron/mediacat/internal/service"
	"github.com/dastanaron/mediacat/internal/view"
)

// ListCommand prints the filtered and sorted cards as text
type ListCommand struct {
	catalog *service.CatalogService
	out     io.Writer
}

// NewListCommand creates a new list command
func NewListCommand(catalog *service.CatalogService, out io.Writer) *ListCommand {
	return &ListCommand{catalog: catalog, out: out}
}

// Execute renders the cards matching q
func (c *ListCommand) Execute(q service.Query) error {
	c.catalog.Reload()
	lv := view.NewListView(c.catalog.Search(q))
	if lv.Empty {
		_, err := fmt.Fprintln(c.out, view.NoResults)
		return err
	}
	for _, card := range lv.Cards {
		if _, err := fmt.Fprintf(c.out, "%s  %s  [%s]\n", card.Stars, card.Title, card.ID); err != nil {
			return err
		}
		if meta := card.Meta(); meta != "" {
			fmt.Fprintf(c.out, "    %s\n", meta)
		}
	}
	return nil
}

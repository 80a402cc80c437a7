package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dastanaron/mediacat/internal/models"
	"github.com/dastanaron/mediacat/internal/parser"
	"github.com/dastanaron/mediacat/internal/service"
	"github.com/dastanaron/mediacat/internal/view"

	"github.com/google/renameio/v2"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Export formats
const (
	FormatJSON = "json"
	FormatHTML = "html"
)

const galleryStyle = `body{background:#0b1020;color:#e6e9ef;font-family:sans-serif;margin:24px}
.grid{display:grid;grid-template-columns:repeat(auto-fill,minmax(220px,1fr));gap:16px}
.card{background:#141b2d;border-radius:10px;overflow:hidden}
.card img{width:100%;aspect-ratio:16/10;object-fit:cover;display:block}
.card h3,.card div{margin:8px 12px}
.tags{color:#9aa1b2}.stars{color:#f5c518}`

// ExportCommand writes the catalog to a file
type ExportCommand struct {
	catalog *service.CatalogService
	out     io.Writer
}

// NewExportCommand creates a new export command
func NewExportCommand(catalog *service.CatalogService, out io.Writer) *ExportCommand {
	return &ExportCommand{catalog: catalog, out: out}
}

// Execute exports to filePath. An empty format is taken from the file extension.
// JSON keeps storage order and the browser blob layout; HTML renders the cards
// newest first, the way the list shows them.
func (c *ExportCommand) Execute(filePath, format string) error {
	if format == "" {
		format = FormatJSON
		switch strings.ToLower(filepath.Ext(filePath)) {
		case ".html", ".htm":
			format = FormatHTML
		}
	}

	c.catalog.Reload()
	var (
		data  []byte
		err   error
		count int
	)
	switch format {
	case FormatJSON:
		items := c.catalog.ListAll()
		count = len(items)
		data, err = json.MarshalIndent(items, "", "  ")
	case FormatHTML:
		items := c.catalog.Search(service.Query{})
		count = len(items)
		data, err = renderGallery(items)
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", format, err)
	}

	if err := renameio.WriteFile(filePath, data, 0o644); err != nil {
		return fmt.Errorf("cannot write file: %w", err)
	}

	fmt.Fprintf(c.out, "Exported %d items to %s\n", count, filePath)
	return nil
}

// renderGallery builds a static page with one card per item
func renderGallery(items []models.MediaItem) ([]byte, error) {
	grid := element(atom.Section, "class", "grid")
	for _, it := range items {
		grid.AppendChild(cardNode(it))
	}

	head := element(atom.Head)
	head.AppendChild(element(atom.Meta, "charset", "utf-8"))
	head.AppendChild(withText(element(atom.Title), "Media library"))
	head.AppendChild(withText(element(atom.Style), galleryStyle))

	body := element(atom.Body)
	body.AppendChild(withText(element(atom.H1), "Media library"))
	if len(items) == 0 {
		body.AppendChild(withText(element(atom.P), view.NoResults))
	}
	body.AppendChild(grid)

	root := element(atom.Html, "lang", "en")
	root.AppendChild(head)
	root.AppendChild(body)

	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})
	doc.AppendChild(root)

	var buf bytes.Buffer
	if err := html.Render(&buf, doc); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func cardNode(it models.MediaItem) *html.Node {
	card := view.NewCard(it)

	article := element(atom.Article,
		"class", parser.CardClass,
		parser.AttrID, it.ID,
		parser.AttrType, it.Type,
		parser.AttrTags, it.Tags,
		parser.AttrDate, it.Date,
		parser.AttrRating, strconv.Itoa(it.Rating),
		parser.AttrCreatedAt, strconv.FormatInt(it.CreatedAt, 10),
	)

	imgClass := "placeholder"
	if card.HasImage {
		imgClass = parser.ThumbnailClass
	}
	alt := card.Caption
	if alt == "" {
		alt = card.Title
	}
	article.AppendChild(element(atom.Img, "class", imgClass, "src", card.Image, "alt", alt))
	article.AppendChild(withText(element(atom.H3, "class", parser.TitleClass), card.Title))
	if card.Type != "" {
		article.AppendChild(withText(element(atom.Div, "class", "type"), card.Type))
	}
	if card.Tags != "" {
		article.AppendChild(withText(element(atom.Div, "class", "tags"), card.Tags))
	}
	if card.Date != "" {
		article.AppendChild(withText(element(atom.Div, "class", "date"), card.Date))
	}
	article.AppendChild(withText(element(atom.Div, "class", "stars"), card.Stars))
	return article
}

// element creates an element node; attrs are key, value pairs
func element(a atom.Atom, attrs ...string) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
	for i := 0; i+1 < len(attrs); i += 2 {
		n.Attr = append(n.Attr, html.Attribute{Key: attrs[i], Val: attrs[i+1]})
	}
	return n
}

func withText(n *html.Node, text string) *html.Node {
	n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	return n
}

package parser

import (
	"io"
	"strconv"
	"strings"

	"github.com/dastanaron/mediacat/internal/models"

	"golang.org/x/net/html"
)

// Markup of an exported gallery. Every card is an <article class="card"> whose
// data-* attributes carry the raw item fields; the visible children are for people.
const (
	CardClass      = "card"
	AttrID         = "data-id"
	AttrType       = "data-type"
	AttrTags       = "data-tags"
	AttrDate       = "data-date"
	AttrRating     = "data-rating"
	AttrCreatedAt  = "data-created-at"
	TitleClass     = "title"
	ThumbnailClass = "thumbnail"
)

// ParseGalleryHTML reads the cards of an exported gallery.
// Placeholder images are not thumbnails and come back as an empty Image.
func ParseGalleryHTML(r io.Reader) ([]models.MediaItem, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	var items []models.MediaItem

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "article" && hasClass(n, CardClass) {
			items = append(items, parseCard(n))
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(doc)
	return items, nil
}

func parseCard(n *html.Node) models.MediaItem {
	it := models.MediaItem{
		ID:   attr(n, AttrID),
		Type: attr(n, AttrType),
		Tags: attr(n, AttrTags),
		Date: attr(n, AttrDate),
	}
	// malformed numbers read as zero, the importer clamps and stamps them
	it.Rating, _ = strconv.Atoi(attr(n, AttrRating))
	it.CreatedAt, _ = strconv.ParseInt(attr(n, AttrCreatedAt), 10, 64)

	var walk func(*html.Node)
	walk = func(c *html.Node) {
		if c.Type == html.ElementNode {
			switch {
			case c.Data == "img" && hasClass(c, ThumbnailClass):
				it.Image = attr(c, "src")
			case hasClass(c, TitleClass):
				it.Title = strings.TrimSpace(textContent(c))
			}
		}
		for cc := c.FirstChild; cc != nil; cc = cc.NextSibling {
			walk(cc)
		}
	}
	walk(n)
	return it
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(c *html.Node) {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
		for cc := c.FirstChild; cc != nil; cc = cc.NextSibling {
			walk(cc)
		}
	}
	walk(n)
	return b.String()
}

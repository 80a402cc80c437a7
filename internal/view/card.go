// Package view turns media items into renderable cards, independent of any UI toolkit.
package view

import (
	"net/url"
	"strings"

	"github.com/dastanaron/mediacat/internal/models"
)

const (
	FilledStar = "★"
	EmptyStar  = "☆"

	NoImageCaption = "No image"
	NoResults      = "No results"
)

// PlaceholderImage is the SVG shown in place of a missing thumbnail
var PlaceholderImage = "data:image/svg+xml," + url.PathEscape(
	`<svg xmlns="http://www.w3.org/2000/svg" width="400" height="250">`+
		`<rect width="100%" height="100%" fill="#101627"/>`+
		`<text x="50%" y="50%" dominant-baseline="middle" text-anchor="middle" fill="#9aa1b2" font-family="sans-serif" font-size="18">`+
		NoImageCaption+`</text></svg>`)

// Card is the view model of one item in the list
type Card struct {
	ID        string
	Image     string // thumbnail data URL or PlaceholderImage
	HasImage  bool
	Caption   string // NoImageCaption when there is no thumbnail
	Type      string
	Title     string
	TagTokens []string
	Tags      string
	Date      string
	Stars     string
}

// ListView is the rendered result of one filter/sort pass
type ListView struct {
	Cards []Card
	Empty bool
}

// NewCard builds the card for it
func NewCard(it models.MediaItem) Card {
	c := Card{
		ID:        it.ID,
		Image:     it.Image,
		HasImage:  it.HasImage(),
		Type:      it.Type,
		Title:     it.Title,
		TagTokens: TagTokens(it.Tags),
		Tags:      TagsText(it.Tags),
		Date:      DateText(it.Date),
		Stars:     StarsText(it.Rating),
	}
	if !c.HasImage {
		c.Image = PlaceholderImage
		c.Caption = NoImageCaption
	}
	return c
}

// NewListView renders items in the given order
func NewListView(items []models.MediaItem) ListView {
	cards := make([]Card, 0, len(items))
	for _, it := range items {
		cards = append(cards, NewCard(it))
	}
	return ListView{Cards: cards, Empty: len(cards) == 0}
}

// StarsText renders n filled stars followed by empty ones, five in total.
// n is clamped into the valid rating range.
func StarsText(n int) string {
	n = max(models.MinRating, min(n, models.MaxRating))
	return strings.Repeat(FilledStar, n) + strings.Repeat(EmptyStar, models.MaxRating-n)
}

// TagTokens splits comma separated tags, dropping blanks and surrounding spaces
func TagTokens(tags string) []string {
	var out []string
	for _, t := range strings.Split(tags, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// TagsText renders tags as "#a  #b"
func TagsText(tags string) string {
	tokens := TagTokens(tags)
	if len(tokens) == 0 {
		return ""
	}
	return "#" + strings.Join(tokens, "  #")
}

// DateText prefixes a non-empty date with a calendar emoji
func DateText(date string) string {
	if date == "" {
		return ""
	}
	return "📅 " + date
}

// Meta joins type, tags, date and the missing-image caption with " · "
func (c Card) Meta() string {
	parts := make([]string, 0, 4)
	for _, p := range []string{c.Type, c.Tags, c.Date, c.Caption} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " · ")
}

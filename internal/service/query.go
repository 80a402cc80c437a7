package service

import (
	"cmp"
	"slices"
	"strings"

	"github.com/dastanaron/mediacat/internal/models"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortOrder selects the display order of a filtered view
type SortOrder string

const (
	SortCreatedAsc  SortOrder = "created_asc"
	SortCreatedDesc SortOrder = "created_desc"
	SortRatingDesc  SortOrder = "rating_desc"
	SortRatingAsc   SortOrder = "rating_asc"
	SortTitleAsc    SortOrder = "title_asc"
	SortTitleDesc   SortOrder = "title_desc"
)

// SortOrders lists every selectable order, default first
var SortOrders = []SortOrder{
	SortCreatedDesc,
	SortCreatedAsc,
	SortRatingDesc,
	SortRatingAsc,
	SortTitleAsc,
	SortTitleDesc,
}

// AnyType matches every item type in a Query
const AnyType = ""

// Query describes the filter and sort selection of the list view
type Query struct {
	Search    string
	Type      string // AnyType matches all
	MinRating int
	Sort      SortOrder // unknown values sort newest first
	Locale    language.Tag
}

// Matches reports whether it passes every filter of q
func (q Query) Matches(it models.MediaItem) bool {
	if q.Type != AnyType && it.Type != q.Type {
		return false
	}
	if it.Rating < q.MinRating {
		return false
	}
	needle := strings.ToLower(strings.TrimSpace(q.Search))
	if needle == "" {
		return true
	}
	haystack := strings.ToLower(it.Title + " " + it.Tags)
	return strings.Contains(haystack, needle)
}

// Apply filters items and returns a newly allocated, sorted slice.
// items itself is never reordered.
func (q Query) Apply(items []models.MediaItem) []models.MediaItem {
	out := make([]models.MediaItem, 0, len(items))
	for _, it := range items {
		if q.Matches(it) {
			out = append(out, it)
		}
	}

	switch q.Sort {
	case SortCreatedAsc:
		slices.SortStableFunc(out, func(a, b models.MediaItem) int { return cmp.Compare(a.CreatedAt, b.CreatedAt) })
	case SortRatingDesc:
		slices.SortStableFunc(out, func(a, b models.MediaItem) int { return cmp.Compare(b.Rating, a.Rating) })
	case SortRatingAsc:
		slices.SortStableFunc(out, func(a, b models.MediaItem) int { return cmp.Compare(a.Rating, b.Rating) })
	case SortTitleAsc:
		c := q.collator()
		slices.SortStableFunc(out, func(a, b models.MediaItem) int { return c.CompareString(a.Title, b.Title) })
	case SortTitleDesc:
		c := q.collator()
		slices.SortStableFunc(out, func(a, b models.MediaItem) int { return c.CompareString(b.Title, a.Title) })
	default:
		slices.SortStableFunc(out, func(a, b models.MediaItem) int { return cmp.Compare(b.CreatedAt, a.CreatedAt) })
	}
	return out
}

// collator is built per call; collate.Collator is not safe for concurrent use
func (q Query) collator() *collate.Collator {
	tag := q.Locale
	if tag == language.Und {
		tag = language.English
	}
	return collate.New(tag)
}

// ParseSortOrder maps a user value onto a SortOrder, falling back to newest first
func ParseSortOrder(s string) SortOrder {
	for _, o := range SortOrders {
		if string(o) == s {
			return o
		}
	}
	return SortCreatedDesc
}

// ParseLocale maps a BCP 47 tag onto a language.Tag, falling back to English
func ParseLocale(s string) language.Tag {
	tag, err := language.Parse(s)
	if err != nil {
		return language.English
	}
	return tag
}

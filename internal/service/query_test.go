package service

import (
	"testing"

	"github.com/dastanaron/mediacat/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

func catalog() []models.MediaItem {
	return []models.MediaItem{
		{ID: "1", Type: "Book", Title: "Dune", Tags: "scifi, classic", Rating: 5, CreatedAt: 300},
		{ID: "2", Type: "Movie", Title: "Dune", Tags: "scifi", Rating: 4, CreatedAt: 500},
		{ID: "3", Type: "Movie", Title: "Alien", Tags: "horror, dune-like", Rating: 3, CreatedAt: 100},
		{ID: "4", Type: "Movie", Title: "Heat", Tags: "crime", Rating: 0, CreatedAt: 400},
		{ID: "5", Type: "Book", Title: "émile", Tags: "", Rating: 2, CreatedAt: 200},
		{ID: "6", Type: "Game", Title: "Zelda", Tags: "adventure", Rating: 4, CreatedAt: 600},
	}
}

func ids(items []models.MediaItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func TestQuery_TypeAndSearch(t *testing.T) {
	got := Query{Type: "Movie", Search: "DUNE"}.Apply(catalog())
	// title "Dune" and tag "dune-like" both match; Book "Dune" is filtered by type
	assert.ElementsMatch(t, []string{"2", "3"}, ids(got))
	for _, it := range got {
		assert.Equal(t, "Movie", it.Type)
	}
}

func TestQuery_SearchIsTrimmedAndCaseInsensitive(t *testing.T) {
	got := Query{Search: "  ClAsSiC "}.Apply(catalog())
	assert.Equal(t, []string{"1"}, ids(got))
}

func TestQuery_SearchSpansTitleAndTags(t *testing.T) {
	// the haystack is "title tags", so a query crossing the boundary matches
	got := Query{Search: "heat crime"}.Apply(catalog())
	assert.Equal(t, []string{"4"}, ids(got))
}

func TestQuery_MinRating(t *testing.T) {
	got := Query{MinRating: 4}.Apply(catalog())
	assert.ElementsMatch(t, []string{"1", "2", "6"}, ids(got))

	all := Query{MinRating: 0}.Apply(catalog())
	assert.Len(t, all, len(catalog()))
}

func TestQuery_DefaultSortIsNewestFirst(t *testing.T) {
	got := Query{}.Apply(catalog())
	assert.Equal(t, []string{"6", "2", "4", "1", "5", "3"}, ids(got))

	unknown := Query{Sort: "bogus"}.Apply(catalog())
	assert.Equal(t, ids(got), ids(unknown))
}

func TestQuery_SortOrders(t *testing.T) {
	c := collate.New(language.English)

	tests := []struct {
		sort SortOrder
		ok   func(a, b models.MediaItem) bool
	}{
		{SortCreatedAsc, func(a, b models.MediaItem) bool { return a.CreatedAt <= b.CreatedAt }},
		{SortCreatedDesc, func(a, b models.MediaItem) bool { return a.CreatedAt >= b.CreatedAt }},
		{SortRatingDesc, func(a, b models.MediaItem) bool { return a.Rating >= b.Rating }},
		{SortRatingAsc, func(a, b models.MediaItem) bool { return a.Rating <= b.Rating }},
		{SortTitleAsc, func(a, b models.MediaItem) bool { return c.CompareString(a.Title, b.Title) <= 0 }},
		{SortTitleDesc, func(a, b models.MediaItem) bool { return c.CompareString(a.Title, b.Title) >= 0 }},
	}
	for _, tt := range tests {
		t.Run(string(tt.sort), func(t *testing.T) {
			got := Query{Sort: tt.sort}.Apply(catalog())
			require.Len(t, got, len(catalog()))
			for i := 1; i < len(got); i++ {
				assert.True(t, tt.ok(got[i-1], got[i]), "pair %s,%s out of order", got[i-1].ID, got[i].ID)
			}
		})
	}
}

func TestQuery_TitleSortIsLocaleAware(t *testing.T) {
	got := Query{Sort: SortTitleAsc}.Apply(catalog())
	// byte order would put "émile" after "Zelda"
	assert.Equal(t, []string{"Alien", "Dune", "Dune", "émile", "Heat", "Zelda"}, titles(got))
}

func TestQuery_SortIsStable(t *testing.T) {
	got := Query{Sort: SortTitleAsc}.Apply(catalog())
	// both "Dune" entries keep their storage order
	assert.Equal(t, "1", got[1].ID)
	assert.Equal(t, "2", got[2].ID)
}

func TestQuery_Idempotent(t *testing.T) {
	q := Query{Type: "Movie", MinRating: 1, Sort: SortTitleDesc}
	src := catalog()
	assert.Equal(t, q.Apply(src), q.Apply(src))
}

func TestQuery_DoesNotReorderInput(t *testing.T) {
	src := catalog()
	Query{Sort: SortRatingAsc}.Apply(src)
	assert.Equal(t, catalog(), src)
}

func TestQuery_EmptyResult(t *testing.T) {
	got := Query{Search: "nothing matches this"}.Apply(catalog())
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestParseSortOrder(t *testing.T) {
	assert.Equal(t, SortTitleAsc, ParseSortOrder("title_asc"))
	assert.Equal(t, SortCreatedDesc, ParseSortOrder(""))
	assert.Equal(t, SortCreatedDesc, ParseSortOrder("newest"))
}

func TestParseLocale(t *testing.T) {
	assert.Equal(t, language.MustParse("nl"), ParseLocale("nl"))
	assert.Equal(t, language.English, ParseLocale("!!"))
}

func titles(items []models.MediaItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Title
	}
	return out
}

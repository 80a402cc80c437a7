package repository

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dastanaron/mediacat/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "mediaLibraryItems.v1"

func sampleItems() []models.MediaItem {
	return []models.MediaItem{
		{ID: "b", Type: "Movie", Title: "Dune", Tags: "scifi", Date: "2021-10-22", Rating: 4, CreatedAt: 2000},
		{ID: "a", Type: "Book", Title: "Dune", Tags: "scifi, classic", Date: "1965-08-01", Rating: 5,
			Image: "data:image/jpeg;base64,/9j/AA==", CreatedAt: 1000},
	}
}

func openBackends(t *testing.T) map[string]Repository {
	t.Helper()
	dir := t.TempDir()

	sqliteRepo, err := Open(BackendSQLite, filepath.Join(dir, "mediacat.db"), testKey)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqliteRepo.Close() })

	fileRepo, err := Open(BackendFile, filepath.Join(dir, "slots"), testKey)
	require.NoError(t, err)
	t.Cleanup(func() { _ = fileRepo.Close() })

	return map[string]Repository{
		BackendSQLite: sqliteRepo,
		BackendFile:   fileRepo,
	}
}

func TestItems_RoundTrip(t *testing.T) {
	for name, repo := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			want := sampleItems()
			require.NoError(t, repo.Items().SaveAll(want))
			assert.Equal(t, want, repo.Items().LoadAll())
		})
	}
}

func TestItems_OverwriteReplacesWholeCollection(t *testing.T) {
	for name, repo := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, repo.Items().SaveAll(sampleItems()))
			require.NoError(t, repo.Items().SaveAll(sampleItems()[:1]))
			got := repo.Items().LoadAll()
			require.Len(t, got, 1)
			assert.Equal(t, "b", got[0].ID)
		})
	}
}

func TestItems_MissingSlotLoadsEmpty(t *testing.T) {
	for name, repo := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			got := repo.Items().LoadAll()
			assert.NotNil(t, got)
			assert.Empty(t, got)
		})
	}
}

func TestItems_SaveNilStoresEmptyArray(t *testing.T) {
	for name, repo := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, repo.Items().SaveAll(nil))
			assert.Empty(t, repo.Items().LoadAll())
		})
	}
}

func TestSQLite_MalformedSlotLoadsEmpty(t *testing.T) {
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "mediacat.db"), testKey)
	require.NoError(t, err)
	defer repo.Close()

	_, err = repo.db.Exec(`INSERT INTO slots(key, value) VALUES (?, ?)`, testKey, "{not json")
	require.NoError(t, err)

	assert.Empty(t, repo.Items().LoadAll())
}

func TestFile_MalformedSlotLoadsEmpty(t *testing.T) {
	dir := t.TempDir()
	repo, err := NewFileRepository(dir, testKey)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, testKey+".json"), []byte(`{"id":1}`), 0o644))
	assert.Empty(t, repo.Items().LoadAll())
}

func TestFile_WritesBrowserCompatibleJSON(t *testing.T) {
	dir := t.TempDir()
	repo, err := NewFileRepository(dir, testKey)
	require.NoError(t, err)
	require.NoError(t, repo.Items().SaveAll(sampleItems()[:1]))

	raw, err := os.ReadFile(filepath.Join(dir, testKey+".json"))
	require.NoError(t, err)
	assert.JSONEq(t,
		`[{"id":"b","type":"Movie","title":"Dune","tags":"scifi","date":"2021-10-22","rating":4,"image":"","createdAt":2000}]`,
		string(raw))
}

func TestSlotsAreKeyed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mediacat.db")
	v1, err := NewSQLiteRepository(path, "mediaLibraryItems.v1")
	require.NoError(t, err)
	defer v1.Close()
	v2, err := NewSQLiteRepository(path, "mediaLibraryItems.v2")
	require.NoError(t, err)
	defer v2.Close()

	require.NoError(t, v1.Items().SaveAll(sampleItems()))
	assert.Empty(t, v2.Items().LoadAll())
}

func TestOpen_UnknownBackend(t *testing.T) {
	_, err := Open("redis", t.TempDir(), testKey)
	assert.ErrorContains(t, err, "unknown backend")
}

func TestUID_UniqueAndOpaque(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := UID()
		require.NotEmpty(t, id)
		require.False(t, seen[id], "duplicate id %q", id)
		seen[id] = true
	}
}

func TestUID_TimeOrdered(t *testing.T) {
	a := UID()
	b := UID()
	// UUIDv7 begins with the millisecond timestamp, so later ids never sort lower
	assert.LessOrEqual(t, strings.Compare(a[:8], b[:8]), 0)
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()
	assert.Equal(t, BackendSQLite, cfg.Backend)
	assert.Equal(t, "mediaLibraryItems.v1", cfg.StorageKey)
	assert.Equal(t, 1200, cfg.MaxImageWidth)
	assert.Equal(t, 85, cfg.JPEGQuality)
	assert.Equal(t, "preserve", cfg.EditPolicy)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := "backend: file\nstore_path: " + filepath.Join(dir, "items") + "\nmax_image_width: 800\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	t.Setenv("MEDIACAT_JPEG_QUALITY", "70")
	t.Setenv("MEDIACAT_EDIT_POLICY", "refresh")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, BackendFile, cfg.Backend)
	assert.Equal(t, filepath.Join(dir, "items"), cfg.StorePath)
	assert.Equal(t, 800, cfg.MaxImageWidth)
	assert.Equal(t, 70, cfg.JPEGQuality)
	assert.Equal(t, "refresh", cfg.EditPolicy)
	assert.Equal(t, DefaultStorageKey, cfg.StorageKey)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_RejectsUnknownBackend(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("backend: redis\n"), 0o644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "unknown backend")
}

func TestValidate_Quality(t *testing.T) {
	cfg := NewConfig()
	cfg.JPEGQuality = 0
	assert.Error(t, cfg.Validate())
	cfg.JPEGQuality = 101
	assert.Error(t, cfg.Validate())
}

func TestWithStorePath(t *testing.T) {
	cfg := NewConfig().WithStorePath("/tmp/x.db")
	assert.Equal(t, "/tmp/x.db", cfg.StorePath)
}

package thumbnail

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeJPEG(t *testing.T, dir, name string, w, h int) string {
	t.Helper()
	img := imaging.New(w, h, color.NRGBA{R: 200, G: 120, B: 40, A: 255})
	path := filepath.Join(dir, name)
	require.NoError(t, imaging.Save(img, path))
	return path
}

func decodedSize(t *testing.T, dataURL string) (int, int) {
	t.Helper()
	raw, err := DecodeDataURL(dataURL)
	require.NoError(t, err)
	cfg, format, err := image.DecodeConfig(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	return cfg.Width, cfg.Height
}

func TestValidateName(t *testing.T) {
	for _, name := range []string{"a.jpg", "a.jpeg", "A.JPG", "dir/photo.JpEg"} {
		assert.NoError(t, ValidateName(name), name)
	}
	for _, name := range []string{"photo.png", "photo", "photo.jpg.gif", "jpg", "photo.jpe"} {
		assert.ErrorIs(t, ValidateName(name), ErrUnsupportedType, name)
	}
}

func TestLoad_ShrinksWideImages(t *testing.T) {
	path := writeJPEG(t, t.TempDir(), "wide.jpg", 2400, 1000)

	got, err := NewProcessor(1200, 85).Load(context.Background(), path)
	require.NoError(t, err)

	w, h := decodedSize(t, got)
	assert.Equal(t, 1200, w)
	assert.Equal(t, 500, h)
}

func TestLoad_RoundsProportionalHeight(t *testing.T) {
	path := writeJPEG(t, t.TempDir(), "odd.jpeg", 1801, 1001)

	got, err := NewProcessor(1200, 85).Load(context.Background(), path)
	require.NoError(t, err)

	w, h := decodedSize(t, got)
	assert.Equal(t, 1200, w)
	assert.Equal(t, 667, h) // 1001 * 1200/1801 = 666.96
}

func TestLoad_PassesSmallImagesThrough(t *testing.T) {
	path := writeJPEG(t, t.TempDir(), "small.JPG", 1200, 300)
	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	got, err := NewProcessor(1200, 85).Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, EncodeDataURL(raw), got, "original bytes are kept")
}

func TestLoad_RejectsBeforeReading(t *testing.T) {
	_, err := NewProcessor(0, 0).Load(context.Background(), "/does/not/exist/photo.png")
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := NewProcessor(0, 0).Load(context.Background(), filepath.Join(t.TempDir(), "gone.jpg"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_CorruptJPEG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.jpg")
	require.NoError(t, os.WriteFile(path, []byte("not a jpeg"), 0o644))

	_, err := NewProcessor(0, 0).Load(context.Background(), path)
	assert.ErrorContains(t, err, "decode image")
}

func TestLoad_CanceledContext(t *testing.T) {
	path := writeJPEG(t, t.TempDir(), "wide.jpg", 1600, 900)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewProcessor(0, 0).Load(ctx, path)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDecodeDataURL(t *testing.T) {
	raw, err := DecodeDataURL(EncodeDataURL([]byte{1, 2, 3}))
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, raw)

	for _, bad := range []string{"", "image/jpeg;base64,AA==", "data:image/jpeg,AA==", "data:image/jpeg;base64,@@"} {
		_, err := DecodeDataURL(bad)
		assert.ErrorIs(t, err, ErrInvalidDataURL, bad)
	}
}

func TestDescribe(t *testing.T) {
	path := writeJPEG(t, t.TempDir(), "d.jpg", 40, 20)
	dataURL, err := ReadDataURL(context.Background(), path)
	require.NoError(t, err)

	assert.Contains(t, Describe(dataURL), "40×20 JPEG")
	assert.Equal(t, "", Describe(""))
	assert.Equal(t, "unreadable image", Describe("data:x"))
}

func TestNewProcessor_Defaults(t *testing.T) {
	p := NewProcessor(-1, 500)
	assert.Equal(t, DefaultMaxWidth, p.maxWidth)
	assert.Equal(t, DefaultQuality, p.quality)
}

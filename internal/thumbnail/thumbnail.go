// Package thumbnail turns a JPEG file into the data URL stored on an item,
// shrinking it when it is wider than the configured maximum.
package thumbnail

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

const (
	DefaultMaxWidth = 1200
	DefaultQuality  = 85

	jpegPrefix = "data:image/jpeg;base64,"
)

var (
	ErrUnsupportedType = errors.New("only .jpg and .jpeg files are accepted")
	ErrInvalidDataURL  = errors.New("invalid data URL")
)

// Processor reads and shrinks thumbnails
type Processor struct {
	maxWidth int
	quality  int
}

// NewProcessor creates a processor. Non-positive values fall back to the defaults.
func NewProcessor(maxWidth, quality int) *Processor {
	if maxWidth <= 0 {
		maxWidth = DefaultMaxWidth
	}
	if quality <= 0 || quality > 100 {
		quality = DefaultQuality
	}
	return &Processor{maxWidth: maxWidth, quality: quality}
}

// ValidateName accepts file names ending in .jpg or .jpeg, in any case
func ValidateName(name string) error {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".jpg", ".jpeg":
		return nil
	}
	return fmt.Errorf("%w: %s", ErrUnsupportedType, filepath.Base(name))
}

// Load validates, reads and shrinks the JPEG at path
func (p *Processor) Load(ctx context.Context, path string) (string, error) {
	if err := ValidateName(path); err != nil {
		return "", err
	}
	dataURL, err := ReadDataURL(ctx, path)
	if err != nil {
		return "", err
	}
	return p.Shrink(ctx, dataURL)
}

// ReadDataURL reads the file at path into a base64 JPEG data URL
func ReadDataURL(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}
	return EncodeDataURL(raw), nil
}

// EncodeDataURL wraps JPEG bytes in a data URL
func EncodeDataURL(raw []byte) string {
	return jpegPrefix + base64.StdEncoding.EncodeToString(raw)
}

// DecodeDataURL returns the payload of a base64 data URL
func DecodeDataURL(dataURL string) ([]byte, error) {
	rest, ok := strings.CutPrefix(dataURL, "data:")
	if !ok {
		return nil, ErrInvalidDataURL
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok || !strings.HasSuffix(meta, ";base64") {
		return nil, ErrInvalidDataURL
	}
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDataURL, err)
	}
	return raw, nil
}

// Shrink returns dataURL unchanged when the image is at most the maximum width.
// Wider images are resized to the maximum width, keeping the aspect ratio,
// and re-encoded as JPEG.
func (p *Processor) Shrink(ctx context.Context, dataURL string) (string, error) {
	raw, err := DecodeDataURL(dataURL)
	if err != nil {
		return "", err
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}
	if cfg.Width <= p.maxWidth {
		return dataURL, nil
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	img, err := imaging.Decode(bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}
	resized := imaging.Resize(img, p.maxWidth, 0, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, imaging.JPEG, imaging.JPEGQuality(p.quality)); err != nil {
		return "", fmt.Errorf("encode thumbnail: %w", err)
	}
	return EncodeDataURL(buf.Bytes()), nil
}

// Describe returns a short human readable summary of a thumbnail, e.g. "1200×800 JPEG, 84 KB"
func Describe(dataURL string) string {
	if dataURL == "" {
		return ""
	}
	raw, err := DecodeDataURL(dataURL)
	if err != nil {
		return "unreadable image"
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return "unreadable image"
	}
	return fmt.Sprintf("%d×%d %s, %d KB", cfg.Width, cfg.Height, strings.ToUpper(format), (len(raw)+1023)/1024)
}

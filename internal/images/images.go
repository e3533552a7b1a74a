// Package images stores recipe illustrations (generated or uploaded) on
// disk, content-addressed so repeated writes of the same bytes dedupe.
package images

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/saborlab/sabor/internal/checksum"
)

// URLPrefix is where the API serves stored images.
const URLPrefix = "/images/"

// Dir is a directory-backed image store.
type Dir struct {
	root string
}

// NewDir creates (if needed) and opens the image directory.
func NewDir(root string) (*Dir, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("images: resolve root: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("images: create dir: %w", err)
	}
	return &Dir{root: abs}, nil
}

// WriteImage stores data under a checksum-derived filename and returns its
// serving URL.
func (d *Dir) WriteImage(_ context.Context, mimeType string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("images: empty image data")
	}
	name := checksum.Sum(data)[:24] + extension(mimeType)
	abs := filepath.Join(d.root, name)
	if _, err := os.Stat(abs); err == nil {
		return URLPrefix + name, nil
	}
	if err := os.WriteFile(abs, data, 0o644); err != nil {
		return "", fmt.Errorf("images: write %s: %w", name, err)
	}
	return URLPrefix + name, nil
}

// Path validates name (no separators, no traversal) and returns the absolute
// path under the image directory.
func (d *Dir) Path(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("images: filename is required")
	}
	cleaned := filepath.Clean(name)
	if cleaned != filepath.Base(cleaned) || strings.Contains(cleaned, "..") {
		return "", fmt.Errorf("images: invalid filename: %s", name)
	}
	return filepath.Join(d.root, cleaned), nil
}

func extension(mimeType string) string {
	switch mimeType {
	case "image/png":
		return ".png"
	case "image/jpeg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	default:
		return ".img"
	}
}

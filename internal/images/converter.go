// Package images turns downloaded TMDB backdrops into the WebP stills the
// e-paper plugin dataset is built from.
package images

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/chai2010/webp"
	"github.com/google/renameio/v2"
)

const stillQuality = 85

// Converter writes movie stills below a dataset directory, one folder per
// TMDB movie id.
type Converter struct {
	dir string
}

// NewConverter returns a Converter rooted at dir.
func NewConverter(dir string) *Converter {
	return &Converter{dir: dir}
}

// StillFileName returns the canonical file name for the nth still of a movie.
func StillFileName(ordinal int) string {
	return fmt.Sprintf("still_%d.webp", ordinal)
}

// StillPath returns the on-disk path for the nth still of a movie.
func (c *Converter) StillPath(tmdbID, ordinal int) string {
	return filepath.Join(c.dir, fmt.Sprintf("%d", tmdbID), StillFileName(ordinal))
}

// StillExists reports whether the nth still of a movie is already on disk.
func (c *Converter) StillExists(tmdbID, ordinal int) bool {
	_, err := os.Stat(c.StillPath(tmdbID, ordinal))
	return err == nil
}

// SaveStill decodes a downloaded backdrop (JPEG or PNG) and stores it as a
// WebP still. The write is atomic so a crashed run never leaves a truncated
// image behind. Returns the still's file name.
func (c *Converter) SaveStill(tmdbID, ordinal int, raw []byte) (string, error) {
	fileName := StillFileName(ordinal)
	path := c.StillPath(tmdbID, ordinal)

	if c.StillExists(tmdbID, ordinal) {
		return fileName, nil
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("failed to decode still for movie %d: %w", tmdbID, err)
	}

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: stillQuality}); err != nil {
		return "", fmt.Errorf("failed to encode still for movie %d: %w", tmdbID, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create movie directory for %d: %w", tmdbID, err)
	}

	if err := renameio.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("failed to write still %s: %w", path, err)
	}

	return fileName, nil
}

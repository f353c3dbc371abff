package listing

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/movieguesser/movie-service/internal/domain"
	"github.com/movieguesser/movie-service/pkg/errcodes"
	"github.com/stretchr/testify/assert"
)

const sampleListing = `# Movie Guesser

Guess the movie from a still frame. Powered by [TheMovieDB](https://www.themoviedb.org/).

<img src="assets/plugin-images/178211_icon.png" width="80">

![screenshot](assets/plugin-images/178211_screenshot.png)

<!-- PLUGIN_STATS_START -->
| Metric | Value |
|--------|-------|
| Installs | 1204 |
| Forks | 37 |

Last updated: 2026-08-01 09:30 UTC
<!-- PLUGIN_STATS_END -->

Install it from the recipe page.
`

func TestParseStats(t *testing.T) {
	stats, err := ParseStats([]byte(sampleListing))
	assert.NoError(t, err)
	assert.Equal(t, 1204, stats.Installs)
	assert.Equal(t, 37, stats.Forks)
	assert.Equal(t, time.Date(2026, 8, 1, 9, 30, 0, 0, time.UTC), stats.UpdatedAt.UTC())
}

func TestParseStatsMissingStartMarker(t *testing.T) {
	content := strings.Replace(sampleListing, StartMarker, "", 1)
	_, err := ParseStats([]byte(content))
	assert.ErrorIs(t, err, ErrMissingStartMarker)
}

func TestParseStatsMissingEndMarker(t *testing.T) {
	content := strings.Replace(sampleListing, EndMarker, "", 1)
	_, err := ParseStats([]byte(content))
	assert.ErrorIs(t, err, ErrMissingEndMarker)
}

func TestParseStatsDuplicateBlock(t *testing.T) {
	content := sampleListing + "\n" + StartMarker + "\n" + EndMarker + "\n"
	_, err := ParseStats([]byte(content))
	assert.ErrorIs(t, err, ErrMultipleStatsBlocks)
}

func TestParseStatsMarkersOutOfOrder(t *testing.T) {
	content := EndMarker + "\n| Installs | 1 |\n| Forks | 1 |\n" + StartMarker + "\n"
	_, err := ParseStats([]byte(content))
	assert.ErrorIs(t, err, ErrMarkersOutOfOrder)
}

func TestParseStatsNegativeCounter(t *testing.T) {
	content := strings.Replace(sampleListing, "| Forks | 37 |", "| Forks | -1 |", 1)
	_, err := ParseStats([]byte(content))
	assert.ErrorIs(t, err, errcodes.ErrNegativeStatsValue)
}

func TestParseStatsMalformedTable(t *testing.T) {
	content := strings.Replace(sampleListing, "| Installs | 1204 |", "Installs: many", 1)
	_, err := ParseStats([]byte(content))
	assert.ErrorIs(t, err, ErrMalformedStatsTable)
}

func TestReplaceStatsBlockKeepsSurroundingBytes(t *testing.T) {
	stats := domain.ListingStats{
		Installs:  2000,
		Forks:     50,
		UpdatedAt: time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC),
	}

	updated, err := ReplaceStatsBlock([]byte(sampleListing), stats)
	assert.NoError(t, err)

	text := string(updated)
	assert.Contains(t, text, "| Installs | 2000 |")
	assert.Contains(t, text, "| Forks | 50 |")
	assert.Contains(t, text, "Last updated: 2026-08-29 12:00 UTC")

	// Everything outside the markers is untouched.
	prefix := sampleListing[:strings.Index(sampleListing, StartMarker)]
	suffix := sampleListing[strings.Index(sampleListing, EndMarker):]
	assert.True(t, strings.HasPrefix(text, prefix))
	assert.True(t, strings.HasSuffix(text, suffix))
}

func TestReplaceStatsBlockRejectsNegative(t *testing.T) {
	_, err := ReplaceStatsBlock([]byte(sampleListing), domain.ListingStats{Installs: -1})
	assert.ErrorIs(t, err, errcodes.ErrNegativeStatsValue)
}

func TestFileUpdateStatsRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "README.md")
	assert.NoError(t, os.WriteFile(path, []byte(sampleListing), 0o644))

	file := NewFile(path)

	written, err := file.UpdateStats(domain.ListingStats{Installs: 1300, Forks: 41})
	assert.NoError(t, err)
	assert.False(t, written.UpdatedAt.IsZero())

	stats, err := file.Stats()
	assert.NoError(t, err)
	assert.Equal(t, 1300, stats.Installs)
	assert.Equal(t, 41, stats.Forks)
	assert.Equal(t, written.UpdatedAt.UTC(), stats.UpdatedAt.UTC())
}

func TestFileStatsMissingFile(t *testing.T) {
	file := NewFile(filepath.Join(t.TempDir(), "nope.md"))
	_, err := file.Stats()
	assert.ErrorIs(t, err, errcodes.ErrListingNotFound)
}

func TestLint(t *testing.T) {
	dir := t.TempDir()
	assert.NoError(t, os.MkdirAll(filepath.Join(dir, "assets", "plugin-images"), 0o755))
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "assets", "plugin-images", "178211_icon.png"), []byte{1}, 0o644))
	// The screenshot is deliberately missing.

	problems := Lint([]byte(sampleListing), dir)
	assert.Len(t, problems, 1)
	assert.Contains(t, problems[0], "178211_screenshot.png")
}

func TestLintCleanListing(t *testing.T) {
	dir := t.TempDir()
	assert.NoError(t, os.MkdirAll(filepath.Join(dir, "assets", "plugin-images"), 0o755))
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "assets", "plugin-images", "178211_icon.png"), []byte{1}, 0o644))
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "assets", "plugin-images", "178211_screenshot.png"), []byte{1}, 0o644))

	problems := Lint([]byte(sampleListing), dir)
	assert.Empty(t, problems)
}

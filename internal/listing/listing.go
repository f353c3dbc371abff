// Package listing maintains the plugin listing page: a Markdown document
// whose statistics region, delimited by a fixed pair of HTML comment
// markers, is rewritten wholesale while every byte outside the markers is
// left untouched.
package listing

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/renameio/v2"
	"github.com/movieguesser/movie-service/internal/domain"
	"github.com/movieguesser/movie-service/pkg/errcodes"
)

const (
	StartMarker = "<!-- PLUGIN_STATS_START -->"
	EndMarker   = "<!-- PLUGIN_STATS_END -->"

	// Timestamp layout used in the rendered block, always UTC.
	timeLayout = "2006-01-02 15:04 MST"
)

var (
	ErrMissingStartMarker  = errors.New("listing has no PLUGIN_STATS_START marker")
	ErrMissingEndMarker    = errors.New("listing has no PLUGIN_STATS_END marker")
	ErrMultipleStatsBlocks = errors.New("listing has more than one stats block")
	ErrMarkersOutOfOrder   = errors.New("listing stats markers are out of order")
	ErrMalformedStatsTable = errors.New("listing stats table is malformed")
)

var (
	installsRe = regexp.MustCompile(`\|\s*Installs\s*\|\s*(-?\d+)\s*\|`)
	forksRe    = regexp.MustCompile(`\|\s*Forks\s*\|\s*(-?\d+)\s*\|`)
	updatedRe  = regexp.MustCompile(`Last updated:\s*(.+)`)
	imageRe    = regexp.MustCompile(`!\[[^\]]*\]\(([^)\s]+)\)|<img[^>]+src="([^"]+)"`)
)

// statsRegion locates the single delimited block and returns the byte
// offsets of its interior.
func statsRegion(content string) (start, end int, err error) {
	if strings.Count(content, StartMarker) > 1 || strings.Count(content, EndMarker) > 1 {
		return 0, 0, ErrMultipleStatsBlocks
	}

	start = strings.Index(content, StartMarker)
	if start < 0 {
		return 0, 0, ErrMissingStartMarker
	}
	end = strings.Index(content, EndMarker)
	if end < 0 {
		return 0, 0, ErrMissingEndMarker
	}
	if end < start {
		return 0, 0, ErrMarkersOutOfOrder
	}

	return start + len(StartMarker), end, nil
}

// ParseStats extracts the Installs/Forks counters and the last-updated
// timestamp from the stats block.
func ParseStats(content []byte) (domain.ListingStats, error) {
	text := string(content)

	start, end, err := statsRegion(text)
	if err != nil {
		return domain.ListingStats{}, err
	}
	block := text[start:end]

	installs := installsRe.FindStringSubmatch(block)
	forks := forksRe.FindStringSubmatch(block)
	if installs == nil || forks == nil {
		return domain.ListingStats{}, ErrMalformedStatsTable
	}

	stats := domain.ListingStats{}
	stats.Installs, err = strconv.Atoi(installs[1])
	if err != nil {
		return domain.ListingStats{}, ErrMalformedStatsTable
	}
	stats.Forks, err = strconv.Atoi(forks[1])
	if err != nil {
		return domain.ListingStats{}, ErrMalformedStatsTable
	}

	if stats.Installs < 0 || stats.Forks < 0 {
		return domain.ListingStats{}, errcodes.ErrNegativeStatsValue
	}

	if updated := updatedRe.FindStringSubmatch(block); updated != nil {
		if ts, err := time.Parse(timeLayout, strings.TrimSpace(updated[1])); err == nil {
			stats.UpdatedAt = ts
		}
	}

	return stats, nil
}

// RenderStatsBlock renders the interior of the stats region.
func RenderStatsBlock(stats domain.ListingStats) string {
	var b strings.Builder
	b.WriteString("\n| Metric | Value |\n")
	b.WriteString("|--------|-------|\n")
	fmt.Fprintf(&b, "| Installs | %d |\n", stats.Installs)
	fmt.Fprintf(&b, "| Forks | %d |\n", stats.Forks)
	fmt.Fprintf(&b, "\nLast updated: %s\n", stats.UpdatedAt.UTC().Format(timeLayout))
	return b.String()
}

// ReplaceStatsBlock overwrites the delimited region with a freshly rendered
// block, leaving the rest of the document byte-for-byte unchanged.
func ReplaceStatsBlock(content []byte, stats domain.ListingStats) ([]byte, error) {
	if stats.Installs < 0 || stats.Forks < 0 {
		return nil, errcodes.ErrNegativeStatsValue
	}

	text := string(content)
	start, end, err := statsRegion(text)
	if err != nil {
		return nil, err
	}

	return []byte(text[:start] + RenderStatsBlock(stats) + text[end:]), nil
}

// Lint runs the structural checks on a listing document: exactly one marker
// pair in order, a well-formed stats table with non-negative counters, and
// local image references that resolve relative to baseDir. It returns one
// message per problem found.
func Lint(content []byte, baseDir string) []string {
	var problems []string

	if _, err := ParseStats(content); err != nil {
		problems = append(problems, err.Error())
	}

	for _, match := range imageRe.FindAllStringSubmatch(string(content), -1) {
		ref := match[1]
		if ref == "" {
			ref = match[2]
		}
		if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
			continue
		}
		if _, err := os.Stat(filepath.Join(baseDir, ref)); err != nil {
			problems = append(problems, fmt.Sprintf("image reference %s does not resolve", ref))
		}
	}

	return problems
}

// File is a plugin listing document on disk.
type File struct {
	path string
}

// NewFile returns a File for the listing at path.
func NewFile(path string) *File {
	return &File{path: path}
}

// Path returns the listing's location on disk.
func (f *File) Path() string {
	return f.path
}

func (f *File) read() ([]byte, error) {
	content, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errcodes.ErrListingNotFound
		}
		return nil, err
	}
	return content, nil
}

// Stats reads and parses the current stats block.
func (f *File) Stats() (domain.ListingStats, error) {
	content, err := f.read()
	if err != nil {
		return domain.ListingStats{}, err
	}
	return ParseStats(content)
}

// Lint reads the listing and runs the structural checks against it.
func (f *File) Lint() ([]string, error) {
	content, err := f.read()
	if err != nil {
		return nil, err
	}
	return Lint(content, filepath.Dir(f.path)), nil
}

// UpdateStats rewrites the stats block in place with the given counters and
// the current time. The write is atomic and durable: the new content goes to
// a temp file which is fsynced and renamed over the listing.
func (f *File) UpdateStats(stats domain.ListingStats) (domain.ListingStats, error) {
	content, err := f.read()
	if err != nil {
		return domain.ListingStats{}, err
	}

	if stats.UpdatedAt.IsZero() {
		stats.UpdatedAt = time.Now().UTC().Truncate(time.Minute)
	}

	updated, err := ReplaceStatsBlock(content, stats)
	if err != nil {
		return domain.ListingStats{}, err
	}

	pending, err := renameio.NewPendingFile(f.path)
	if err != nil {
		return domain.ListingStats{}, fmt.Errorf("create pending listing file: %w", err)
	}
	defer func() {
		_ = pending.Cleanup()
	}()

	if _, err := pending.Write(updated); err != nil {
		return domain.ListingStats{}, fmt.Errorf("write listing: %w", err)
	}

	if err := pending.CloseAtomicallyReplace(); err != nil {
		return domain.ListingStats{}, fmt.Errorf("atomically replace listing: %w", err)
	}

	return stats, nil
}

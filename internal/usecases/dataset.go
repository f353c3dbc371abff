package usecases

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
	"github.com/movieguesser/movie-service/internal/domain"
	"github.com/movieguesser/movie-service/internal/http/dtos"
	"github.com/movieguesser/movie-service/internal/repository"
	"github.com/movieguesser/movie-service/pkg/log"
	"github.com/rs/zerolog"
)

// exportPageSize is how many movies the exporter loads per store query.
const exportPageSize = 500

type DatasetUsecase interface {
	Export(ctx context.Context) (string, error)
	Stats(ctx context.Context) (*domain.DatasetStats, error)
}

type datasetUsecase struct {
	movieStore repository.MovieStore
	runStore   repository.RunStore
	datasetDir string
	log        zerolog.Logger
}

func NewDatasetUsecase(movieStore repository.MovieStore, runStore repository.RunStore, datasetDir string) DatasetUsecase {
	return &datasetUsecase{
		movieStore: movieStore,
		runStore:   runStore,
		datasetDir: datasetDir,
		log:        log.WithComponent("dataset"),
	}
}

// datasetEntry is one movie in the exported movies.json manifest.
type datasetEntry struct {
	ID            int      `json:"id"`
	Title         string   `json:"title"`
	OriginalTitle string   `json:"original_title,omitempty"`
	Year          string   `json:"year"`
	Overview      string   `json:"overview"`
	Rating        float64  `json:"rating"`
	Genres        []string `json:"genres"`
	Images        []string `json:"images"`
}

// Export writes the movies.json manifest next to the still folders and
// returns its path. The write is atomic so consumers never observe a
// half-written manifest.
func (uc *datasetUsecase) Export(ctx context.Context) (string, error) {
	var entries []datasetEntry

	query := dtos.APIPagingDto{Page: 1, Limit: exportPageSize, Sort: "id", Direction: "asc"}
	for {
		movies, pageInfo, err := uc.movieStore.AllMovies(ctx, query)
		if err != nil {
			return "", fmt.Errorf("failed to load movies for export: %w", err)
		}

		for _, movie := range movies {
			entries = append(entries, datasetEntry{
				ID:            movie.TMDBID,
				Title:         movie.Title,
				OriginalTitle: movie.OriginalTitle,
				Year:          movie.Year,
				Overview:      movie.Overview,
				Rating:        movie.Rating,
				Genres:        movie.GenreNames(),
				Images:        movie.StillFileNames(),
			})
		}

		if !pageInfo.HasNextPage {
			break
		}
		query.Page++
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal dataset: %w", err)
	}

	if err := os.MkdirAll(uc.datasetDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create dataset directory: %w", err)
	}

	path := filepath.Join(uc.datasetDir, "movies.json")
	if err := renameio.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write dataset manifest: %w", err)
	}

	uc.log.Info().Str("path", path).Int("movies", len(entries)).Msg("dataset exported")
	return path, nil
}

// Stats summarises the stored dataset.
func (uc *datasetUsecase) Stats(ctx context.Context) (*domain.DatasetStats, error) {
	movies, err := uc.movieStore.CountMovies(ctx)
	if err != nil {
		return nil, err
	}

	stills, err := uc.movieStore.CountStills(ctx)
	if err != nil {
		return nil, err
	}

	pending, err := uc.runStore.CountIncompleteRuns(ctx)
	if err != nil {
		return nil, err
	}

	stats := &domain.DatasetStats{
		TotalMovies:     movies,
		TotalStills:     stills,
		IndexingPending: pending,
	}
	if movies > 0 {
		stats.StillsPerMovie = float64(stills) / float64(movies)
	}

	return stats, nil
}

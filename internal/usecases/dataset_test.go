package usecases

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/movieguesser/movie-service/internal/domain"
	"github.com/movieguesser/movie-service/internal/http/dtos"
	"github.com/movieguesser/movie-service/internal/repository/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestDatasetStats(t *testing.T) {
	movieStore := new(mocks.MovieStore)
	runStore := new(mocks.RunStore)
	uc := NewDatasetUsecase(movieStore, runStore, t.TempDir())

	movieStore.On("CountMovies", mock.Anything).Return(int64(10), nil)
	movieStore.On("CountStills", mock.Anything).Return(int64(25), nil)
	runStore.On("CountIncompleteRuns", mock.Anything).Return(int64(1), nil)

	stats, err := uc.Stats(context.TODO())
	assert.NoError(t, err)
	assert.Equal(t, int64(10), stats.TotalMovies)
	assert.Equal(t, int64(25), stats.TotalStills)
	assert.Equal(t, 2.5, stats.StillsPerMovie)
	assert.Equal(t, int64(1), stats.IndexingPending)
}

func TestDatasetStatsEmpty(t *testing.T) {
	movieStore := new(mocks.MovieStore)
	runStore := new(mocks.RunStore)
	uc := NewDatasetUsecase(movieStore, runStore, t.TempDir())

	movieStore.On("CountMovies", mock.Anything).Return(int64(0), nil)
	movieStore.On("CountStills", mock.Anything).Return(int64(0), nil)
	runStore.On("CountIncompleteRuns", mock.Anything).Return(int64(0), nil)

	stats, err := uc.Stats(context.TODO())
	assert.NoError(t, err)
	assert.Equal(t, float64(0), stats.StillsPerMovie)
}

func TestDatasetExport(t *testing.T) {
	movieStore := new(mocks.MovieStore)
	runStore := new(mocks.RunStore)
	dir := t.TempDir()
	uc := NewDatasetUsecase(movieStore, runStore, dir)

	movies := []domain.Movie{
		{
			TMDBID:   278,
			Title:    "The Shawshank Redemption",
			Year:     "1994",
			Overview: "Imprisoned in the 1940s...",
			Rating:   8.7,
			Genres:   []domain.Genre{{Name: "Drama"}, {Name: "Crime"}},
			Stills:   []domain.Still{{FileName: "still_0.webp", Ordinal: 0}, {FileName: "still_1.webp", Ordinal: 1}},
		},
		{
			TMDBID:        496243,
			Title:         "Parasite",
			OriginalTitle: "기생충",
			Year:          "2019",
			Rating:        8.5,
			Genres:        []domain.Genre{{Name: "Thriller"}},
			Stills:        []domain.Still{{FileName: "still_0.webp"}},
		},
	}

	movieStore.On("AllMovies", mock.Anything, mock.MatchedBy(func(q dtos.APIPagingDto) bool {
		return q.Page == 1 && q.Limit == exportPageSize
	})).Return(movies, dtos.PagingInfo{TotalCount: 2, HasNextPage: false, Page: 1}, nil)

	path, err := uc.Export(context.TODO())
	assert.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "movies.json"), path)

	raw, err := os.ReadFile(path)
	assert.NoError(t, err)

	var entries []map[string]interface{}
	assert.NoError(t, json.Unmarshal(raw, &entries))
	assert.Len(t, entries, 2)

	assert.Equal(t, "The Shawshank Redemption", entries[0]["title"])
	assert.Equal(t, []interface{}{"still_0.webp", "still_1.webp"}, entries[0]["images"])
	// original_title is only serialised when it differs from the title.
	_, hasOriginal := entries[0]["original_title"]
	assert.False(t, hasOriginal)
	assert.Equal(t, "기생충", entries[1]["original_title"])
}

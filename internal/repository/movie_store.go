package repository

import (
	"context"

	"github.com/movieguesser/movie-service/internal/domain"
	"github.com/movieguesser/movie-service/internal/http/dtos"
)

// MovieStore defines an interface for movie database operations
type MovieStore interface {
	SaveMovie(ctx context.Context, movie domain.Movie) (*domain.Movie, error)
	MovieByPublicId(ctx context.Context, publicId string) (*domain.Movie, error)
	MovieByTMDBId(ctx context.Context, tmdbId int) (*domain.Movie, error)
	AllMovies(ctx context.Context, query dtos.APIPagingDto) ([]domain.Movie, dtos.PagingInfo, error)
	CountMovies(ctx context.Context) (int64, error)
	CountStills(ctx context.Context) (int64, error)
}

// GenreStore defines an interface for genre database operations
type GenreStore interface {
	UpsertGenres(ctx context.Context, genres map[int]string) error
	AllGenres(ctx context.Context) ([]domain.Genre, error)
	GenresByTMDBIds(ctx context.Context, tmdbIds []int) ([]domain.Genre, error)
}

// RunStore defines an interface for index run database operations
type RunStore interface {
	SaveRun(ctx context.Context, run domain.IndexRun) (*domain.IndexRun, error)
	UpdateRun(ctx context.Context, run domain.IndexRun) (*domain.IndexRun, error)
	RunByPublicId(ctx context.Context, publicId string) (*domain.IndexRun, error)
	IncompleteRuns(ctx context.Context) ([]domain.IndexRun, error)
	CountIncompleteRuns(ctx context.Context) (int64, error)
}

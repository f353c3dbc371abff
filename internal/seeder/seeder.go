package seeder

import (
	"context"

	"github.com/movieguesser/movie-service/internal/http/dtos"
	"github.com/movieguesser/movie-service/internal/repository"
	"github.com/movieguesser/movie-service/internal/usecases"
	"github.com/movieguesser/movie-service/pkg/log"
)

// SeedDatabase syncs the genre mapping and, when the movie table is empty,
// kicks off an initial indexing run for the configured dataset size.
func SeedDatabase(ctx context.Context, movieStore repository.MovieStore, movieUsecase usecases.MovieUsecase, totalMovies int) error {
	logger := log.WithComponent("seeder")

	if err := movieUsecase.SyncGenres(ctx); err != nil {
		return err
	}

	count, err := movieStore.CountMovies(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	logger.Info().Int("target", totalMovies).Msg("empty database, seeding initial dataset")

	if _, err := movieUsecase.StartIndexing(ctx, dtos.IndexInput{Count: totalMovies}); err != nil {
		return err
	}

	return nil
}

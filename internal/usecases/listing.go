package usecases

import (
	"context"

	"github.com/movieguesser/movie-service/internal/domain"
	"github.com/movieguesser/movie-service/internal/http/dtos"
	"github.com/movieguesser/movie-service/internal/listing"
	"github.com/movieguesser/movie-service/pkg/log"
	"github.com/rs/zerolog"
)

type ListingUsecase interface {
	Stats(ctx context.Context) (*domain.ListingStats, error)
	UpdateStats(ctx context.Context, input dtos.ListingStatsInput) (*domain.ListingStats, error)
	Lint(ctx context.Context) ([]string, error)
}

type listingUsecase struct {
	file *listing.File
	log  zerolog.Logger
}

func NewListingUsecase(file *listing.File) ListingUsecase {
	return &listingUsecase{
		file: file,
		log:  log.WithComponent("listing"),
	}
}

func (uc *listingUsecase) Stats(_ context.Context) (*domain.ListingStats, error) {
	stats, err := uc.file.Stats()
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (uc *listingUsecase) UpdateStats(_ context.Context, input dtos.ListingStatsInput) (*domain.ListingStats, error) {
	stats, err := uc.file.UpdateStats(domain.ListingStats{
		Installs: input.Installs,
		Forks:    input.Forks,
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Int("installs", stats.Installs).Int("forks", stats.Forks).Msg("listing stats rewritten")
	return &stats, nil
}

func (uc *listingUsecase) Lint(_ context.Context) ([]string, error) {
	return uc.file.Lint()
}

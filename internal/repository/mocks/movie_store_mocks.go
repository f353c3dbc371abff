package mocks

import (
	"context"

	"github.com/movieguesser/movie-service/internal/domain"
	"github.com/movieguesser/movie-service/internal/http/dtos"
	"github.com/stretchr/testify/mock"
)

// MovieStore mock
type MovieStore struct {
	mock.Mock
}

func (m *MovieStore) SaveMovie(ctx context.Context, movie domain.Movie) (*domain.Movie, error) {
	args := m.Called(ctx, movie)
	return args.Get(0).(*domain.Movie), args.Error(1)
}

func (m *MovieStore) MovieByPublicId(ctx context.Context, publicId string) (*domain.Movie, error) {
	args := m.Called(ctx, publicId)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Movie), args.Error(1)
}

func (m *MovieStore) MovieByTMDBId(ctx context.Context, tmdbId int) (*domain.Movie, error) {
	args := m.Called(ctx, tmdbId)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Movie), args.Error(1)
}

func (m *MovieStore) AllMovies(ctx context.Context, query dtos.APIPagingDto) ([]domain.Movie, dtos.PagingInfo, error) {
	args := m.Called(ctx, query)
	return args.Get(0).([]domain.Movie), args.Get(1).(dtos.PagingInfo), args.Error(2)
}

func (m *MovieStore) CountMovies(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MovieStore) CountStills(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

package mocks

import (
	"context"

	"github.com/movieguesser/movie-service/internal/domain"
	"github.com/stretchr/testify/mock"
)

// GenreStore mock
type GenreStore struct {
	mock.Mock
}

func (m *GenreStore) UpsertGenres(ctx context.Context, genres map[int]string) error {
	args := m.Called(ctx, genres)
	return args.Error(0)
}

func (m *GenreStore) AllGenres(ctx context.Context) ([]domain.Genre, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Genre), args.Error(1)
}

func (m *GenreStore) GenresByTMDBIds(ctx context.Context, tmdbIds []int) ([]domain.Genre, error) {
	args := m.Called(ctx, tmdbIds)
	return args.Get(0).([]domain.Genre), args.Error(1)
}

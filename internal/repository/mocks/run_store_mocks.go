package mocks

import (
	"context"

	"github.com/movieguesser/movie-service/internal/domain"
	"github.com/stretchr/testify/mock"
)

// RunStore mock
type RunStore struct {
	mock.Mock
}

func (m *RunStore) SaveRun(ctx context.Context, run domain.IndexRun) (*domain.IndexRun, error) {
	args := m.Called(ctx, run)
	return args.Get(0).(*domain.IndexRun), args.Error(1)
}

func (m *RunStore) UpdateRun(ctx context.Context, run domain.IndexRun) (*domain.IndexRun, error) {
	args := m.Called(ctx, run)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IndexRun), args.Error(1)
}

func (m *RunStore) RunByPublicId(ctx context.Context, publicId string) (*domain.IndexRun, error) {
	args := m.Called(ctx, publicId)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IndexRun), args.Error(1)
}

func (m *RunStore) IncompleteRuns(ctx context.Context) ([]domain.IndexRun, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.IndexRun), args.Error(1)
}

func (m *RunStore) CountIncompleteRuns(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

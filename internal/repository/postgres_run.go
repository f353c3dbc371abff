package repository

import (
	"context"

	"github.com/movieguesser/movie-service/internal/domain"
	"github.com/movieguesser/movie-service/pkg/errcodes"
	"gorm.io/gorm"
)

// GormRunStore is a GORM-based implementation of RunStore
type GormRunStore struct {
	db *gorm.DB
}

// NewGormRunStore initializes a new GormRunStore
func NewGormRunStore(db *gorm.DB) RunStore {
	return &GormRunStore{db: db}
}

func (s *GormRunStore) SaveRun(ctx context.Context, run domain.IndexRun) (*domain.IndexRun, error) {
	dbRun := ToGormRun(&run)

	err := s.db.WithContext(ctx).Create(dbRun).Error
	if err != nil {
		return nil, err
	}
	return dbRun.ToDomain(), nil
}

func (s *GormRunStore) UpdateRun(ctx context.Context, run domain.IndexRun) (*domain.IndexRun, error) {
	if ctx.Err() == context.Canceled {
		return nil, errcodes.ErrContextCancelled
	}
	dbRun := ToGormRun(&run)

	err := s.db.WithContext(ctx).Model(&IndexRun{}).
		Where(&IndexRun{ID: run.ID}).
		Select("last_page", "indexed", "completed", "updated_at").
		Updates(dbRun).Error
	if err != nil {
		return nil, err
	}

	return dbRun.ToDomain(), nil
}

func (s *GormRunStore) RunByPublicId(ctx context.Context, publicId string) (*domain.IndexRun, error) {
	if ctx.Err() == context.Canceled {
		return nil, errcodes.ErrContextCancelled
	}

	var run IndexRun
	err := s.db.WithContext(ctx).Where("public_id = ?", publicId).Find(&run).Error

	if run.ID == 0 {
		return nil, errcodes.ErrNoRecordFound
	}
	return run.ToDomain(), err
}

func (s *GormRunStore) IncompleteRuns(ctx context.Context) ([]domain.IndexRun, error) {
	var dbRuns []IndexRun
	err := s.db.WithContext(ctx).Where("completed = ?", false).Find(&dbRuns).Error
	if err != nil {
		return nil, err
	}

	runs := make([]domain.IndexRun, 0, len(dbRuns))
	for _, dbRun := range dbRuns {
		runs = append(runs, *dbRun.ToDomain())
	}
	return runs, nil
}

func (s *GormRunStore) CountIncompleteRuns(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&IndexRun{}).
		Where("completed = ?", false).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

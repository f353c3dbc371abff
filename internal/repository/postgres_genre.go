package repository

import (
	"context"

	"github.com/movieguesser/movie-service/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormGenreStore is a GORM-based implementation of GenreStore
type GormGenreStore struct {
	db *gorm.DB
}

// NewGormGenreStore initializes a new GormGenreStore
func NewGormGenreStore(db *gorm.DB) GenreStore {
	return &GormGenreStore{db: db}
}

func (s *GormGenreStore) UpsertGenres(ctx context.Context, genres map[int]string) error {
	if len(genres) == 0 {
		return nil
	}

	dbGenres := make([]Genre, 0, len(genres))
	for tmdbId, name := range genres {
		dbGenres = append(dbGenres, Genre{TMDBID: tmdbId, Name: name})
	}

	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "tmdb_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name"}),
		}).
		Create(&dbGenres).Error
}

func (s *GormGenreStore) AllGenres(ctx context.Context) ([]domain.Genre, error) {
	var dbGenres []Genre
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&dbGenres).Error; err != nil {
		return nil, err
	}

	genres := make([]domain.Genre, 0, len(dbGenres))
	for _, g := range dbGenres {
		genres = append(genres, *g.ToDomain())
	}
	return genres, nil
}

func (s *GormGenreStore) GenresByTMDBIds(ctx context.Context, tmdbIds []int) ([]domain.Genre, error) {
	if len(tmdbIds) == 0 {
		return nil, nil
	}

	var dbGenres []Genre
	if err := s.db.WithContext(ctx).Where("tmdb_id IN ?", tmdbIds).Find(&dbGenres).Error; err != nil {
		return nil, err
	}

	genres := make([]domain.Genre, 0, len(dbGenres))
	for _, g := range dbGenres {
		genres = append(genres, *g.ToDomain())
	}
	return genres, nil
}

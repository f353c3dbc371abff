package repository

import (
	"context"
	"fmt"

	"github.com/movieguesser/movie-service/internal/domain"
	"github.com/movieguesser/movie-service/internal/http/dtos"
	"github.com/movieguesser/movie-service/pkg/errcodes"
	"gorm.io/gorm"
)

// GormMovieStore is a GORM-based implementation of MovieStore
type GormMovieStore struct {
	db *gorm.DB
}

// NewGormMovieStore initializes a new GormMovieStore
func NewGormMovieStore(db *gorm.DB) MovieStore {
	return &GormMovieStore{db: db}
}

func (s *GormMovieStore) SaveMovie(ctx context.Context, movie domain.Movie) (*domain.Movie, error) {
	dbMovie := ToGormMovie(&movie)

	err := s.db.WithContext(ctx).Create(dbMovie).Error
	if err != nil {
		return nil, err
	}
	return dbMovie.ToDomain(), nil
}

func (s *GormMovieStore) MovieByPublicId(ctx context.Context, publicId string) (*domain.Movie, error) {
	if ctx.Err() == context.Canceled {
		return nil, errcodes.ErrContextCancelled
	}

	var movie Movie
	err := s.db.WithContext(ctx).
		Preload("Genres").
		Preload("Stills", func(db *gorm.DB) *gorm.DB { return db.Order("ordinal ASC") }).
		Where("public_id = ?", publicId).
		Find(&movie).Error

	if movie.ID == 0 {
		return nil, errcodes.ErrNoRecordFound
	}
	return movie.ToDomain(), err
}

func (s *GormMovieStore) MovieByTMDBId(ctx context.Context, tmdbId int) (*domain.Movie, error) {
	if ctx.Err() == context.Canceled {
		return nil, errcodes.ErrContextCancelled
	}

	var movie Movie
	err := s.db.WithContext(ctx).
		Preload("Genres").
		Preload("Stills", func(db *gorm.DB) *gorm.DB { return db.Order("ordinal ASC") }).
		Where("tmdb_id = ?", tmdbId).
		Find(&movie).Error

	if movie.ID == 0 {
		return nil, errcodes.ErrNoRecordFound
	}
	return movie.ToDomain(), err
}

func (s *GormMovieStore) AllMovies(ctx context.Context, query dtos.APIPagingDto) ([]domain.Movie, dtos.PagingInfo, error) {
	query, offset := getPaginationInfo(query)

	var dbMovies []Movie
	err := s.db.WithContext(ctx).
		Preload("Genres").
		Preload("Stills", func(db *gorm.DB) *gorm.DB { return db.Order("ordinal ASC") }).
		Order(fmt.Sprintf("%s %s", query.Sort, query.Direction)).
		Offset(offset).
		Limit(query.Limit).
		Find(&dbMovies).Error
	if err != nil {
		return nil, dtos.PagingInfo{}, err
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&Movie{}).Count(&count).Error; err != nil {
		return nil, dtos.PagingInfo{}, err
	}

	movies := make([]domain.Movie, 0, len(dbMovies))
	for _, dbMovie := range dbMovies {
		movies = append(movies, *dbMovie.ToDomain())
	}

	return movies, getPagingInfo(query, int(count)), nil
}

func (s *GormMovieStore) CountMovies(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&Movie{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (s *GormMovieStore) CountStills(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&Still{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

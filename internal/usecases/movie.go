package usecases

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/movieguesser/movie-service/internal/domain"
	"github.com/movieguesser/movie-service/internal/http/dtos"
	"github.com/movieguesser/movie-service/internal/repository"
	"github.com/movieguesser/movie-service/pkg/errcodes"
	"github.com/movieguesser/movie-service/pkg/log"
	"github.com/movieguesser/movie-service/pkg/tmdb"
	"github.com/movieguesser/movie-service/pkg/validator"
	"github.com/rs/zerolog"
)

// rateLimitBackoff is how long an indexing run waits after TMDB answers 429.
const rateLimitBackoff = 10 * time.Second

// TMDBClient is the slice of the TMDB API the indexer needs.
type TMDBClient interface {
	Genres(ctx context.Context) (map[int]string, error)
	TopRated(ctx context.Context, page int) ([]tmdb.Movie, bool, error)
	MovieImages(ctx context.Context, movieID int, max int) ([]tmdb.Backdrop, error)
	DownloadImage(ctx context.Context, filePath string) ([]byte, error)
}

// StillConverter stores downloaded backdrops as dataset stills.
type StillConverter interface {
	SaveStill(tmdbID, ordinal int, raw []byte) (string, error)
	StillExists(tmdbID, ordinal int) bool
}

type MovieUsecase interface {
	StartIndexing(ctx context.Context, input dtos.IndexInput) (*domain.IndexRun, error)
	GetRunByPublicId(ctx context.Context, publicId string) (*domain.IndexRun, error)
	GetByPublicId(ctx context.Context, publicId string) (*domain.Movie, error)
	GetAll(ctx context.Context, query dtos.APIPagingDto) (*dtos.MultiMoviesResponse, error)
	SyncGenres(ctx context.Context) error
	AllGenres(ctx context.Context) ([]domain.Genre, error)
	ResumeIncompleteRuns(ctx context.Context) error
	StartRunMonitor(ctx context.Context, interval time.Duration)
}

type movieUsecase struct {
	movieStore     repository.MovieStore
	genreStore     repository.GenreStore
	runStore       repository.RunStore
	client         TMDBClient
	converter      StillConverter
	stillsPerMovie int
	log            zerolog.Logger

	mu     sync.Mutex
	active map[uint]struct{}
}

func NewMovieUsecase(movieStore repository.MovieStore, genreStore repository.GenreStore, runStore repository.RunStore,
	client TMDBClient, converter StillConverter, stillsPerMovie int) MovieUsecase {
	return &movieUsecase{
		movieStore:     movieStore,
		genreStore:     genreStore,
		runStore:       runStore,
		client:         client,
		converter:      converter,
		stillsPerMovie: stillsPerMovie,
		log:            log.WithComponent("indexer"),
		active:         make(map[uint]struct{}),
	}
}

func (uc *movieUsecase) GetByPublicId(ctx context.Context, publicId string) (*domain.Movie, error) {
	if _, err := uuid.Parse(publicId); err != nil {
		return nil, errcodes.ErrInvalidPublicId
	}
	return uc.movieStore.MovieByPublicId(ctx, publicId)
}

func (uc *movieUsecase) GetRunByPublicId(ctx context.Context, publicId string) (*domain.IndexRun, error) {
	if _, err := uuid.Parse(publicId); err != nil {
		return nil, errcodes.ErrInvalidPublicId
	}
	return uc.runStore.RunByPublicId(ctx, publicId)
}

func (uc *movieUsecase) GetAll(ctx context.Context, query dtos.APIPagingDto) (*dtos.MultiMoviesResponse, error) {
	movies, pageInfo, err := uc.movieStore.AllMovies(ctx, query)
	if err != nil {
		return nil, err
	}

	resp := &dtos.MultiMoviesResponse{
		Movies:   make([]dtos.Movie, 0, len(movies)),
		PageInfo: pageInfo,
	}
	for _, movie := range movies {
		resp.Movies = append(resp.Movies, ToMovieDto(movie))
	}
	return resp, nil
}

func (uc *movieUsecase) SyncGenres(ctx context.Context) error {
	genres, err := uc.client.Genres(ctx)
	if err != nil {
		return err
	}
	if err := uc.genreStore.UpsertGenres(ctx, genres); err != nil {
		return err
	}
	uc.log.Info().Int("genres", len(genres)).Msg("genre mapping synced")
	return nil
}

func (uc *movieUsecase) AllGenres(ctx context.Context) ([]domain.Genre, error) {
	return uc.genreStore.AllGenres(ctx)
}

// StartIndexing records a new run and walks the top-rated listing in the
// background until the requested number of movies is stored.
func (uc *movieUsecase) StartIndexing(ctx context.Context, input dtos.IndexInput) (*domain.IndexRun, error) {
	if !validator.IsMovieCount(input.Count) {
		return nil, errcodes.ErrInvalidMovieCount
	}

	stills := input.StillsPerMovie
	if stills == 0 {
		stills = uc.stillsPerMovie
	}
	if !validator.IsStillCount(stills) {
		return nil, errcodes.ErrInvalidMovieCount
	}

	run := domain.IndexRun{
		PublicID:       uuid.NewString(),
		TargetCount:    input.Count,
		StillsPerMovie: stills,
		LastPage:       0,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}

	saved, err := uc.runStore.SaveRun(ctx, run)
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("run", saved.PublicID).Int("target", saved.TargetCount).Msg("indexing run started")
	// The run outlives the request that started it.
	go uc.runIndexing(context.Background(), *saved)

	return saved, nil
}

// ResumeIncompleteRuns picks up every run that did not finish and continues
// it from its last fetched page.
func (uc *movieUsecase) ResumeIncompleteRuns(ctx context.Context) error {
	runs, err := uc.runStore.IncompleteRuns(ctx)
	if err != nil {
		return err
	}

	for _, run := range runs {
		uc.runIndexing(ctx, run)
	}
	return nil
}

// StartRunMonitor periodically resumes incomplete runs until ctx is done.
func (uc *movieUsecase) StartRunMonitor(ctx context.Context, interval time.Duration) {
	uc.log.Info().Dur("interval", interval).Msg("run monitor started")
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := uc.ResumeIncompleteRuns(ctx); err != nil {
				uc.log.Error().Err(err).Msg("failed to resume incomplete runs")
			}
		}
	}
}

// claimRun marks a run as being walked. A run can only have one walker at a
// time: a run from StartIndexing stays incomplete while its goroutine is
// still fetching pages, and the monitor must not start a second walker over
// it.
func (uc *movieUsecase) claimRun(id uint) bool {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if _, ok := uc.active[id]; ok {
		return false
	}
	uc.active[id] = struct{}{}
	return true
}

func (uc *movieUsecase) releaseRun(id uint) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	delete(uc.active, id)
}

func (uc *movieUsecase) runIndexing(ctx context.Context, run domain.IndexRun) {
	if !uc.claimRun(run.ID) {
		uc.log.Debug().Str("run", run.PublicID).Msg("run already in flight, skipping")
		return
	}
	defer uc.releaseRun(run.ID)

	page := run.LastPage + 1

	for run.Indexed < run.TargetCount {
		if ctx.Err() != nil {
			return
		}

		movies, rateLimited, err := uc.client.TopRated(ctx, page)
		if err != nil {
			uc.log.Error().Err(err).Str("run", run.PublicID).Int("page", page).Msg("failed to fetch top rated page")
			return
		}

		if rateLimited {
			uc.log.Warn().Str("run", run.PublicID).Msg("rate limited, backing off")
			select {
			case <-ctx.Done():
				return
			case <-time.After(rateLimitBackoff):
			}
			continue
		}

		if len(movies) == 0 {
			// Listing exhausted before the target was reached.
			break
		}

		for _, movie := range movies {
			if run.Indexed >= run.TargetCount {
				break
			}

			stored, err := uc.processMovie(ctx, movie, run.StillsPerMovie)
			if err != nil {
				uc.log.Error().Err(err).Int("tmdb_id", movie.ID).Str("title", movie.Title).Msg("failed to process movie")
				continue
			}
			if stored {
				run.Indexed++
			}
		}

		run.LastPage = page
		run.UpdatedAt = time.Now()
		if _, err := uc.runStore.UpdateRun(ctx, run); err != nil {
			uc.log.Error().Err(err).Str("run", run.PublicID).Msg("failed to persist run progress")
		}

		page++
	}

	run.Completed = true
	run.UpdatedAt = time.Now()
	if _, err := uc.runStore.UpdateRun(ctx, run); err != nil {
		uc.log.Error().Err(err).Str("run", run.PublicID).Msg("failed to complete run")
		return
	}

	uc.log.Info().Str("run", run.PublicID).Int("indexed", run.Indexed).Msg("indexing run completed")
}

// processMovie stores one listing entry with its stills. Movies without any
// usable still are skipped and do not count toward the run target.
func (uc *movieUsecase) processMovie(ctx context.Context, movie tmdb.Movie, stillsPerMovie int) (bool, error) {
	existing, err := uc.movieStore.MovieByTMDBId(ctx, movie.ID)
	if err != nil && !errors.Is(err, errcodes.ErrNoRecordFound) {
		return false, err
	}
	if existing != nil {
		// Already indexed on an earlier page or run.
		return true, nil
	}

	backdrops, err := uc.client.MovieImages(ctx, movie.ID, stillsPerMovie)
	if err != nil {
		return false, err
	}
	if len(backdrops) == 0 {
		return false, nil
	}

	var stills []domain.Still
	for i, backdrop := range backdrops {
		var raw []byte
		if !uc.converter.StillExists(movie.ID, i) {
			raw, err = uc.client.DownloadImage(ctx, backdrop.FilePath)
			if err != nil {
				uc.log.Error().Err(err).Int("tmdb_id", movie.ID).Str("path", backdrop.FilePath).Msg("failed to download still")
				continue
			}
		}

		fileName, err := uc.converter.SaveStill(movie.ID, i, raw)
		if err != nil {
			uc.log.Error().Err(err).Int("tmdb_id", movie.ID).Str("path", backdrop.FilePath).Msg("failed to convert still")
			continue
		}

		stills = append(stills, domain.Still{
			FileName:    fileName,
			SourcePath:  backdrop.FilePath,
			Width:       backdrop.Width,
			VoteAverage: backdrop.VoteAverage,
			Ordinal:     i,
		})
	}

	if len(stills) == 0 {
		return false, nil
	}

	genres, err := uc.genreStore.GenresByTMDBIds(ctx, movie.GenreIDs)
	if err != nil {
		return false, err
	}

	year := movie.ReleaseDate
	if len(year) > 4 {
		year = year[:4]
	}

	newMovie := domain.Movie{
		PublicID: uuid.NewString(),
		TMDBID:   movie.ID,
		Title:    movie.Title,
		Year:     year,
		Overview: movie.Overview,
		Rating:   movie.VoteAverage,
		Genres:   genres,
		Stills:   stills,
	}
	if movie.OriginalTitle != "" && movie.OriginalTitle != movie.Title {
		newMovie.OriginalTitle = movie.OriginalTitle
	}

	if _, err := uc.movieStore.SaveMovie(ctx, newMovie); err != nil {
		return false, err
	}

	return true, nil
}

// ToMovieDto maps a domain movie to its API representation.
func ToMovieDto(movie domain.Movie) dtos.Movie {
	return dtos.Movie{
		PublicID:      movie.PublicID,
		TMDBID:        movie.TMDBID,
		Title:         movie.Title,
		OriginalTitle: movie.OriginalTitle,
		Year:          movie.Year,
		Overview:      movie.Overview,
		Rating:        movie.Rating,
		Genres:        movie.GenreNames(),
		Images:        movie.StillFileNames(),
	}
}

// ToRunDto maps a domain index run to its API representation.
func ToRunDto(run domain.IndexRun) dtos.IndexRun {
	return dtos.IndexRun{
		PublicID:       run.PublicID,
		TargetCount:    run.TargetCount,
		StillsPerMovie: run.StillsPerMovie,
		LastPage:       run.LastPage,
		Indexed:        run.Indexed,
		Completed:      run.Completed,
		CreatedAt:      run.CreatedAt,
	}
}

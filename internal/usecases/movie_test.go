package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/movieguesser/movie-service/internal/domain"
	"github.com/movieguesser/movie-service/internal/http/dtos"
	"github.com/movieguesser/movie-service/internal/repository/mocks"
	"github.com/movieguesser/movie-service/pkg/errcodes"
	"github.com/movieguesser/movie-service/pkg/tmdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// TMDBClient mock
type tmdbClientMock struct {
	mock.Mock
}

func (m *tmdbClientMock) Genres(ctx context.Context) (map[int]string, error) {
	args := m.Called(ctx)
	return args.Get(0).(map[int]string), args.Error(1)
}

func (m *tmdbClientMock) TopRated(ctx context.Context, page int) ([]tmdb.Movie, bool, error) {
	args := m.Called(ctx, page)
	return args.Get(0).([]tmdb.Movie), args.Bool(1), args.Error(2)
}

func (m *tmdbClientMock) MovieImages(ctx context.Context, movieID int, max int) ([]tmdb.Backdrop, error) {
	args := m.Called(ctx, movieID, max)
	return args.Get(0).([]tmdb.Backdrop), args.Error(1)
}

func (m *tmdbClientMock) DownloadImage(ctx context.Context, filePath string) ([]byte, error) {
	args := m.Called(ctx, filePath)
	return args.Get(0).([]byte), args.Error(1)
}

// StillConverter mock
type converterMock struct {
	mock.Mock
}

func (m *converterMock) SaveStill(tmdbID, ordinal int, raw []byte) (string, error) {
	args := m.Called(tmdbID, ordinal, raw)
	return args.String(0), args.Error(1)
}

func (m *converterMock) StillExists(tmdbID, ordinal int) bool {
	args := m.Called(tmdbID, ordinal)
	return args.Bool(0)
}

func newTestUsecase() (*mocks.MovieStore, *mocks.GenreStore, *mocks.RunStore, *tmdbClientMock, *converterMock, MovieUsecase) {
	movieStore := new(mocks.MovieStore)
	genreStore := new(mocks.GenreStore)
	runStore := new(mocks.RunStore)
	client := new(tmdbClientMock)
	converter := new(converterMock)
	uc := NewMovieUsecase(movieStore, genreStore, runStore, client, converter, 3)
	return movieStore, genreStore, runStore, client, converter, uc
}

func TestStartIndexing_InvalidCount(t *testing.T) {
	_, _, _, _, _, uc := newTestUsecase()

	_, err := uc.StartIndexing(context.TODO(), dtos.IndexInput{Count: 0})
	assert.ErrorIs(t, err, errcodes.ErrInvalidMovieCount)

	_, err = uc.StartIndexing(context.TODO(), dtos.IndexInput{Count: 100000})
	assert.ErrorIs(t, err, errcodes.ErrInvalidMovieCount)
}

func TestStartIndexing_SavesRun(t *testing.T) {
	_, _, runStore, client, _, uc := newTestUsecase()

	saved := &domain.IndexRun{ID: 1, PublicID: "run-1", TargetCount: 20, StillsPerMovie: 3}
	runStore.On("SaveRun", mock.Anything, mock.MatchedBy(func(run domain.IndexRun) bool {
		return run.TargetCount == 20 && run.StillsPerMovie == 3 && run.PublicID != ""
	})).Return(saved, nil)

	// The background walk may start before the test finishes; let it see an
	// exhausted listing so it terminates cleanly.
	client.On("TopRated", mock.Anything, mock.Anything).Return([]tmdb.Movie{}, false, nil).Maybe()
	runStore.On("UpdateRun", mock.Anything, mock.Anything).Return(nil, nil).Maybe()

	run, err := uc.StartIndexing(context.TODO(), dtos.IndexInput{Count: 20})

	assert.NoError(t, err)
	assert.Equal(t, "run-1", run.PublicID)
	assert.Equal(t, 20, run.TargetCount)
	runStore.AssertExpectations(t)
}

func TestResumeIncompleteRuns_IndexesMovie(t *testing.T) {
	movieStore, genreStore, runStore, client, converter, uc := newTestUsecase()

	run := domain.IndexRun{ID: 7, PublicID: "run-7", TargetCount: 1, StillsPerMovie: 2}
	runStore.On("IncompleteRuns", mock.Anything).Return([]domain.IndexRun{run}, nil)

	listed := tmdb.Movie{
		ID:            278,
		Title:         "The Shawshank Redemption",
		OriginalTitle: "The Shawshank Redemption",
		Overview:      "Imprisoned in the 1940s...",
		ReleaseDate:   "1994-09-23",
		VoteAverage:   8.7,
		GenreIDs:      []int{18, 80},
	}
	client.On("TopRated", mock.Anything, 1).Return([]tmdb.Movie{listed}, false, nil)

	movieStore.On("MovieByTMDBId", mock.Anything, 278).Return(nil, errcodes.ErrNoRecordFound)
	backdrops := []tmdb.Backdrop{
		{FilePath: "/a.jpg", Width: 3840, VoteAverage: 6.2},
		{FilePath: "/b.jpg", Width: 1920, VoteAverage: 5.8},
	}
	client.On("MovieImages", mock.Anything, 278, 2).Return(backdrops, nil)

	converter.On("StillExists", 278, 0).Return(false)
	converter.On("StillExists", 278, 1).Return(true)
	client.On("DownloadImage", mock.Anything, "/a.jpg").Return([]byte{1, 2, 3}, nil)
	converter.On("SaveStill", 278, 0, []byte{1, 2, 3}).Return("still_0.webp", nil)
	converter.On("SaveStill", 278, 1, []byte(nil)).Return("still_1.webp", nil)

	genres := []domain.Genre{{ID: 1, TMDBID: 18, Name: "Drama"}, {ID: 2, TMDBID: 80, Name: "Crime"}}
	genreStore.On("GenresByTMDBIds", mock.Anything, []int{18, 80}).Return(genres, nil)

	movieStore.On("SaveMovie", mock.Anything, mock.MatchedBy(func(movie domain.Movie) bool {
		return movie.TMDBID == 278 &&
			movie.Title == "The Shawshank Redemption" &&
			movie.OriginalTitle == "" && // same as title, must be dropped
			movie.Year == "1994" &&
			len(movie.Stills) == 2 &&
			movie.Stills[0].FileName == "still_0.webp" &&
			movie.Stills[0].SourcePath == "/a.jpg" &&
			movie.Stills[0].Width == 3840 &&
			movie.Stills[0].VoteAverage == 6.2 &&
			movie.Stills[1].Ordinal == 1 &&
			movie.Stills[1].Width == 1920 &&
			movie.Stills[1].VoteAverage == 5.8 &&
			len(movie.Genres) == 2 &&
			movie.PublicID != ""
	})).Return(&domain.Movie{ID: 1}, nil)

	runStore.On("UpdateRun", mock.Anything, mock.MatchedBy(func(r domain.IndexRun) bool {
		return r.ID == 7 && r.Indexed == 1 && r.LastPage == 1 && !r.Completed
	})).Return(nil, nil).Once()
	runStore.On("UpdateRun", mock.Anything, mock.MatchedBy(func(r domain.IndexRun) bool {
		return r.ID == 7 && r.Completed
	})).Return(nil, nil).Once()

	err := uc.ResumeIncompleteRuns(context.TODO())
	assert.NoError(t, err)

	movieStore.AssertExpectations(t)
	genreStore.AssertExpectations(t)
	runStore.AssertExpectations(t)
	client.AssertExpectations(t)
	converter.AssertExpectations(t)
}

func TestResumeIncompleteRuns_SkipsMoviesWithoutStills(t *testing.T) {
	movieStore, _, runStore, client, _, uc := newTestUsecase()

	run := domain.IndexRun{ID: 8, PublicID: "run-8", TargetCount: 1, StillsPerMovie: 3}
	runStore.On("IncompleteRuns", mock.Anything).Return([]domain.IndexRun{run}, nil)

	listed := tmdb.Movie{ID: 99, Title: "No Stills", ReleaseDate: "2001-01-01"}
	client.On("TopRated", mock.Anything, 1).Return([]tmdb.Movie{listed}, false, nil)
	client.On("TopRated", mock.Anything, 2).Return([]tmdb.Movie{}, false, nil)

	movieStore.On("MovieByTMDBId", mock.Anything, 99).Return(nil, errcodes.ErrNoRecordFound)
	client.On("MovieImages", mock.Anything, 99, 3).Return([]tmdb.Backdrop{}, nil)

	runStore.On("UpdateRun", mock.Anything, mock.Anything).Return(nil, nil)

	err := uc.ResumeIncompleteRuns(context.TODO())
	assert.NoError(t, err)

	movieStore.AssertNotCalled(t, "SaveMovie", mock.Anything, mock.Anything)
}

func TestResumeIncompleteRuns_AlreadyIndexedCountsTowardTarget(t *testing.T) {
	movieStore, _, runStore, client, _, uc := newTestUsecase()

	run := domain.IndexRun{ID: 9, PublicID: "run-9", TargetCount: 1, StillsPerMovie: 3}
	runStore.On("IncompleteRuns", mock.Anything).Return([]domain.IndexRun{run}, nil)

	listed := tmdb.Movie{ID: 278, Title: "The Shawshank Redemption"}
	client.On("TopRated", mock.Anything, 1).Return([]tmdb.Movie{listed}, false, nil)

	existing := &domain.Movie{ID: 1, TMDBID: 278}
	movieStore.On("MovieByTMDBId", mock.Anything, 278).Return(existing, nil)

	runStore.On("UpdateRun", mock.Anything, mock.MatchedBy(func(r domain.IndexRun) bool {
		return r.Indexed == 1
	})).Return(nil, nil)

	err := uc.ResumeIncompleteRuns(context.TODO())
	assert.NoError(t, err)

	client.AssertNotCalled(t, "MovieImages", mock.Anything, mock.Anything, mock.Anything)
	movieStore.AssertNotCalled(t, "SaveMovie", mock.Anything, mock.Anything)
}

// A run started by StartIndexing stays incomplete while its goroutine is
// walking pages, so the monitor sees it in IncompleteRuns. Resuming it must
// not start a second walker over the same run.
func TestResumeIncompleteRuns_SkipsRunAlreadyInFlight(t *testing.T) {
	_, _, runStore, client, _, uc := newTestUsecase()

	run := domain.IndexRun{ID: 11, PublicID: "run-11", TargetCount: 1, StillsPerMovie: 3}
	runStore.On("IncompleteRuns", mock.Anything).Return([]domain.IndexRun{run}, nil)

	fetching := make(chan struct{})
	release := make(chan struct{})
	client.On("TopRated", mock.Anything, 1).Return([]tmdb.Movie{}, false, nil).
		Run(func(args mock.Arguments) {
			close(fetching)
			<-release
		}).Once()

	done := make(chan struct{})
	runStore.On("UpdateRun", mock.Anything, mock.MatchedBy(func(r domain.IndexRun) bool {
		return r.ID == 11 && r.Completed
	})).Return(nil, nil).Once().Run(func(args mock.Arguments) {
		close(done)
	})

	go func() {
		assert.NoError(t, uc.ResumeIncompleteRuns(context.TODO()))
	}()
	<-fetching

	// The first walker is mid-page; a monitor tick must not double-walk.
	assert.NoError(t, uc.ResumeIncompleteRuns(context.TODO()))
	client.AssertNumberOfCalls(t, "TopRated", 1)

	close(release)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("first walker never completed the run")
	}

	runStore.AssertExpectations(t)
	client.AssertExpectations(t)
}

func TestGetByPublicId_InvalidId(t *testing.T) {
	_, _, _, _, _, uc := newTestUsecase()

	_, err := uc.GetByPublicId(context.TODO(), "not-a-uuid")
	assert.ErrorIs(t, err, errcodes.ErrInvalidPublicId)
}

func TestGetRunByPublicId(t *testing.T) {
	_, _, runStore, _, _, uc := newTestUsecase()

	_, err := uc.GetRunByPublicId(context.TODO(), "not-a-uuid")
	assert.ErrorIs(t, err, errcodes.ErrInvalidPublicId)

	run := &domain.IndexRun{ID: 3, PublicID: "22222222-2222-2222-2222-222222222222", Indexed: 40}
	runStore.On("RunByPublicId", mock.Anything, run.PublicID).Return(run, nil)

	got, err := uc.GetRunByPublicId(context.TODO(), run.PublicID)
	assert.NoError(t, err)
	assert.Equal(t, 40, got.Indexed)
}

func TestGetAll_MapsToDto(t *testing.T) {
	movieStore, _, _, _, _, uc := newTestUsecase()

	movies := []domain.Movie{
		{
			PublicID:  "11111111-1111-1111-1111-111111111111",
			TMDBID:    238,
			Title:     "The Godfather",
			Year:      "1972",
			Rating:    8.7,
			Genres:    []domain.Genre{{Name: "Drama"}, {Name: "Crime"}},
			Stills:    []domain.Still{{FileName: "still_0.webp"}},
			CreatedAt: time.Now(),
		},
	}
	pageInfo := dtos.PagingInfo{TotalCount: 1, Page: 1}
	query := dtos.APIPagingDto{Page: 1, Limit: 10}

	movieStore.On("AllMovies", mock.Anything, query).Return(movies, pageInfo, nil)

	resp, err := uc.GetAll(context.TODO(), query)
	assert.NoError(t, err)
	assert.Equal(t, 1, len(resp.Movies))
	assert.Equal(t, "The Godfather", resp.Movies[0].Title)
	assert.Equal(t, []string{"Drama", "Crime"}, resp.Movies[0].Genres)
	assert.Equal(t, []string{"still_0.webp"}, resp.Movies[0].Images)
	assert.Equal(t, int64(1), resp.PageInfo.TotalCount)

	movieStore.AssertExpectations(t)
}

func TestSyncGenres(t *testing.T) {
	_, genreStore, _, client, _, uc := newTestUsecase()

	mapping := map[int]string{28: "Action", 18: "Drama"}
	client.On("Genres", mock.Anything).Return(mapping, nil)
	genreStore.On("UpsertGenres", mock.Anything, mapping).Return(nil)

	err := uc.SyncGenres(context.TODO())
	assert.NoError(t, err)

	genreStore.AssertExpectations(t)
	client.AssertExpectations(t)
}

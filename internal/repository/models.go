package repository

import (
	"time"

	"github.com/movieguesser/movie-service/internal/domain"
)

// Movie is the GORM model for a dataset movie
type Movie struct {
	ID            uint   `gorm:"primaryKey"`
	PublicID      string `gorm:"uniqueIndex"`
	TMDBID        int    `gorm:"uniqueIndex"`
	Title         string `gorm:"index"`
	OriginalTitle string
	Year          string
	Overview      string
	Rating        float64
	Genres        []Genre `gorm:"many2many:movie_genres;"`
	Stills        []Still `gorm:"foreignKey:MovieID"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Genre is the GORM model for a TMDB genre
type Genre struct {
	ID     uint `gorm:"primaryKey"`
	TMDBID int  `gorm:"uniqueIndex"`
	Name   string
}

// Still is the GORM model for a converted backdrop image
type Still struct {
	ID          uint   `gorm:"primaryKey"`
	MovieID     uint   `gorm:"index"`
	FileName    string
	SourcePath  string
	Width       int
	VoteAverage float64
	Ordinal     int
	CreatedAt   time.Time
}

// IndexRun is the GORM model for one walk over the top-rated listing
type IndexRun struct {
	ID             uint   `gorm:"primaryKey"`
	PublicID       string `gorm:"uniqueIndex"`
	TargetCount    int
	StillsPerMovie int
	LastPage       int
	Indexed        int
	Completed      bool `gorm:"index"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (m *Movie) ToDomain() *domain.Movie {
	genres := make([]domain.Genre, 0, len(m.Genres))
	for _, g := range m.Genres {
		genres = append(genres, *g.ToDomain())
	}
	stills := make([]domain.Still, 0, len(m.Stills))
	for _, s := range m.Stills {
		stills = append(stills, *s.ToDomain())
	}
	return &domain.Movie{
		ID:            m.ID,
		PublicID:      m.PublicID,
		TMDBID:        m.TMDBID,
		Title:         m.Title,
		OriginalTitle: m.OriginalTitle,
		Year:          m.Year,
		Overview:      m.Overview,
		Rating:        m.Rating,
		Genres:        genres,
		Stills:        stills,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func (g *Genre) ToDomain() *domain.Genre {
	return &domain.Genre{
		ID:     g.ID,
		TMDBID: g.TMDBID,
		Name:   g.Name,
	}
}

func (s *Still) ToDomain() *domain.Still {
	return &domain.Still{
		ID:          s.ID,
		MovieID:     s.MovieID,
		FileName:    s.FileName,
		SourcePath:  s.SourcePath,
		Width:       s.Width,
		VoteAverage: s.VoteAverage,
		Ordinal:     s.Ordinal,
		CreatedAt:   s.CreatedAt,
	}
}

func (r *IndexRun) ToDomain() *domain.IndexRun {
	return &domain.IndexRun{
		ID:             r.ID,
		PublicID:       r.PublicID,
		TargetCount:    r.TargetCount,
		StillsPerMovie: r.StillsPerMovie,
		LastPage:       r.LastPage,
		Indexed:        r.Indexed,
		Completed:      r.Completed,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

// ToGormMovie maps a domain movie onto its GORM model
func ToGormMovie(m *domain.Movie) *Movie {
	genres := make([]Genre, 0, len(m.Genres))
	for _, g := range m.Genres {
		genres = append(genres, *ToGormGenre(&g))
	}
	stills := make([]Still, 0, len(m.Stills))
	for _, s := range m.Stills {
		stills = append(stills, Still{
			ID:          s.ID,
			MovieID:     s.MovieID,
			FileName:    s.FileName,
			SourcePath:  s.SourcePath,
			Width:       s.Width,
			VoteAverage: s.VoteAverage,
			Ordinal:     s.Ordinal,
			CreatedAt:   s.CreatedAt,
		})
	}
	return &Movie{
		ID:            m.ID,
		PublicID:      m.PublicID,
		TMDBID:        m.TMDBID,
		Title:         m.Title,
		OriginalTitle: m.OriginalTitle,
		Year:          m.Year,
		Overview:      m.Overview,
		Rating:        m.Rating,
		Genres:        genres,
		Stills:        stills,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// ToGormGenre maps a domain genre onto its GORM model
func ToGormGenre(g *domain.Genre) *Genre {
	return &Genre{
		ID:     g.ID,
		TMDBID: g.TMDBID,
		Name:   g.Name,
	}
}

// ToGormRun maps a domain index run onto its GORM model
func ToGormRun(r *domain.IndexRun) *IndexRun {
	return &IndexRun{
		ID:             r.ID,
		PublicID:       r.PublicID,
		TargetCount:    r.TargetCount,
		StillsPerMovie: r.StillsPerMovie,
		LastPage:       r.LastPage,
		Indexed:        r.Indexed,
		Completed:      r.Completed,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

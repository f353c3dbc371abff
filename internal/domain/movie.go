package domain

import "time"

// Movie is a dataset entry: one top-rated TMDB movie with its stills.
type Movie struct {
	ID            uint
	PublicID      string
	TMDBID        int
	Title         string
	OriginalTitle string
	Year          string
	Overview      string
	Rating        float64
	Genres        []Genre
	Stills        []Still
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IndexRun tracks one walk over the top-rated listing: how many movies it
// should collect, the last page fetched, and whether it finished.
type IndexRun struct {
	ID             uint
	PublicID       string
	TargetCount    int
	StillsPerMovie int
	LastPage       int
	Indexed        int
	Completed      bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Genre is a TMDB movie genre.
type Genre struct {
	ID     uint
	TMDBID int
	Name   string
}

// Still is a single converted backdrop image stored on disk.
type Still struct {
	ID          uint
	MovieID     uint
	FileName    string
	SourcePath  string
	Width       int
	VoteAverage float64
	Ordinal     int
	CreatedAt   time.Time
}

// GenreNames returns the genre names of a movie in stored order.
func (m Movie) GenreNames() []string {
	names := make([]string, 0, len(m.Genres))
	for _, g := range m.Genres {
		names = append(names, g.Name)
	}
	return names
}

// StillFileNames returns the file names of a movie's stills in stored order.
func (m Movie) StillFileNames() []string {
	names := make([]string, 0, len(m.Stills))
	for _, s := range m.Stills {
		names = append(names, s.FileName)
	}
	return names
}

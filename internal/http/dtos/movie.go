package dtos

import "time"

// IndexInput is the request body for starting a dataset indexing run.
type IndexInput struct {
	Count          int `json:"count" validate:"required,gt=0,lte=10000"`
	StillsPerMovie int `json:"stills_per_movie" validate:"omitempty,gt=0,lte=10"`
}

// Movie is the API representation of a dataset movie.
type Movie struct {
	PublicID      string   `json:"id"`
	TMDBID        int      `json:"tmdb_id"`
	Title         string   `json:"title"`
	OriginalTitle string   `json:"original_title,omitempty"`
	Year          string   `json:"year"`
	Overview      string   `json:"overview"`
	Rating        float64  `json:"rating"`
	Genres        []string `json:"genres"`
	Images        []string `json:"images"`
}

// MultiMoviesResponse is a page of movies plus paging metadata.
type MultiMoviesResponse struct {
	Movies   []Movie    `json:"movies"`
	PageInfo PagingInfo `json:"page_info"`
}

// Genre is the API representation of a TMDB genre.
type Genre struct {
	TMDBID int    `json:"tmdb_id"`
	Name   string `json:"name"`
}

// IndexRun is the API representation of an indexing run.
type IndexRun struct {
	PublicID       string    `json:"id"`
	TargetCount    int       `json:"target_count"`
	StillsPerMovie int       `json:"stills_per_movie"`
	LastPage       int       `json:"last_page"`
	Indexed        int       `json:"indexed"`
	Completed      bool      `json:"completed"`
	CreatedAt      time.Time `json:"created_at"`
}

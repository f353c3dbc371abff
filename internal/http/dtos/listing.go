package dtos

import "time"

// ListingStatsInput is the request body for rewriting the listing stats block.
type ListingStatsInput struct {
	Installs int `json:"installs" validate:"gte=0"`
	Forks    int `json:"forks" validate:"gte=0"`
}

// ListingStats is the API representation of the listing stats block.
type ListingStats struct {
	Installs  int       `json:"installs"`
	Forks     int       `json:"forks"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DatasetStats summarises the stored dataset for the stats endpoint.
type DatasetStats struct {
	TotalMovies     int64   `json:"total_movies"`
	TotalStills     int64   `json:"total_stills"`
	StillsPerMovie  float64 `json:"stills_per_movie"`
	IndexingPending int64   `json:"indexing_pending"`
}

package domain

import "time"

// ListingStats is the Installs/Forks counter pair shown on the plugin
// listing page, with the time the block was last rewritten.
type ListingStats struct {
	Installs  int
	Forks     int
	UpdatedAt time.Time
}

// DatasetStats summarises the stored dataset.
type DatasetStats struct {
	TotalMovies     int64
	TotalStills     int64
	StillsPerMovie  float64
	IndexingPending int64
}

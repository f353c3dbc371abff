package errcodes

import "errors"

var (
	ErrNoRecordFound      = errors.New("no record found")
	ErrInvalidMovieCount  = errors.New("invalid movie count")
	ErrInvalidPublicId    = errors.New("invalid public id")
	ErrContextCancelled   = errors.New("context cancelled")
	ErrListingNotFound    = errors.New("plugin listing file not found")
	ErrNegativeStatsValue = errors.New("stats counters must be non-negative")
)

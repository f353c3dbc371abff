package validator

// IsMovieCount reports whether n is a sensible dataset size. TMDB serves
// top-rated movies 20 per page and caps listing depth at 500 pages.
func IsMovieCount(n int) bool {
	return n > 0 && n <= 10000
}

// IsStillCount reports whether n stills per movie is within bounds.
func IsStillCount(n int) bool {
	return n > 0 && n <= 10
}

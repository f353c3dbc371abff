package routes

import (
	"net/http"

	"github.com/movieguesser/movie-service/internal/http/handlers"
	httpSwagger "github.com/swaggo/http-swagger"
)

func NewRouter(mh *handlers.MovieHandler, gh *handlers.GenreHandler, dh *handlers.DatasetHandler, lh *handlers.ListingHandler) *http.ServeMux {
	router := http.NewServeMux()

	router.HandleFunc("POST /movies", mh.StartIndexing)
	router.HandleFunc("GET /movies", mh.FetchAllMovies)
	router.HandleFunc("GET /movies/{id}", mh.FetchMovie)
	router.HandleFunc("GET /runs/{id}", mh.FetchRun)

	router.HandleFunc("GET /genres", gh.FetchGenres)
	router.HandleFunc("POST /genres/sync", gh.SyncGenres)

	router.HandleFunc("GET /dataset/stats", dh.FetchStats)
	router.HandleFunc("POST /dataset/export", dh.ExportDataset)

	router.HandleFunc("GET /listing/stats", lh.FetchListingStats)
	router.HandleFunc("PUT /listing/stats", lh.UpdateListingStats)
	router.HandleFunc("GET /listing/lint", lh.LintListing)

	// Serve Swagger documentation
	router.HandleFunc("/swagger/", httpSwagger.WrapHandler)

	return router
}

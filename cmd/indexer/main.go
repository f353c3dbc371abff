package main

import (
	"context"
	"net/http"

	"github.com/movieguesser/movie-service/internal/http/handlers"
	"github.com/movieguesser/movie-service/internal/images"
	"github.com/movieguesser/movie-service/internal/listing"
	"github.com/movieguesser/movie-service/internal/repository"
	"github.com/movieguesser/movie-service/internal/routes"
	"github.com/movieguesser/movie-service/internal/seeder"
	"github.com/movieguesser/movie-service/internal/storage"
	"github.com/movieguesser/movie-service/internal/usecases"
	"github.com/movieguesser/movie-service/pkg/config"
	"github.com/movieguesser/movie-service/pkg/log"
	"github.com/movieguesser/movie-service/pkg/tmdb"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		baseLogger := log.Base()
		baseLogger.Fatal().Err(err).Msg("failed to load configuration")
	}

	log.Configure(log.Config{Level: cfg.LogLevel})
	logger := log.WithComponent("main")

	// Initialize the database
	db, err := storage.InitDB(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize database")
	}

	// Create the stores
	movieStore := repository.NewGormMovieStore(db)
	genreStore := repository.NewGormGenreStore(db)
	runStore := repository.NewGormRunStore(db)

	// Initialize the TMDB client and the still converter
	client := tmdb.NewClient(cfg.TMDBAPIKey)
	converter := images.NewConverter(cfg.DatasetDir)

	// Create the usecases
	movieUsecase := usecases.NewMovieUsecase(movieStore, genreStore, runStore, client, converter, cfg.StillsPerMovie)
	datasetUsecase := usecases.NewDatasetUsecase(movieStore, runStore, cfg.DatasetDir)
	listingUsecase := usecases.NewListingUsecase(listing.NewFile(cfg.ListingPath))

	// Set up HTTP routes
	router := routes.NewRouter(
		handlers.NewMovieHandler(movieUsecase),
		handlers.NewGenreHandler(movieUsecase),
		handlers.NewDatasetHandler(datasetUsecase),
		handlers.NewListingHandler(listingUsecase),
	)

	ctx := context.Background()

	// Seed the database if necessary
	if err := seeder.SeedDatabase(ctx, movieStore, movieUsecase, cfg.TotalMovies); err != nil {
		logger.Fatal().Err(err).Msg("failed to seed database")
	}

	// Start the background run monitor
	go movieUsecase.StartRunMonitor(ctx, cfg.MonitorInterval)

	// Start the HTTP server
	logger.Info().Str("port", cfg.ServerPort).Msg("server is running")
	if err := http.ListenAndServe(":"+cfg.ServerPort, router); err != nil {
		logger.Fatal().Err(err).Msg("could not start server")
	}
}

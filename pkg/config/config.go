package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds every runtime setting for the service.
type Config struct {
	TMDBAPIKey string `mapstructure:"TMDB_API_KEY"`

	DBHost     string `mapstructure:"DB_HOST"`
	DBUser     string `mapstructure:"DB_USER"`
	DBPassword string `mapstructure:"DB_PASSWORD"`
	DBName     string `mapstructure:"DB_NAME"`
	DBPort     string `mapstructure:"DB_PORT"`

	ServerPort      string        `mapstructure:"SERVER_PORT"`
	DatasetDir      string        `mapstructure:"DATASET_DIR"`
	ListingPath     string        `mapstructure:"LISTING_PATH"`
	TotalMovies     int           `mapstructure:"TOTAL_MOVIES"`
	StillsPerMovie  int           `mapstructure:"STILLS_PER_MOVIE"`
	MonitorInterval time.Duration `mapstructure:"MONITOR_INTERVAL"`
	LogLevel        string        `mapstructure:"LOG_LEVEL"`
}

// Load reads configuration from the environment, with an optional .env file
// for local development.
func Load() (Config, error) {
	// A missing .env is fine, real deployments set the environment directly.
	_ = godotenv.Load()

	v := viper.New()
	// Viper only maps environment variables onto keys it knows about, so
	// every key needs a default, including the required one.
	v.SetDefault("TMDB_API_KEY", "")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_NAME", "movieguesser")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("DATASET_DIR", "movie_dataset")
	v.SetDefault("LISTING_PATH", "docs/listing.md")
	v.SetDefault("TOTAL_MOVIES", 1000)
	v.SetDefault("STILLS_PER_MOVIE", 3)
	v.SetDefault("MONITOR_INTERVAL", time.Minute)
	v.SetDefault("LOG_LEVEL", "info")
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse configuration: %w", err)
	}

	if cfg.TMDBAPIKey == "" {
		return Config{}, fmt.Errorf("TMDB_API_KEY is required")
	}

	return cfg, nil
}

// Package config loads and validates the environment configuration.
package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/joho/godotenv"
	"go-simpler.org/env"
)

type Config struct {
	AppEnv string `env:"APP_ENV" default:"development"`
	Port   string `env:"PORT" default:"8080"`

	LogLevel  string `env:"LOG_LEVEL" default:"info"`
	LogFormat string `env:"LOG_FORMAT" default:"text"`

	GeneratorAPIKey  string        `env:"GENERATOR_API_KEY"`
	GeneratorBaseURL string        `env:"GENERATOR_BASE_URL"`
	GeneratorModel   string        `env:"GENERATOR_MODEL"`
	GeneratorTimeout time.Duration `env:"GENERATOR_TIMEOUT" default:"20s"`

	RefreshInterval time.Duration `env:"REFRESH_INTERVAL" default:"30s"`
	GeneratorWindow int           `env:"GENERATOR_WINDOW" default:"100"`

	// RedisURL is optional: when empty the server runs with the in-memory
	// batch source only.
	RedisURL string `env:"REDIS_URL"`
	QueueKey string `env:"QUEUE_KEY" default:"chat:batches"`

	VoteRatePerSecond float64 `env:"VOTE_RATE_PER_SECOND" default:"5"`
	VoteBurst         int     `env:"VOTE_BURST" default:"10"`
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	var cfg Config
	if err := env.Load(&cfg, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func validate(cfg *Config) error {
	if cfg.GeneratorAPIKey == "" {
		return fmt.Errorf("GENERATOR_API_KEY is required")
	}
	if cfg.RefreshInterval <= 0 {
		return fmt.Errorf("REFRESH_INTERVAL must be positive, got %s", cfg.RefreshInterval)
	}
	if cfg.GeneratorTimeout <= 0 {
		return fmt.Errorf("GENERATOR_TIMEOUT must be positive, got %s", cfg.GeneratorTimeout)
	}
	if cfg.GeneratorWindow <= 0 {
		return fmt.Errorf("GENERATOR_WINDOW must be positive, got %d", cfg.GeneratorWindow)
	}
	return nil
}

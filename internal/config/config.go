// Package config loads the simserver driver's configuration from the
// environment via struct tags, the way the rest of this stack's services
// do it.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the complete environment-driven configuration for the HTTP
// driver. It has no bearing on the simulation core, which takes its own
// Config literal directly from the caller.
type Config struct {
	App       AppConfig       `envPrefix:"APP_"`
	Sim       SimConfig       `envPrefix:"SIM_"`
	RateLimit RateLimitConfig `envPrefix:"RATE_LIMIT_"`
}

// AppConfig configures the HTTP server itself.
type AppConfig struct {
	Port     int    `env:"PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// SimConfig carries the default simulation parameters a driver exposes
// when a request doesn't override them.
type SimConfig struct {
	Seed      int64  `env:"SEED" envDefault:"42"`
	TimeStep  int64  `env:"TIME_STEP" envDefault:"1000"`
	MaxSteps  int    `env:"MAX_STEPS" envDefault:"1000000"`
	OutputDir string `env:"OUTPUT_DIR" envDefault:"output"`
}

// RateLimitConfig configures the per-IP fixed-window limiter.
type RateLimitConfig struct {
	MaxRequests int `env:"MAX_REQUESTS" envDefault:"100"`
	WindowSecs  int `env:"WINDOW_SECONDS" envDefault:"60"`
}

// Load reads a .env file if present, then parses the environment into a
// Config, applying envDefault tags for anything unset.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

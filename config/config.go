// Package config reads the client settings from the environment.
//
// Variables are read from the process environment first, then from the
// .env.local and .env files of the working directory when they exist.
package config

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"golang.org/x/time/rate"

	scryfall "github.com/cschneid/scryfall-api"
)

// DotEnvFiles are loaded by Load, in order. Variables already set are never
// overridden, so earlier files win.
var DotEnvFiles = []string{".env.local", ".env"}

// Config holds the client settings.
type Config struct {
	BaseURL     string        `env:"SCRYFALL_BASE_URL" envDefault:"https://api.scryfall.com"`
	MinInterval time.Duration `env:"SCRYFALL_MIN_INTERVAL" envDefault:"50ms"`
	// RateLimit is a sustained limit in requests per second. Zero disables
	// it, leaving only MinInterval.
	RateLimit float64       `env:"SCRYFALL_RATE_LIMIT" envDefault:"0"`
	Burst     int           `env:"SCRYFALL_BURST" envDefault:"1"`
	Timeout   time.Duration `env:"SCRYFALL_TIMEOUT" envDefault:"30s"`
	UserAgent string        `env:"SCRYFALL_USER_AGENT"`
	Debug     bool          `env:"SCRYFALL_DEBUG" envDefault:"false"`
}

// Load reads the configuration from DotEnvFiles and the environment.
func Load() (*Config, error) {
	return LoadFiles(DotEnvFiles...)
}

// LoadFiles reads the configuration from the given dotenv files and the
// environment. Missing files are skipped.
func LoadFiles(files ...string) (*Config, error) {
	for _, file := range files {
		if _, err := os.Stat(file); err != nil {
			continue
		}
		if err := godotenv.Load(file); err != nil {
			return nil, fmt.Errorf("config: failed to load %s: %w", file, err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the values that can't be expressed with struct tags.
func (c *Config) Validate() error {
	if c.MinInterval < 0 {
		return fmt.Errorf("config: SCRYFALL_MIN_INTERVAL must not be negative, got %s", c.MinInterval)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("config: SCRYFALL_TIMEOUT must not be negative, got %s", c.Timeout)
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("config: SCRYFALL_RATE_LIMIT must not be negative, got %g", c.RateLimit)
	}
	if c.RateLimit > 0 && c.Burst < 1 {
		return errors.New("config: SCRYFALL_BURST must be at least 1 when a rate limit is set")
	}
	return nil
}

// ClientOptions converts the configuration to client options.
func (c *Config) ClientOptions() []scryfall.ClientOption {
	options := []scryfall.ClientOption{
		scryfall.WithBaseURL(c.BaseURL),
		scryfall.WithMinInterval(c.MinInterval),
		scryfall.WithHTTPClient(&http.Client{Timeout: c.Timeout}),
	}

	if c.RateLimit > 0 {
		options = append(options, scryfall.WithRateLimit(rate.Limit(c.RateLimit), c.Burst))
	}
	if c.UserAgent != "" {
		options = append(options, scryfall.WithUserAgent(c.UserAgent))
	}

	return options
}

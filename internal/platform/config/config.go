// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (source, sessions) via constructors.
  - Zero Hidden State: No global variables are used to store config.
*/
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// # Configuration Schema

// Config holds all runtime configuration for the photodir API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Photographer data provider
	SourceURL     string        `env:"SOURCE_URL"     envDefault:"http://localhost:3001/photographers"`
	SourceTimeout time.Duration `env:"SOURCE_TIMEOUT" envDefault:"10s"`

	// Key-Value Cache (Redis). Empty disables the upstream snapshot cache.
	RedisURL       string        `env:"REDIS_URL"`
	SourceCacheTTL time.Duration `env:"SOURCE_CACHE_TTL" envDefault:"30s"`

	// Browse sessions
	LoadMoreDelay  time.Duration `env:"LOAD_MORE_DELAY" envDefault:"1s"`
	InitialVisible int           `env:"INITIAL_VISIBLE" envDefault:"3"`
	SessionTTL     time.Duration `env:"SESSION_TTL"     envDefault:"30m"`

	// Cross-Origin Resource Sharing
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return cfg, nil
}

// validate rejects values env cannot express as constraints.
func (c *Config) validate() error {
	var errs []error

	if c.SourceURL == "" {
		errs = append(errs, errors.New("SOURCE_URL must not be empty"))
	}
	if c.SourceTimeout <= 0 {
		errs = append(errs, errors.New("SOURCE_TIMEOUT must be positive"))
	}
	if c.LoadMoreDelay < 0 {
		errs = append(errs, errors.New("LOAD_MORE_DELAY must not be negative"))
	}
	if c.InitialVisible < 1 {
		errs = append(errs, errors.New("INITIAL_VISIBLE must be at least 1"))
	}
	if c.SessionTTL <= 0 {
		errs = append(errs, errors.New("SESSION_TTL must be positive"))
	}
	if c.RedisURL != "" && c.SourceCacheTTL <= 0 {
		errs = append(errs, errors.New("SOURCE_CACHE_TTL must be positive when REDIS_URL is set"))
	}

	return errors.Join(errs...)
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsOriginAllowed reports whether origin is in the configured allow list.
func (c *Config) IsOriginAllowed(origin string) bool {
	for _, allowed := range c.AllowedOrigins {
		if allowed == origin {
			return true
		}
	}
	return false
}

// Copyright (c) 2026 DTAKit. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config reads the runtime settings of the DTAKit API from the
environment.

Values are mapped with 'caarlos0/env' struct tags. Required variables fail
the load; everything else has a default suited to local development.

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

The returned struct is read-only and handed to constructors.
*/
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// # Configuration Schema

// Config holds all runtime configuration for the DTAKit API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL   string `env:"DATABASE_URL,required"`
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Render and hash cache (Redis)
	RedisURL       string        `env:"REDIS_URL,required"`
	RenderCacheTTL time.Duration `env:"RENDER_CACHE_TTL" envDefault:"1h"`

	// Write endpoints verify RS256 tokens with the public key. The private
	// key is only needed where tokens are minted (local tooling, tests).
	JWTPubKeyPath  string `env:"JWT_PUBLIC_KEY_PATH,required"`
	JWTPrivKeyPath string `env:"JWT_PRIVATE_KEY_PATH"`

	// Document ingestion limits
	MaxDocumentBytes int64         `env:"MAX_DOCUMENT_BYTES" envDefault:"8388608"`
	ImportWorkers    int           `env:"IMPORT_WORKERS"     envDefault:"4"`
	FetchTimeout     time.Duration `env:"FETCH_TIMEOUT"      envDefault:"5s"`

	// Cross-Origin Resource Sharing
	ExtraOrigins string `env:"EXTRA_ORIGINS"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {
	cfg := &Config{}

	// Fails when a 'required' variable is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if cfg.ImportWorkers < 1 {
		return nil, fmt.Errorf("config: IMPORT_WORKERS must be at least 1, got %d", cfg.ImportWorkers)
	}
	if cfg.MaxDocumentBytes < 1 {
		return nil, fmt.Errorf("config: MAX_DOCUMENT_BYTES must be positive, got %d", cfg.MaxDocumentBytes)
	}

	return cfg, nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Copyright (c) 2026 Voyara. All rights reserved.
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
  - DI-Friendly: Passed to core components (DB, Redis) via constructors.
  - Zero Hidden State: No global variables are used to store config.

Only the guide source is mandatory. PostgreSQL, Redis, and JWT verification
are switched on by setting their variables.
*/
package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/taibuivan/voyara/internal/platform/constants"
	"github.com/taibuivan/voyara/pkg/query"
)

var (
	// ErrDatabaseURLRequired is returned when the postgres source has no DSN.
	ErrDatabaseURLRequired = errors.New("DATABASE_URL is required when GUIDE_SOURCE=postgres")

	// ErrUnknownGuideSource is returned for an unsupported GUIDE_SOURCE.
	ErrUnknownGuideSource = errors.New("GUIDE_SOURCE must be one of: fixtures, postgres")
)

// # Configuration Schema

// Config holds all runtime configuration for the Voyara API server and CLI.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// GuideSource selects where guide records come from: "fixtures" or "postgres".
	GuideSource string `env:"GUIDE_SOURCE" envDefault:"fixtures"`

	// FixturePath overrides the catalogue embedded in the binary.
	FixturePath string `env:"GUIDE_FIXTURE_PATH"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// AutoMigrate applies pending migrations on startup.
	AutoMigrate bool `env:"AUTO_MIGRATE" envDefault:"false"`

	// Key-Value Store (Redis) for search history; in-memory when empty.
	RedisURL string `env:"REDIS_URL"`

	// JWT keys. The API only needs the public key; the CLI signs with the private key.
	JWTPrivKeyPath string `env:"JWT_PRIVATE_KEY_PATH"`
	JWTPubKeyPath  string `env:"JWT_PUBLIC_KEY_PATH"`

	// Per-IP token bucket
	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS"   envDefault:"100"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" envDefault:"150"`

	// Cross-Origin Resource Sharing
	OriginSuffix string `env:"CORS_ORIGIN_SUFFIX" envDefault:"voyara.app"`
	ExtraOrigins string `env:"EXTRA_ORIGINS"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct and validates it.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return cfg, nil
}

// Validate checks cross-field rules that struct tags cannot express.
func (c *Config) Validate() error {
	switch c.GuideSource {
	case constants.GuideSourceFixtures:
	case constants.GuideSourcePostgres:
		if c.DatabaseURL == "" {
			return ErrDatabaseURLRequired
		}
	default:
		return ErrUnknownGuideSource
	}

	if c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0 {
		return fmt.Errorf("RATE_LIMIT_RPS (%g) and RATE_LIMIT_BURST (%d) must be positive", c.RateLimitRPS, c.RateLimitBurst)
	}

	return nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// UsesPostgres reports whether guide records are read from PostgreSQL.
func (c *Config) UsesPostgres() bool {
	return c.GuideSource == constants.GuideSourcePostgres
}

// AllowsOrigin reports whether a browser origin may call the API.
//
// An origin is allowed when its host is the configured suffix or a subdomain
// of it, or when it is listed verbatim in EXTRA_ORIGINS.
func (c *Config) AllowsOrigin(origin string) bool {
	if slices.Contains(query.StringSlice(c.ExtraOrigins), origin) {
		return true
	}

	if c.OriginSuffix == "" {
		return false
	}

	host := origin
	if _, rest, found := strings.Cut(origin, "://"); found {
		host = rest
	}
	host, _, _ = strings.Cut(host, ":")

	return host == c.OriginSuffix || strings.HasSuffix(host, "."+c.OriginSuffix)
}

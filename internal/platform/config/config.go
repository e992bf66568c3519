// Copyright (c) 2026 Lyrica. All rights reserved.

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
  - DI-Friendly: Passed to core components (DB, Redis, services) via constructors.
  - Zero Hidden State: No global variables are used to store config.

This ensures the application is Twelve-Factor compliant by storing config in the env.
*/
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// # Configuration Schema

// Config holds all runtime configuration for the Lyrica API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value Store (Redis) backing the session store
	RedisURL string `env:"REDIS_URL,required"`

	// SessionSecret keys the HMAC under which session tokens are stored.
	SessionSecret string `env:"SESSION_SECRET,required"`

	// SessionLifetime is a session's rolling lifetime. Each valid use slides
	// expiry forward by this duration.
	SessionLifetime time.Duration `env:"SESSION_LIFETIME" envDefault:"720h"`

	// SessionMaxLifetime is the absolute ceiling measured from session
	// creation. Sliding renewal never extends expiry past it.
	SessionMaxLifetime time.Duration `env:"SESSION_MAX_LIFETIME" envDefault:"2160h"`

	// SessionCookieName is the cookie carrying the opaque session token.
	SessionCookieName string `env:"SESSION_COOKIE_NAME" envDefault:"sid"`

	// Credential policy
	BcryptCost        int `env:"BCRYPT_COST"         envDefault:"10"`
	PasswordMinLength int `env:"PASSWORD_MIN_LENGTH" envDefault:"8"`

	// Cross-Origin Resource Sharing: comma-separated origins allowed to send
	// credentialed requests.
	AllowedOrigins string `env:"ALLOWED_ORIGINS" envDefault:"http://localhost:3000"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if cfg.SessionMaxLifetime < cfg.SessionLifetime {
		return nil, fmt.Errorf("config: SESSION_MAX_LIFETIME must be >= SESSION_LIFETIME")
	}

	return cfg, nil
}

// Origins returns the parsed allow-list for credentialed cross-origin requests.
func (c *Config) Origins() []string {
	parts := strings.Split(c.AllowedOrigins, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Package config provides application configuration management.
// Configuration is loaded from environment variables following 12-factor principles.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds all application configuration.
// All fields are populated from environment variables.
type Config struct {
	// Application settings
	AppEnv   string `env:"APP_ENV" envDefault:"development"`
	AppPort  int    `env:"APP_PORT" envDefault:"8080"`
	SiteName string `env:"SITE_NAME" envDefault:"Unbounded"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Server timeouts
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"15s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`

	// CORS configuration
	// Comma-separated list of allowed origins (e.g., "https://example.com,https://www.example.com")
	FrontendOrigins string `env:"FRONTEND_ORIGINS" envDefault:""`

	// Base URL the form page posts to. Empty means same origin (/api/waitlist).
	PublicAPIURL string `env:"PUBLIC_API_URL" envDefault:""`

	// Request body size limit in bytes for the signup endpoint (default 64KB)
	MaxRequestBodySize int64 `env:"MAX_REQUEST_BODY_SIZE" envDefault:"65536"`

	// Signup log. Empty FallbackDir resolves to $TMPDIR/waitlist-data.
	DataDir     string `env:"WAITLIST_DATA_DIR" envDefault:"./data"`
	FallbackDir string `env:"WAITLIST_FALLBACK_DIR" envDefault:""`
	Filename    string `env:"WAITLIST_FILENAME" envDefault:"waitlist.jsonl"`

	// Notification provider (Resend). Notifications are skipped unless all
	// three of API key, from and notify addresses are set.
	ResendAPIKey   string `env:"RESEND_API_KEY" envDefault:""`
	ResendEndpoint string `env:"RESEND_ENDPOINT" envDefault:"https://api.resend.com/emails"`
	FromEmail      string `env:"WAITLIST_FROM_EMAIL" envDefault:""`
	NotifyEmail    string `env:"WAITLIST_NOTIFY_EMAIL" envDefault:""`

	// Optional Postgres mirror of the signup log
	DatabaseURL   string `env:"DATABASE_URL" envDefault:""`
	DatabaseTable string `env:"DATABASE_TABLE" envDefault:"waitlist_signups"`
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// GetFrontendOrigins parses the comma-separated origins string into a slice.
func (c *Config) GetFrontendOrigins() []string {
	if c.FrontendOrigins == "" {
		return nil
	}

	origins := strings.Split(c.FrontendOrigins, ",")
	result := make([]string, 0, len(origins))

	for _, origin := range origins {
		trimmed := strings.TrimSpace(origin)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}

// APIBase returns PublicAPIURL without a trailing slash.
func (c *Config) APIBase() string {
	return strings.TrimRight(strings.TrimSpace(c.PublicAPIURL), "/")
}

// NotifierConfigured reports whether all provider credentials are present.
func (c *Config) NotifierConfigured() bool {
	return c.ResendAPIKey != "" && c.FromEmail != "" && c.NotifyEmail != ""
}

// MirrorEnabled reports whether signups are mirrored to Postgres.
func (c *Config) MirrorEnabled() bool {
	return c.DatabaseURL != ""
}

// Load parses environment variables and returns a Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

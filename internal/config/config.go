// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// knownWeakSecrets contains default/example secrets that must be rejected in production.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
}

// Config holds the application configuration loaded from environment variables.
type Config struct {
	// Remote content backend
	APIBaseURL   string `env:"FOLIO_API_BASE_URL" envDefault:"http://164.52.202.121:4545/api/"`
	ImageBaseURL string `env:"FOLIO_IMAGE_BASE_URL" envDefault:"http://164.52.202.121:4545"`
	APITimeout   int    `env:"FOLIO_API_TIMEOUT" envDefault:"0"` // Seconds; 0 waits for the backend indefinitely

	DBPath        string `env:"FOLIO_DB_PATH" envDefault:"./data/folio.db"`
	SessionSecret string `env:"FOLIO_SESSION_SECRET,required"`
	ServerHost    string `env:"FOLIO_SERVER_HOST" envDefault:"localhost"`
	ServerPort    int    `env:"FOLIO_SERVER_PORT" envDefault:"8080"`
	Env           string `env:"FOLIO_ENV" envDefault:"development"`
	LogLevel      string `env:"FOLIO_LOG_LEVEL" envDefault:"info"`
	MaxUploadMB   int    `env:"FOLIO_MAX_UPLOAD_MB" envDefault:"32"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// BackendTimeout returns the per-request backend timeout; zero means none.
func (c Config) BackendTimeout() time.Duration {
	return time.Duration(c.APITimeout) * time.Second
}

// MaxUploadBytes returns the multipart size limit for form posts.
func (c Config) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) << 20
}

// MinSessionSecretLength is the minimum required length for the session secret.
// It doubles as the CSRF authentication key, which needs 32 bytes.
const MinSessionSecretLength = 32

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if len(cfg.SessionSecret) < MinSessionSecretLength {
		return nil, fmt.Errorf("FOLIO_SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSessionSecretLength, len(cfg.SessionSecret))
	}

	for _, weak := range knownWeakSecrets {
		if cfg.SessionSecret == weak {
			return nil, fmt.Errorf("FOLIO_SESSION_SECRET is a known default value and must not be used; " +
				"generate a secure secret with: openssl rand -base64 32")
		}
	}

	if !hasMinimumEntropy(cfg.SessionSecret) {
		slog.Warn("FOLIO_SESSION_SECRET has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
	}

	if err := validateBaseURL("FOLIO_API_BASE_URL", cfg.APIBaseURL); err != nil {
		return nil, err
	}
	if err := validateBaseURL("FOLIO_IMAGE_BASE_URL", cfg.ImageBaseURL); err != nil {
		return nil, err
	}
	if cfg.APITimeout < 0 {
		return nil, fmt.Errorf("FOLIO_API_TIMEOUT must not be negative, got %d", cfg.APITimeout)
	}
	if cfg.MaxUploadMB <= 0 {
		return nil, fmt.Errorf("FOLIO_MAX_UPLOAD_MB must be positive, got %d", cfg.MaxUploadMB)
	}

	cfg.ImageBaseURL = strings.TrimRight(cfg.ImageBaseURL, "/")

	return cfg, nil
}

func validateBaseURL(name, raw string) error {
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%s must be an absolute http(s) URL, got %q", name, raw)
	}
	return nil
}

// hasMinimumEntropy checks that a secret contains at least 3 character classes
// (lowercase, uppercase, digits, special characters).
func hasMinimumEntropy(s string) bool {
	charTypes := 0
	if strings.ContainsAny(s, "abcdefghijklmnopqrstuvwxyz") {
		charTypes++
	}
	if strings.ContainsAny(s, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		charTypes++
	}
	if strings.ContainsAny(s, "0123456789") {
		charTypes++
	}
	if strings.ContainsAny(s, "!@#$%^&*()-_=+[]{}|;:,.<>?/~`'\"\\") {
		charTypes++
	}
	return charTypes >= 3
}

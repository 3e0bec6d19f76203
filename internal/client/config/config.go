// Package config resolves runtime settings for the Odyssey CLI.
//
// Sources are applied in order, later ones winning:
//  1. built-in defaults
//  2. a JSON config file, if a path is given
//  3. environment variables (a .env file is honoured via godotenv)
package config

import (
	"os"
	"path/filepath"
	"time"
)

// Config holds runtime settings for the Odyssey CLI.
type Config struct {
	// APIBaseURL is the root of the journal backend REST API.
	APIBaseURL string
	// RequestTimeout bounds every remote call.
	RequestTimeout time.Duration
	// CachePath is the SQLite file backing the offline cache.
	CachePath string
	// GeocoderBaseURL overrides the Geoapify endpoint (tests, proxies).
	GeocoderBaseURL string
	// GeocoderAPIKey enables location autocomplete and resolution.
	GeocoderAPIKey string
	// LogLevel is one of debug, info, warn, error.
	LogLevel string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:9090/api"
	c.RequestTimeout = 10 * time.Second
	c.CachePath = defaultCachePath()
	c.GeocoderBaseURL = ""
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from the JSON file at jsonPath (if non-empty) and the environment.
func LoadConfig(jsonPath string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, jsonPath); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaultCachePath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "odyssey-cache.db"
	}
	return filepath.Join(dir, "odyssey", "cache.db")
}

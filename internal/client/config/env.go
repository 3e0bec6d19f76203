package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays cfg with ODYSSEY_* environment variables. A .env
// file in the working directory is loaded first, without overriding
// variables already set in the process environment.
func parseEnv(cfg *Config) error {
	_ = godotenv.Load()

	if v := os.Getenv("ODYSSEY_API_URL"); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv("ODYSSEY_REQUEST_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config: ODYSSEY_REQUEST_TIMEOUT: %w", err)
		}
		cfg.RequestTimeout = d
	}
	if v := os.Getenv("ODYSSEY_CACHE_PATH"); v != "" {
		cfg.CachePath = v
	}
	if v := os.Getenv("ODYSSEY_GEOCODER_URL"); v != "" {
		cfg.GeocoderBaseURL = v
	}
	if v := os.Getenv("ODYSSEY_GEOAPIFY_KEY"); v != "" {
		cfg.GeocoderAPIKey = v
	}
	if v := os.Getenv("ODYSSEY_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	return nil
}

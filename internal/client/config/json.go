package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Duration is a time.Duration that unmarshals from either a string like
// "10s" or an integer number of nanoseconds.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case float64:
		d.Duration = time.Duration(value)
		return nil
	case string:
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", value, err)
		}
		d.Duration = parsed
		return nil
	default:
		return fmt.Errorf("invalid duration value %v", v)
	}
}

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Absent
// fields leave the corresponding Config value untouched.
type JsonConfig struct {
	APIBaseURL      string   `json:"api_base_url"`
	RequestTimeout  Duration `json:"request_timeout"`
	CachePath       string   `json:"cache_path"`
	GeocoderBaseURL string   `json:"geocoder_base_url"`
	GeocoderAPIKey  string   `json:"geocoder_api_key"`
	LogLevel        string   `json:"log_level"`
}

// parseJson overlays cfg with values from the JSON file at path. An
// empty path is a no-op; a missing or malformed file is an error.
func parseJson(cfg *Config, path string) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.CachePath != "" {
		cfg.CachePath = jc.CachePath
	}
	if jc.GeocoderBaseURL != "" {
		cfg.GeocoderBaseURL = jc.GeocoderBaseURL
	}
	if jc.GeocoderAPIKey != "" {
		cfg.GeocoderAPIKey = jc.GeocoderAPIKey
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
	return nil
}

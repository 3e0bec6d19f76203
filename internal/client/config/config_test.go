package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9090/api", cfg.APIBaseURL)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.NotEmpty(t, cfg.CachePath)
}

func TestLoadConfig_JSONOverlay(t *testing.T) {
	path := writeTempJSON(t, map[string]any{
		"api_base_url":     "https://api.example.com/api",
		"request_timeout":  "30s",
		"geocoder_api_key": "key-from-json",
	})

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.com/api", cfg.APIBaseURL)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "key-from-json", cfg.GeocoderAPIKey)
	// untouched fields keep defaults
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadConfig_EnvWinsOverJSON(t *testing.T) {
	path := writeTempJSON(t, map[string]any{
		"api_base_url": "https://json.example.com/api",
		"log_level":    "warn",
	})
	t.Setenv("ODYSSEY_API_URL", "https://env.example.com/api")
	t.Setenv("ODYSSEY_REQUEST_TIMEOUT", "5s")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "https://env.example.com/api", cfg.APIBaseURL)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "warn", cfg.LogLevel, "json value survives when env is silent")
}

func TestLoadConfig_MissingJSONFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
}

func TestLoadConfig_BadEnvDuration(t *testing.T) {
	t.Setenv("ODYSSEY_REQUEST_TIMEOUT", "not-a-duration")
	_, err := LoadConfig("")
	require.Error(t, err)
}

func TestDuration_UnmarshalForms(t *testing.T) {
	var d Duration
	require.NoError(t, json.Unmarshal([]byte(`"3s"`), &d))
	assert.Equal(t, 3*time.Second, d.Duration)

	require.NoError(t, json.Unmarshal([]byte(`1000000000`), &d))
	assert.Equal(t, time.Second, d.Duration)

	require.Error(t, json.Unmarshal([]byte(`"soon"`), &d))
	require.Error(t, json.Unmarshal([]byte(`true`), &d))
}

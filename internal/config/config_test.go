package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "0.0.0.0", cfg.HTTP.Host)
	assert.Equal(t, 8000, cfg.HTTP.Port)
	assert.Equal(t, "./models", cfg.Models.Dir)
	assert.Equal(t, 3, cfg.Models.Workers)
	assert.InDelta(t, 0.85, cfg.Models.DyslexiaHighConfidence, 1e-9)
	assert.InDelta(t, 0.80, cfg.Models.ADHDHighConfidence, 1e-9)
	assert.InDelta(t, 0.80, cfg.Models.AutismHighConfidence, 1e-9)
	assert.False(t, cfg.Store.Enabled)
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero port", func(c *Config) { c.HTTP.Port = 0 }},
		{"port too high", func(c *Config) { c.HTTP.Port = 70000 }},
		{"empty host", func(c *Config) { c.HTTP.Host = "" }},
		{"negative read timeout", func(c *Config) { c.HTTP.ReadTimeout = -time.Second }},
		{"zero ws buffer", func(c *Config) { c.WebSocket.BufferSize = 0 }},
		{"empty models dir", func(c *Config) { c.Models.Dir = "" }},
		{"zero workers", func(c *Config) { c.Models.Workers = 0 }},
		{"cutoff above one", func(c *Config) { c.Models.DyslexiaHighConfidence = 1.5 }},
		{"cutoff zero", func(c *Config) { c.Models.AutismHighConfidence = 0 }},
		{"nil http", func(c *Config) { c.HTTP = nil }},
		{"nil websocket", func(c *Config) { c.WebSocket = nil }},
		{"nil models", func(c *Config) { c.Models = nil }},
		{"nil store", func(c *Config) { c.Store = nil }},
		{"enabled store without path", func(c *Config) {
			c.Store.Enabled = true
			c.Store.Path = ""
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoadFromEnvOverrides(t *testing.T) {
	t.Setenv("SEELIKEME_HTTP_PORT", "9100")
	t.Setenv("SEELIKEME_HTTP_HOST", "127.0.0.1")
	t.Setenv("SEELIKEME_MODELS_DIR", "/opt/models")
	t.Setenv("SEELIKEME_MODEL_WORKERS", "5")
	t.Setenv("SEELIKEME_STORE_ENABLED", "true")
	t.Setenv("SEELIKEME_STORE_PATH", "/tmp/results.db")
	t.Setenv("SEELIKEME_WEBSOCKET_WRITE_TIMEOUT", "10s")

	cfg := LoadFromEnv()

	assert.Equal(t, 9100, cfg.HTTP.Port)
	assert.Equal(t, "127.0.0.1", cfg.HTTP.Host)
	assert.Equal(t, "/opt/models", cfg.Models.Dir)
	assert.Equal(t, 5, cfg.Models.Workers)
	assert.True(t, cfg.Store.Enabled)
	assert.Equal(t, "/tmp/results.db", cfg.Store.Path)
	assert.Equal(t, 10*time.Second, cfg.WebSocket.WriteTimeout)
}

func TestLoadFromEnvIgnoresMalformedValues(t *testing.T) {
	t.Setenv("SEELIKEME_HTTP_PORT", "not-a-number")
	t.Setenv("SEELIKEME_MODEL_WORKERS", "many")

	cfg := LoadFromEnv()

	assert.Equal(t, 8000, cfg.HTTP.Port)
	assert.Equal(t, 3, cfg.Models.Workers)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{
		"http": {"host": "localhost", "port": 9200, "read_timeout": "45s"},
		"websocket": {"buffer_size": 250},
		"models": {"dir": "/var/models", "adhd_high_confidence": 0.75},
		"store": {"enabled": true, "path": "/var/results.db"}
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.HTTP.Host)
	assert.Equal(t, 9200, cfg.HTTP.Port)
	assert.Equal(t, 45*time.Second, cfg.HTTP.ReadTimeout)
	// Unspecified fields keep their defaults
	assert.Equal(t, 30*time.Second, cfg.HTTP.WriteTimeout)
	assert.Equal(t, 250, cfg.WebSocket.BufferSize)
	assert.Equal(t, "/var/models", cfg.Models.Dir)
	assert.InDelta(t, 0.75, cfg.Models.ADHDHighConfidence, 1e-9)
	assert.InDelta(t, 0.85, cfg.Models.DyslexiaHighConfidence, 1e-9)
	assert.True(t, cfg.Store.Enabled)
	assert.Equal(t, "/var/results.db", cfg.Store.Path)
}

func TestLoadFromFileMissing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestLoadFromFileInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0o644))

	_, err := LoadFromFile(path)
	assert.Error(t, err)
}

func TestLoadFromFileRejectsInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"http": {"port": 70000}}`), 0o644))

	_, err := LoadFromFile(path)
	assert.Error(t, err)
}

func TestLoadConfigWithPrecedence(t *testing.T) {
	t.Setenv("SEELIKEME_HTTP_PORT", "9100")

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"http": {"port": 9300}}`), 0o644))

	// File wins over environment
	cfg := LoadConfigWithPrecedence(path)
	assert.Equal(t, 9300, cfg.HTTP.Port)

	// Unreadable file falls back to environment
	cfg = LoadConfigWithPrecedence(filepath.Join(t.TempDir(), "absent.json"))
	assert.Equal(t, 9100, cfg.HTTP.Port)

	// No file at all: environment still applies
	cfg = LoadConfigWithPrecedence("")
	assert.Equal(t, 9100, cfg.HTTP.Port)
}

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"
)

// ARCHITECTURAL DISCOVERY: Configuration layer serves as system-wide settings
// coordinator - threshold constants here are part of the observable contract
// with the browser extension
type Config struct {
	HTTP      *HTTPConfig      `json:"http"`
	WebSocket *WebSocketConfig `json:"websocket"`
	Models    *ModelsConfig    `json:"models"`
	Store     *StoreConfig     `json:"store"`
}

// HTTPConfig balances performance and reliability for the API surface
type HTTPConfig struct {
	Host         string        `json:"host"`
	Port         int           `json:"port"`
	ReadTimeout  time.Duration `json:"read_timeout"`
	WriteTimeout time.Duration `json:"write_timeout"`
}

// WebSocketConfig tunes the live-channel transport
type WebSocketConfig struct {
	WriteTimeout time.Duration `json:"write_timeout"`
	BufferSize   int           `json:"buffer_size"`
}

// ModelsConfig locates the classifier artifacts and carries the per-domain
// high-confidence cutoffs consumed by the simulation synthesis path
type ModelsConfig struct {
	Dir                    string  `json:"dir"`
	Workers                int     `json:"workers"`
	DyslexiaHighConfidence float64 `json:"dyslexia_high_confidence"`
	ADHDHighConfidence     float64 `json:"adhd_high_confidence"`
	AutismHighConfidence   float64 `json:"autism_high_confidence"`
}

// StoreConfig selects between the no-op and SQLite-backed stores
type StoreConfig struct {
	Enabled bool   `json:"enabled"`
	Path    string `json:"path"`
}

// DefaultConfig returns production-ready defaults.
// FUNCTIONAL DISCOVERY: Persistence defaults to disabled - the backend is
// fully functional without a store, which only serves request_update replays
func DefaultConfig() *Config {
	return &Config{
		HTTP: &HTTPConfig{
			Host:         "0.0.0.0",
			Port:         8000,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		WebSocket: &WebSocketConfig{
			WriteTimeout: 5 * time.Second,
			BufferSize:   100,
		},
		Models: &ModelsConfig{
			Dir:                    "./models",
			Workers:                3,
			DyslexiaHighConfidence: 0.85,
			ADHDHighConfidence:     0.80,
			AutismHighConfidence:   0.80,
		},
		Store: &StoreConfig{
			Enabled: false,
			Path:    "./seelikeme.db",
		},
	}
}

// Validate prevents invalid system configurations from reaching runtime
func (c *Config) Validate() error {
	if c.HTTP == nil {
		return fmt.Errorf("HTTP configuration is required")
	}

	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("HTTP port must be between 1 and 65535")
	}

	if c.HTTP.Host == "" {
		return fmt.Errorf("HTTP host cannot be empty")
	}

	if c.HTTP.ReadTimeout <= 0 {
		return fmt.Errorf("HTTP read timeout must be positive")
	}

	if c.HTTP.WriteTimeout <= 0 {
		return fmt.Errorf("HTTP write timeout must be positive")
	}

	if c.WebSocket == nil {
		return fmt.Errorf("WebSocket configuration is required")
	}

	if c.WebSocket.WriteTimeout <= 0 {
		return fmt.Errorf("WebSocket write timeout must be positive")
	}

	if c.WebSocket.BufferSize <= 0 {
		return fmt.Errorf("WebSocket buffer size must be positive")
	}

	if c.Models == nil {
		return fmt.Errorf("models configuration is required")
	}

	if c.Models.Dir == "" {
		return fmt.Errorf("models directory cannot be empty")
	}

	if c.Models.Workers <= 0 {
		return fmt.Errorf("model worker count must be positive")
	}

	for name, cutoff := range map[string]float64{
		"dyslexia": c.Models.DyslexiaHighConfidence,
		"adhd":     c.Models.ADHDHighConfidence,
		"autism":   c.Models.AutismHighConfidence,
	} {
		if cutoff <= 0 || cutoff > 1 {
			return fmt.Errorf("%s high-confidence cutoff must be in (0,1]", name)
		}
	}

	if c.Store == nil {
		return fmt.Errorf("store configuration is required")
	}

	if c.Store.Enabled && c.Store.Path == "" {
		return fmt.Errorf("store path cannot be empty when persistence is enabled")
	}

	return nil
}

// LoadFromEnv applies SEELIKEME_* environment overrides on top of defaults
// FUNCTIONAL DISCOVERY: Environment variables override defaults with fallback,
// supporting containerized deployments without config files
func LoadFromEnv() *Config {
	config := DefaultConfig()

	if port := os.Getenv("SEELIKEME_HTTP_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.HTTP.Port = p
		}
	}

	if host := os.Getenv("SEELIKEME_HTTP_HOST"); host != "" {
		config.HTTP.Host = host
	}

	if readTimeout := os.Getenv("SEELIKEME_HTTP_READ_TIMEOUT"); readTimeout != "" {
		if timeout, err := time.ParseDuration(readTimeout); err == nil {
			config.HTTP.ReadTimeout = timeout
		}
	}

	if writeTimeout := os.Getenv("SEELIKEME_HTTP_WRITE_TIMEOUT"); writeTimeout != "" {
		if timeout, err := time.ParseDuration(writeTimeout); err == nil {
			config.HTTP.WriteTimeout = timeout
		}
	}

	if wsWriteTimeout := os.Getenv("SEELIKEME_WEBSOCKET_WRITE_TIMEOUT"); wsWriteTimeout != "" {
		if timeout, err := time.ParseDuration(wsWriteTimeout); err == nil {
			config.WebSocket.WriteTimeout = timeout
		}
	}

	if bufferSize := os.Getenv("SEELIKEME_WEBSOCKET_BUFFER_SIZE"); bufferSize != "" {
		if size, err := strconv.Atoi(bufferSize); err == nil {
			config.WebSocket.BufferSize = size
		}
	}

	if dir := os.Getenv("SEELIKEME_MODELS_DIR"); dir != "" {
		config.Models.Dir = dir
	}

	if workers := os.Getenv("SEELIKEME_MODEL_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil {
			config.Models.Workers = w
		}
	}

	if enabled := os.Getenv("SEELIKEME_STORE_ENABLED"); enabled != "" {
		if b, err := strconv.ParseBool(enabled); err == nil {
			config.Store.Enabled = b
		}
	}

	if path := os.Getenv("SEELIKEME_STORE_PATH"); path != "" {
		config.Store.Path = path
	}

	return config
}

// ConfigFile represents the JSON structure for file-based configuration
// FUNCTIONAL DISCOVERY: Separate struct for JSON parsing to handle duration strings
type ConfigFile struct {
	HTTP      *HTTPConfigFile      `json:"http"`
	WebSocket *WebSocketConfigFile `json:"websocket"`
	Models    *ModelsConfig        `json:"models"`
	Store     *StoreConfig         `json:"store"`
}

type HTTPConfigFile struct {
	Host         string `json:"host"`
	Port         int    `json:"port"`
	ReadTimeout  string `json:"read_timeout"`
	WriteTimeout string `json:"write_timeout"`
}

type WebSocketConfigFile struct {
	WriteTimeout string `json:"write_timeout"`
	BufferSize   int    `json:"buffer_size"`
}

// LoadFromFile reads a JSON configuration file on top of defaults
func LoadFromFile(filepath string) (*Config, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", filepath, err)
	}

	var configFile ConfigFile
	if err := json.Unmarshal(data, &configFile); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", filepath, err)
	}

	config := DefaultConfig()

	if configFile.HTTP != nil {
		if configFile.HTTP.Port > 0 {
			config.HTTP.Port = configFile.HTTP.Port
		}
		if configFile.HTTP.Host != "" {
			config.HTTP.Host = configFile.HTTP.Host
		}
		if configFile.HTTP.ReadTimeout != "" {
			if timeout, err := time.ParseDuration(configFile.HTTP.ReadTimeout); err == nil {
				config.HTTP.ReadTimeout = timeout
			}
		}
		if configFile.HTTP.WriteTimeout != "" {
			if timeout, err := time.ParseDuration(configFile.HTTP.WriteTimeout); err == nil {
				config.HTTP.WriteTimeout = timeout
			}
		}
	}

	if configFile.WebSocket != nil {
		if configFile.WebSocket.BufferSize > 0 {
			config.WebSocket.BufferSize = configFile.WebSocket.BufferSize
		}
		if configFile.WebSocket.WriteTimeout != "" {
			if timeout, err := time.ParseDuration(configFile.WebSocket.WriteTimeout); err == nil {
				config.WebSocket.WriteTimeout = timeout
			}
		}
	}

	if configFile.Models != nil {
		if configFile.Models.Dir != "" {
			config.Models.Dir = configFile.Models.Dir
		}
		if configFile.Models.Workers > 0 {
			config.Models.Workers = configFile.Models.Workers
		}
		if configFile.Models.DyslexiaHighConfidence > 0 {
			config.Models.DyslexiaHighConfidence = configFile.Models.DyslexiaHighConfidence
		}
		if configFile.Models.ADHDHighConfidence > 0 {
			config.Models.ADHDHighConfidence = configFile.Models.ADHDHighConfidence
		}
		if configFile.Models.AutismHighConfidence > 0 {
			config.Models.AutismHighConfidence = configFile.Models.AutismHighConfidence
		}
	}

	if configFile.Store != nil {
		config.Store.Enabled = configFile.Store.Enabled
		if configFile.Store.Path != "" {
			config.Store.Path = configFile.Store.Path
		}
	}

	// ARCHITECTURAL DISCOVERY: Validate configuration after loading to catch errors early
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration in %s: %w", filepath, err)
	}

	return config, nil
}

// LoadConfigWithPrecedence applies file > environment > defaults
func LoadConfigWithPrecedence(filepath string) *Config {
	config := LoadFromEnv()

	if filepath != "" {
		if fileConfig, err := LoadFromFile(filepath); err == nil {
			config = fileConfig
		}
		// Silently ignore file errors - environment/defaults still work
	}

	return config
}

// Package config provides configuration loading and validation for the career portal.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Config represents the service configuration. It can be loaded from a JSON file and from
// the environment; every field is optional and missing values fall back to Defaults.
type Config struct {
	// Connections
	DatabaseURL  string `json:"database_url,omitempty"`  // PostgreSQL connection URL
	RedisURL     string `json:"redis_url,omitempty"`     // Redis URL for the label cache
	RabbitMQURL  string `json:"rabbitmq_url,omitempty"`  // AMQP URL for the refresh queue
	GeminiAPIKey string `json:"gemini_api_key,omitempty"` // Gemini API key for career prediction

	// Server
	Port           int    `json:"port,omitempty"`
	LogLevel       string `json:"log_level,omitempty"`
	MaxUploadBytes int64  `json:"max_upload_bytes,omitempty"` // Resume upload limit

	// Recommendations
	TopK               int      `json:"top_k,omitempty"`               // Recommendations kept per student
	RefreshConcurrency int      `json:"refresh_concurrency,omitempty"` // Parallel refreshes in RefreshAll
	CareerLabels       []string `json:"career_labels,omitempty"`       // Extra labels offered to the predictor
	LabelCacheTTL      Duration `json:"label_cache_ttl,omitempty"`

	// Job import
	FetchTimeout Duration `json:"fetch_timeout,omitempty"`
}

// Duration is a time.Duration that reads "30s"-style strings from JSON.
type Duration time.Duration

// UnmarshalJSON accepts a Go duration string.
func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("duration must be a string: %w", err)
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(v)
	return nil
}

// MarshalJSON writes the duration as a Go duration string.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Defaults returns the built-in configuration values.
func Defaults() Config {
	return Config{
		Port:               8080,
		LogLevel:           "info",
		MaxUploadBytes:     5 << 20,
		TopK:               10,
		RefreshConcurrency: 4,
		LabelCacheTTL:      Duration(24 * time.Hour),
		FetchTimeout:       Duration(30 * time.Second),
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv reads the configuration from environment variables. Unset variables stay zero.
func FromEnv() *Config {
	return &Config{
		DatabaseURL:        getEnvString("DATABASE_URL", ""),
		RedisURL:           getEnvString("REDIS_URL", ""),
		RabbitMQURL:        getEnvString("RABBITMQ_URL", ""),
		GeminiAPIKey:       getEnvString("GEMINI_API_KEY", ""),
		Port:               getEnvInt("PORT", 0),
		LogLevel:           getEnvString("LOG_LEVEL", ""),
		MaxUploadBytes:     int64(getEnvInt("MAX_UPLOAD_BYTES", 0)),
		TopK:               getEnvInt("RECOMMEND_TOP_K", 0),
		RefreshConcurrency: getEnvInt("REFRESH_CONCURRENCY", 0),
		CareerLabels:       getEnvList("CAREER_LABELS"),
		LabelCacheTTL:      Duration(getEnvDuration("LABEL_CACHE_TTL", 0)),
		FetchTimeout:       Duration(getEnvDuration("FETCH_TIMEOUT", 0)),
	}
}

// Load resolves the effective configuration: environment first, then the optional
// config file, then Defaults.
func Load(path string) (*Config, error) {
	cfg := *FromEnv()
	if path != "" {
		fileCfg, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = cfg.MergeWithDefaults(*fileCfg)
	}
	cfg = cfg.MergeWithDefaults(Defaults())

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Connection strings are not required here; each command checks what it needs.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.TopK < 0 {
		return fmt.Errorf("config error: 'top_k' must be non-negative")
	}
	if c.RefreshConcurrency < 0 {
		return fmt.Errorf("config error: 'refresh_concurrency' must be non-negative")
	}
	if c.MaxUploadBytes < 0 {
		return fmt.Errorf("config error: 'max_upload_bytes' must be non-negative")
	}
	if c.LabelCacheTTL < 0 || c.FetchTimeout < 0 {
		return fmt.Errorf("config error: durations must be non-negative")
	}

	switch strings.ToLower(c.LogLevel) {
	case "", "trace", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("config error: unknown 'log_level' %q", c.LogLevel)
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.RedisURL == "" {
		result.RedisURL = defaults.RedisURL
	}
	if result.RabbitMQURL == "" {
		result.RabbitMQURL = defaults.RabbitMQURL
	}
	if result.GeminiAPIKey == "" {
		result.GeminiAPIKey = defaults.GeminiAPIKey
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}

	// Numeric fields: use default if zero
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.MaxUploadBytes == 0 {
		result.MaxUploadBytes = defaults.MaxUploadBytes
	}
	if result.TopK == 0 {
		result.TopK = defaults.TopK
	}
	if result.RefreshConcurrency == 0 {
		result.RefreshConcurrency = defaults.RefreshConcurrency
	}
	if result.LabelCacheTTL == 0 {
		result.LabelCacheTTL = defaults.LabelCacheTTL
	}
	if result.FetchTimeout == 0 {
		result.FetchTimeout = defaults.FetchTimeout
	}

	if len(result.CareerLabels) == 0 {
		result.CareerLabels = defaults.CareerLabels
	}

	return result
}

package core

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Configuration errors
var (
	ErrInvalidConfiguration = errors.New("invalid configuration")
	ErrMissingConfiguration = errors.New("missing required configuration")
)

// Config holds all configuration options for the storefront client.
// It supports three-layer configuration priority:
//  1. Default values (lowest priority)
//  2. Environment variables (medium priority)
//  3. Functional options (highest priority)
//
// Example usage:
//
//	cfg, err := NewConfig(
//	    WithBaseURL("https://shop.example.com"),
//	    WithLogLevel("debug"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
type Config struct {
	// Name identifies this client in logs
	Name string

	// BaseURL is the backend service root
	BaseURL string

	// ProbeTimeout bounds the backend availability probe
	ProbeTimeout time.Duration

	// RequestTimeout bounds every live request
	RequestTimeout time.Duration

	// MockLatency is the simulated delay applied uniformly to mock responses
	// so callers cannot distinguish mock from real timing characteristics
	MockLatency time.Duration

	// Logging configuration
	Logging LoggingConfig

	// Redis configuration for the persisted credential store (optional)
	Redis RedisConfig

	// Telemetry configuration
	Telemetry TelemetryConfig
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// RedisConfig contains the optional Redis-backed credential store settings.
// When URL is empty the in-memory credential store is used instead.
type RedisConfig struct {
	URL       string
	KeyPrefix string
	TokenTTL  time.Duration
}

// TelemetryConfig contains OpenTelemetry metrics settings
type TelemetryConfig struct {
	Enabled bool
}

// Option is a functional configuration option
type Option func(*Config) error

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Name:           "shopfront",
		BaseURL:        "http://localhost:9091",
		ProbeTimeout:   3 * time.Second,
		RequestTimeout: 30 * time.Second,
		MockLatency:    500 * time.Millisecond,
		Logging: LoggingConfig{
			Level: "INFO",
		},
		Redis: RedisConfig{
			KeyPrefix: "shopfront",
			TokenTTL:  48 * time.Hour,
		},
		Telemetry: TelemetryConfig{
			Enabled: true,
		},
	}
}

// LoadFromEnv applies environment variable overrides
func (c *Config) LoadFromEnv() error {
	if v := os.Getenv("SHOPFRONT_NAME"); v != "" {
		c.Name = v
	}
	if v := os.Getenv("SHOPFRONT_BASE_URL"); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv("SHOPFRONT_PROBE_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.ProbeTimeout = d
		}
	}
	if v := os.Getenv("SHOPFRONT_REQUEST_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.RequestTimeout = d
		}
	}
	if v := os.Getenv("SHOPFRONT_MOCK_LATENCY"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.MockLatency = d
		}
	}
	if v := os.Getenv("SHOPFRONT_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("SHOPFRONT_LOG_FORMAT"); v != "" {
		c.Logging.Format = v
	}
	if v := os.Getenv("SHOPFRONT_REDIS_URL"); v != "" {
		c.Redis.URL = v
	} else if v := os.Getenv("REDIS_URL"); v != "" {
		c.Redis.URL = v
	}
	if v := os.Getenv("SHOPFRONT_TELEMETRY_ENABLED"); v != "" {
		c.Telemetry.Enabled = parseBool(v)
	}
	return nil
}

// fileConfig is the YAML shape of a config file. Durations are plain strings
// ("2s", "500ms") parsed with time.ParseDuration; zero-value fields leave the
// existing configuration untouched so a partial file only overrides what it
// names.
type fileConfig struct {
	Name           string `yaml:"name"`
	BaseURL        string `yaml:"base_url"`
	ProbeTimeout   string `yaml:"probe_timeout"`
	RequestTimeout string `yaml:"request_timeout"`
	MockLatency    string `yaml:"mock_latency"`
	Logging        struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"logging"`
	Redis struct {
		URL       string `yaml:"url"`
		KeyPrefix string `yaml:"key_prefix"`
		TokenTTL  string `yaml:"token_ttl"`
	} `yaml:"redis"`
	Telemetry struct {
		Enabled *bool `yaml:"enabled"`
	} `yaml:"telemetry"`
}

// LoadFromFile merges configuration from a YAML file
func (c *Config) LoadFromFile(path string) error {
	// Clean the path to prevent directory traversal attacks
	cleanPath := filepath.Clean(path)

	ext := filepath.Ext(cleanPath)
	if ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("unsupported config file extension %s: %w", ext, ErrInvalidConfiguration)
	}

	if !filepath.IsAbs(cleanPath) {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get working directory: %w", err)
		}
		cleanPath = filepath.Join(wd, cleanPath)
	}

	data, err := os.ReadFile(filepath.Clean(cleanPath)) // nosec G304 -- path is validated
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", cleanPath, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("failed to parse config file: %w", ErrInvalidConfiguration)
	}

	if fc.Name != "" {
		c.Name = fc.Name
	}
	if fc.BaseURL != "" {
		c.BaseURL = strings.TrimRight(fc.BaseURL, "/")
	}
	if err := mergeDuration(&c.ProbeTimeout, fc.ProbeTimeout); err != nil {
		return fmt.Errorf("invalid probe_timeout: %w", ErrInvalidConfiguration)
	}
	if err := mergeDuration(&c.RequestTimeout, fc.RequestTimeout); err != nil {
		return fmt.Errorf("invalid request_timeout: %w", ErrInvalidConfiguration)
	}
	if err := mergeDuration(&c.MockLatency, fc.MockLatency); err != nil {
		return fmt.Errorf("invalid mock_latency: %w", ErrInvalidConfiguration)
	}
	if fc.Logging.Level != "" {
		c.Logging.Level = fc.Logging.Level
	}
	if fc.Logging.Format != "" {
		c.Logging.Format = fc.Logging.Format
	}
	if fc.Redis.URL != "" {
		c.Redis.URL = fc.Redis.URL
	}
	if fc.Redis.KeyPrefix != "" {
		c.Redis.KeyPrefix = fc.Redis.KeyPrefix
	}
	if err := mergeDuration(&c.Redis.TokenTTL, fc.Redis.TokenTTL); err != nil {
		return fmt.Errorf("invalid redis token_ttl: %w", ErrInvalidConfiguration)
	}
	if fc.Telemetry.Enabled != nil {
		c.Telemetry.Enabled = *fc.Telemetry.Enabled
	}

	return nil
}

func mergeDuration(dst *time.Duration, value string) error {
	if value == "" {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return err
	}
	*dst = d
	return nil
}

// Validate checks if the configuration is valid and returns an error if not.
// This method is called automatically by NewConfig() but can also be called
// manually after modifying configuration.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base URL is required: %w", ErrMissingConfiguration)
	}
	if u, err := url.Parse(c.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid base URL %q: %w", c.BaseURL, ErrInvalidConfiguration)
	}
	if c.ProbeTimeout <= 0 {
		return fmt.Errorf("probe timeout must be positive: %w", ErrInvalidConfiguration)
	}
	if c.MockLatency < 0 {
		return fmt.Errorf("mock latency must not be negative: %w", ErrInvalidConfiguration)
	}
	return nil
}

// NewConfig creates a configuration with the given options applied on top of
// defaults and environment variables.
func NewConfig(opts ...Option) (*Config, error) {
	cfg := DefaultConfig()

	// Load from environment first
	if err := cfg.LoadFromEnv(); err != nil {
		return nil, fmt.Errorf("failed to load env config: %w", err)
	}

	// Apply functional options (these override env vars)
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// WithName sets the client name used in logs
func WithName(name string) Option {
	return func(c *Config) error {
		if name == "" {
			return fmt.Errorf("name cannot be empty: %w", ErrInvalidConfiguration)
		}
		c.Name = name
		return nil
	}
}

// WithBaseURL sets the backend service root
func WithBaseURL(baseURL string) Option {
	return func(c *Config) error {
		if baseURL == "" {
			return fmt.Errorf("base URL cannot be empty: %w", ErrInvalidConfiguration)
		}
		c.BaseURL = strings.TrimRight(baseURL, "/")
		return nil
	}
}

// WithProbeTimeout bounds the availability probe
func WithProbeTimeout(timeout time.Duration) Option {
	return func(c *Config) error {
		if timeout <= 0 {
			return fmt.Errorf("probe timeout must be positive: %w", ErrInvalidConfiguration)
		}
		c.ProbeTimeout = timeout
		return nil
	}
}

// WithRequestTimeout bounds live requests
func WithRequestTimeout(timeout time.Duration) Option {
	return func(c *Config) error {
		c.RequestTimeout = timeout
		return nil
	}
}

// WithMockLatency sets the simulated delay for mock responses
func WithMockLatency(latency time.Duration) Option {
	return func(c *Config) error {
		if latency < 0 {
			return fmt.Errorf("mock latency must not be negative: %w", ErrInvalidConfiguration)
		}
		c.MockLatency = latency
		return nil
	}
}

// WithLogLevel sets the log level (debug, info, warn, error)
func WithLogLevel(level string) Option {
	return func(c *Config) error {
		c.Logging.Level = level
		return nil
	}
}

// WithLogFormat sets the log format (json or text)
func WithLogFormat(format string) Option {
	return func(c *Config) error {
		if format != "json" && format != "text" {
			return fmt.Errorf("log format must be json or text: %w", ErrInvalidConfiguration)
		}
		c.Logging.Format = format
		return nil
	}
}

// WithRedisURL enables the Redis-backed credential store
func WithRedisURL(redisURL string) Option {
	return func(c *Config) error {
		c.Redis.URL = redisURL
		return nil
	}
}

// WithTelemetry toggles OpenTelemetry metrics emission
func WithTelemetry(enabled bool) Option {
	return func(c *Config) error {
		c.Telemetry.Enabled = enabled
		return nil
	}
}

// WithConfigFile loads configuration from a YAML file before later options apply
func WithConfigFile(path string) Option {
	return func(c *Config) error {
		return c.LoadFromFile(path)
	}
}

func parseBool(v string) bool {
	switch strings.ToLower(v) {
	case "true", "1", "yes", "on":
		return true
	}
	return false
}

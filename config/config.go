package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Black-And-White-Club/tenpin/app/modules/bowling/application/calculators"
	"github.com/Black-And-White-Club/tenpin/app/modules/bowling/application/validators"
	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config struct to hold the configuration settings
type Config struct {
	HTTP          HTTPConfig          `yaml:"http"`
	Scoring       ScoringConfig       `yaml:"scoring"`
	Observability ObservabilityConfig `yaml:"observability"`
	Events        EventsConfig        `yaml:"events"`
}

// HTTPConfig holds the API server configuration.
type HTTPConfig struct {
	Address         string        `yaml:"address" env:"TENPIN_HTTP_ADDRESS"`
	AllowedOrigins  []string      `yaml:"allowed_origins" env:"TENPIN_HTTP_ALLOWED_ORIGINS" envSeparator:","`
	RateLimit       float64       `yaml:"rate_limit" env:"TENPIN_HTTP_RATE_LIMIT"`
	RateBurst       int           `yaml:"rate_burst" env:"TENPIN_HTTP_RATE_BURST"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"TENPIN_HTTP_READ_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"TENPIN_HTTP_SHUTDOWN_TIMEOUT"`
}

// ScoringConfig holds the strategy used when a request names none.
type ScoringConfig struct {
	Validation string `yaml:"validation" env:"TENPIN_SCORING_VALIDATION"`
	Calculator string `yaml:"calculator" env:"TENPIN_SCORING_CALCULATOR"`
}

// ObservabilityConfig holds configuration for observability components
type ObservabilityConfig struct {
	ServiceName    string `yaml:"service_name" env:"TENPIN_SERVICE_NAME"`
	Environment    string `yaml:"environment" env:"TENPIN_ENV"`
	LogLevel       string `yaml:"log_level" env:"TENPIN_LOG_LEVEL"`
	LogFormat      string `yaml:"log_format" env:"TENPIN_LOG_FORMAT"`
	MetricsEnabled bool   `yaml:"metrics_enabled" env:"TENPIN_METRICS_ENABLED"`
	TracingEnabled bool   `yaml:"tracing_enabled" env:"TENPIN_TRACING_ENABLED"`
	OTLPEndpoint   string `yaml:"otlp_endpoint" env:"TENPIN_OTLP_ENDPOINT"`
}

// EventsConfig holds the in-process event bus configuration.
type EventsConfig struct {
	Enabled bool  `yaml:"enabled" env:"TENPIN_EVENTS_ENABLED"`
	Buffer  int64 `yaml:"buffer" env:"TENPIN_EVENTS_BUFFER"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:         ":8080",
			RateLimit:       20,
			RateBurst:       40,
			ReadTimeout:     5 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Scoring: ScoringConfig{
			Validation: validators.NameFull,
			Calculator: calculators.NameClassic,
		},
		Observability: ObservabilityConfig{
			ServiceName:    "tenpin",
			Environment:    "development",
			LogLevel:       "info",
			LogFormat:      "text",
			MetricsEnabled: true,
		},
		Events: EventsConfig{
			Enabled: true,
			Buffer:  64,
		},
	}
}

// LoadConfig loads the configuration from a YAML file on top of the defaults,
// then applies environment overrides. A missing file is not an error.
func LoadConfig(filename string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filename)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects unknown strategy names and unusable server settings.
func (c *Config) Validate() error {
	var errs []error

	switch c.Scoring.Validation {
	case validators.NameFull, validators.NameNone:
	default:
		errs = append(errs, fmt.Errorf("scoring.validation: unknown validation %q", c.Scoring.Validation))
	}
	switch c.Scoring.Calculator {
	case calculators.NameClassic, calculators.NameRules:
	default:
		errs = append(errs, fmt.Errorf("scoring.calculator: unknown calculator %q", c.Scoring.Calculator))
	}

	if c.HTTP.RateLimit <= 0 {
		errs = append(errs, fmt.Errorf("http.rate_limit: must be positive, got %v", c.HTTP.RateLimit))
	}
	if c.HTTP.RateBurst <= 0 {
		errs = append(errs, fmt.Errorf("http.rate_burst: must be positive, got %d", c.HTTP.RateBurst))
	}
	if c.Events.Buffer < 0 {
		errs = append(errs, fmt.Errorf("events.buffer: must not be negative, got %d", c.Events.Buffer))
	}

	switch strings.ToLower(c.Observability.LogFormat) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("observability.log_format: unknown format %q", c.Observability.LogFormat))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

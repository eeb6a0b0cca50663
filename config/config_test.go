package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestLoadConfig_File(t *testing.T) {
	path := writeConfig(t, `
http:
  address: ":9090"
  allowed_origins: ["https://lanes.example"]
  rate_limit: 5
  read_timeout: 2s
scoring:
  validation: none
  calculator: rules
observability:
  log_level: debug
  log_format: json
events:
  enabled: false
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	require.Equal(t, ":9090", cfg.HTTP.Address)
	require.Equal(t, []string{"https://lanes.example"}, cfg.HTTP.AllowedOrigins)
	require.Equal(t, 5.0, cfg.HTTP.RateLimit)
	require.Equal(t, 40, cfg.HTTP.RateBurst, "unset keys keep their default")
	require.Equal(t, 2*time.Second, cfg.HTTP.ReadTimeout)
	require.Equal(t, "none", cfg.Scoring.Validation)
	require.Equal(t, "rules", cfg.Scoring.Calculator)
	require.Equal(t, "debug", cfg.Observability.LogLevel)
	require.Equal(t, "json", cfg.Observability.LogFormat)
	require.False(t, cfg.Events.Enabled)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	path := writeConfig(t, "http:\n  address: \":9090\"\n")
	t.Setenv("TENPIN_HTTP_ADDRESS", ":7070")
	t.Setenv("TENPIN_HTTP_ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("TENPIN_SCORING_CALCULATOR", "rules")
	t.Setenv("TENPIN_METRICS_ENABLED", "false")
	t.Setenv("TENPIN_ENV", "production")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	require.Equal(t, ":7070", cfg.HTTP.Address)
	require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.HTTP.AllowedOrigins)
	require.Equal(t, "rules", cfg.Scoring.Calculator)
	require.False(t, cfg.Observability.MetricsEnabled)
	require.Equal(t, "production", cfg.Observability.Environment)
}

func TestLoadConfig_Errors(t *testing.T) {
	t.Run("malformed yaml", func(t *testing.T) {
		_, err := LoadConfig(writeConfig(t, "http: [unclosed"))
		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to unmarshal config")
	})

	t.Run("bad env value", func(t *testing.T) {
		t.Setenv("TENPIN_HTTP_RATE_BURST", "lots")
		_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
		require.Error(t, err)
		require.Contains(t, err.Error(), "parse env:")
	})

	t.Run("unknown strategy", func(t *testing.T) {
		_, err := LoadConfig(writeConfig(t, "scoring:\n  validation: strict\n"))
		require.Error(t, err)
		require.Contains(t, err.Error(), `unknown validation "strict"`)
	})
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "unknown calculator", mutate: func(c *Config) { c.Scoring.Calculator = "magic" }, wantErr: "scoring.calculator"},
		{name: "zero rate limit", mutate: func(c *Config) { c.HTTP.RateLimit = 0 }, wantErr: "http.rate_limit"},
		{name: "negative burst", mutate: func(c *Config) { c.HTTP.RateBurst = -1 }, wantErr: "http.rate_burst"},
		{name: "negative buffer", mutate: func(c *Config) { c.Events.Buffer = -1 }, wantErr: "events.buffer"},
		{name: "unknown log format", mutate: func(c *Config) { c.Observability.LogFormat = "xml" }, wantErr: "observability.log_format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.wantErr)
		})
	}

	t.Run("reports every problem", func(t *testing.T) {
		cfg := Default()
		cfg.Scoring.Validation = "strict"
		cfg.HTTP.RateLimit = 0
		err := cfg.Validate()
		require.Contains(t, err.Error(), "scoring.validation")
		require.Contains(t, err.Error(), "http.rate_limit")
	})
}

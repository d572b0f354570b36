package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validYAML = `
app:
  name: diamond-edge
  environment: development
  log_level: info
odds_api:
  base_url: https://api.the-odds-api.com
  api_key: ${TEST_ODDS_API_KEY}
  sport_key: baseball_mlb
  regions: us
  markets:
    - h2h
  timeout_seconds: 30
  rate_limit: 2.0
stats:
  base_url: https://stats.example.com
  season: 2023
  cache_ttl_minutes: 360
  timeout_seconds: 60
model:
  test_fraction: 0.2
  cv_folds: 3
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadExpandsEnvironmentVariables(t *testing.T) {
	t.Setenv("TEST_ODDS_API_KEY", "secret-key")

	cfg, err := Load(writeConfig(t, validYAML))
	require.NoError(t, err)

	assert.Equal(t, "secret-key", cfg.OddsAPI.APIKey)
	assert.Equal(t, "baseball_mlb", cfg.OddsAPI.SportKey)
	assert.Equal(t, 2023, cfg.Stats.Season)
	assert.Equal(t, 6*time.Hour, cfg.Stats.CacheTTL())
}

func TestLoadAppliesDefaults(t *testing.T) {
	t.Setenv("TEST_ODDS_API_KEY", "secret-key")

	cfg, err := Load(writeConfig(t, validYAML))
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.OddsAPI.MaxRetries)
	assert.Equal(t, "0 12 * * *", cfg.Schedule.Cron)
	assert.Equal(t, 9090, cfg.Metrics.Port)
	assert.Equal(t, int64(0), cfg.Model.Seed)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestValidateAcceptsCompleteConfig(t *testing.T) {
	t.Setenv("TEST_ODDS_API_KEY", "secret-key")
	cfg, err := Load(writeConfig(t, validYAML))
	require.NoError(t, err)

	assert.NoError(t, Validate(cfg))
}

func TestValidateRejectsBadValues(t *testing.T) {
	t.Setenv("TEST_ODDS_API_KEY", "secret-key")

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad environment", func(c *Config) { c.App.Environment = "prod" }},
		{"bad log level", func(c *Config) { c.App.LogLevel = "verbose" }},
		{"bad market", func(c *Config) { c.OddsAPI.Markets = []string{"totals"} }},
		{"missing api key", func(c *Config) { c.OddsAPI.APIKey = "" }},
		{"test fraction too high", func(c *Config) { c.Model.TestFraction = 1.5 }},
		{"single fold", func(c *Config) { c.Model.CVFolds = 1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(writeConfig(t, validYAML))
			require.NoError(t, err)
			tt.mutate(cfg)
			assert.Error(t, Validate(cfg))
		})
	}
}

func TestValidateCrossFieldPasswords(t *testing.T) {
	t.Setenv("TEST_ODDS_API_KEY", "secret-key")
	cfg, err := Load(writeConfig(t, validYAML))
	require.NoError(t, err)

	cfg.Email.Enabled = true
	cfg.Email.Host = "smtp.example.com"
	cfg.Email.Port = 587
	cfg.Email.Username = "reports"
	cfg.Email.From = "reports@example.com"
	cfg.Email.To = []string{"me@example.com"}

	err = Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SMTP password")

	cfg.Email.Password = "hunter2"
	assert.NoError(t, Validate(cfg))
}

// Package config provides configuration management for the Diamond Edge
// predictions application.
package config

import (
	"time"
)

// Config represents the complete application configuration
type Config struct {
	App      AppConfig      `mapstructure:"app" validate:"required"`
	OddsAPI  OddsAPIConfig  `mapstructure:"odds_api" validate:"required"`
	Stats    StatsConfig    `mapstructure:"stats" validate:"required"`
	Model    ModelConfig    `mapstructure:"model" validate:"required"`
	Email    EmailConfig    `mapstructure:"email"`
	Database DatabaseConfig `mapstructure:"database"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
	Schedule ScheduleConfig `mapstructure:"schedule"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// OddsAPIConfig represents the market odds feed configuration
type OddsAPIConfig struct {
	BaseURL        string   `mapstructure:"base_url" validate:"required,url"`
	APIKey         string   `mapstructure:"api_key" validate:"required"`
	SportKey       string   `mapstructure:"sport_key" validate:"required"`
	Regions        string   `mapstructure:"regions" validate:"required"`
	Markets        []string `mapstructure:"markets" validate:"required,min=1,markets"`
	TimeoutSeconds int      `mapstructure:"timeout_seconds" validate:"required,gt=0"`
	MaxRetries     int      `mapstructure:"max_retries" validate:"gte=0"`
	RateLimit      float64  `mapstructure:"rate_limit" validate:"required,gt=0"`
}

// StatsConfig represents the season statistics source configuration
type StatsConfig struct {
	BaseURL         string `mapstructure:"base_url" validate:"required,url"`
	Season          int    `mapstructure:"season" validate:"required,gte=1990"`
	CacheTTLMinutes int    `mapstructure:"cache_ttl_minutes" validate:"required,gt=0"`
	TimeoutSeconds  int    `mapstructure:"timeout_seconds" validate:"required,gt=0"`
}

// CacheTTL returns the stat cache lifetime as a duration.
func (s *StatsConfig) CacheTTL() time.Duration {
	return time.Duration(s.CacheTTLMinutes) * time.Minute
}

// ModelConfig represents model training configuration
type ModelConfig struct {
	TestFraction float64    `mapstructure:"test_fraction" validate:"required,gt=0,lt=1"`
	CVFolds      int        `mapstructure:"cv_folds" validate:"required,gte=2"`
	Seed         int64      `mapstructure:"seed"` // 0 means seed from the clock
	Workers      int        `mapstructure:"workers" validate:"gte=0"`
	Grid         GridConfig `mapstructure:"grid"`
}

// GridConfig represents the hyperparameter search grid. Empty dimensions fall
// back to the built-in defaults.
type GridConfig struct {
	NumTrees        []int    `mapstructure:"n_estimators"`
	MaxFeatures     []string `mapstructure:"max_features"`
	MaxDepth        []int    `mapstructure:"max_depth"`
	MinSamplesSplit []int    `mapstructure:"min_samples_split"`
	MinSamplesLeaf  []int    `mapstructure:"min_samples_leaf"`
	Bootstrap       []bool   `mapstructure:"bootstrap"`
}

// EmailConfig represents report delivery configuration
type EmailConfig struct {
	Enabled  bool     `mapstructure:"enabled"`
	Host     string   `mapstructure:"host" validate:"required_if=Enabled true"`
	Port     int      `mapstructure:"port" validate:"required_if=Enabled true"`
	Username string   `mapstructure:"username" validate:"required_if=Enabled true"`
	Password string   `mapstructure:"password"`
	From     string   `mapstructure:"from" validate:"required_if=Enabled true"`
	To       []string `mapstructure:"to" validate:"required_if=Enabled true"`
}

// DatabaseConfig represents optional run-artifact persistence configuration
type DatabaseConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	Host           string `mapstructure:"host" validate:"required_if=Enabled true"`
	Port           int    `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	Name           string `mapstructure:"name" validate:"required_if=Enabled true"`
	User           string `mapstructure:"user" validate:"required_if=Enabled true"`
	Password       string `mapstructure:"password"`
	SSLMode        string `mapstructure:"ssl_mode" validate:"omitempty,oneof=disable require verify-full"`
	MaxConnections int    `mapstructure:"max_connections" validate:"omitempty,gt=0"`
}

// MetricsConfig represents the Prometheus endpoint configuration
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Port    int  `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
}

// ScheduleConfig represents the daily-run schedule
type ScheduleConfig struct {
	Cron string `mapstructure:"cron"`
}

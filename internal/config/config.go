// Package config provides configuration management for the paddock-picks application.
package config

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/yourusername/paddock-picks/internal/strategy"
)

// Config represents the complete application configuration
type Config struct {
	App     AppConfig     `mapstructure:"app" validate:"required"`
	Scoring ScoringConfig `mapstructure:"scoring" validate:"required"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Metrics MetricsConfig `mapstructure:"metrics" validate:"required"`
	Server  ServerConfig  `mapstructure:"server" validate:"required"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// ScoringConfig holds the veto policy and the pick thresholds
type ScoringConfig struct {
	VetoPolicy          string  `mapstructure:"veto_policy" validate:"required,vetopolicy"`
	StrongPopularityMax int     `mapstructure:"strong_popularity_max" validate:"required,gt=0"`
	StrongOddsThreshold float64 `mapstructure:"strong_odds_threshold" validate:"required,gt=0"`
	VetoCount           int     `mapstructure:"veto_count" validate:"required,gt=0"`
	MidTierMin          int     `mapstructure:"mid_tier_min" validate:"required,gt=0"`
	MidTierMax          int     `mapstructure:"mid_tier_max" validate:"required,gt=0,lte=18"`
	RankS               float64 `mapstructure:"rank_s" validate:"required,gt=1"`
	RankA               float64 `mapstructure:"rank_a" validate:"required,gt=1"`
	EstimateBase        float64 `mapstructure:"estimate_base" validate:"gte=0"`
	EstimateSlope       float64 `mapstructure:"estimate_slope" validate:"required,gt=0"`
	EstimateMin         float64 `mapstructure:"estimate_min" validate:"required,gt=0"`
	EstimateMax         float64 `mapstructure:"estimate_max" validate:"required,gt=0"`
}

// CacheConfig represents the analysis report cache
type CacheConfig struct {
	Enabled    bool `mapstructure:"enabled"`
	TTLSeconds int  `mapstructure:"ttl_seconds" validate:"gte=0"`
	MaxEntries int  `mapstructure:"max_entries" validate:"gte=0"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path" validate:"required,startswith=/"`
}

// ServerConfig represents the HTTP surface of `picks serve`
type ServerConfig struct {
	Host                   string `mapstructure:"host"`
	Port                   int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	ReadTimeoutSeconds     int    `mapstructure:"read_timeout_seconds" validate:"required,gt=0"`
	ShutdownTimeoutSeconds int    `mapstructure:"shutdown_timeout_seconds" validate:"required,gt=0"`
	MaxBodyBytes           int64  `mapstructure:"max_body_bytes" validate:"required,gt=0"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsStaging checks if the application is running in staging mode
func (c *Config) IsStaging() bool {
	return c.App.Environment == "staging"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// GetServerAddress returns the listen address for the HTTP server
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// GetCacheTTL returns the report cache TTL
func (c *Config) GetCacheTTL() time.Duration {
	return time.Duration(c.Cache.TTLSeconds) * time.Second
}

// Thresholds converts the scoring section into strategy thresholds
func (s ScoringConfig) Thresholds() strategy.Thresholds {
	return strategy.Thresholds{
		VetoPolicy:          strategy.VetoPolicy(s.VetoPolicy),
		StrongPopularityMax: s.StrongPopularityMax,
		StrongOddsThreshold: decimal.NewFromFloat(s.StrongOddsThreshold),
		VetoCount:           s.VetoCount,
		MidTierMin:          s.MidTierMin,
		MidTierMax:          s.MidTierMax,
		RankS:               decimal.NewFromFloat(s.RankS),
		RankA:               decimal.NewFromFloat(s.RankA),
		EstimateBase:        decimal.NewFromFloat(s.EstimateBase),
		EstimateSlope:       decimal.NewFromFloat(s.EstimateSlope),
		EstimateMin:         decimal.NewFromFloat(s.EstimateMin),
		EstimateMax:         decimal.NewFromFloat(s.EstimateMax),
	}
}

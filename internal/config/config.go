package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Provider struct {
		BaseURL string `yaml:"base_url"`
		APIKey  string `yaml:"api_key"`
	} `yaml:"provider"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Sync struct {
		LookbackDays     int     `yaml:"lookback_days"`
		RequestDelaySecs float64 `yaml:"request_delay_seconds"`
		MaxFetchRetries  int     `yaml:"max_fetch_retries"`
		RetryDelaySecs   float64 `yaml:"retry_delay_seconds"`
	} `yaml:"sync"`
	Schedule struct {
		IncrementalCron string `yaml:"incremental_cron"`
	} `yaml:"schedule"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("PROVIDER_BASE_URL"); v != "" {
		cfg.Provider.BaseURL = v
	}
	if v := os.Getenv("PROVIDER_API_KEY"); v != "" {
		cfg.Provider.APIKey = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("LOOKBACK_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Sync.LookbackDays = n
		}
	}
	if v := os.Getenv("CRON_INCREMENTAL"); v != "" {
		cfg.Schedule.IncrementalCron = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}

	// Defaults
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/stockvault.db"
	}
	if cfg.Sync.LookbackDays == 0 {
		cfg.Sync.LookbackDays = 365
	}
	if cfg.Sync.RequestDelaySecs == 0 {
		cfg.Sync.RequestDelaySecs = 0.5
	}
	if cfg.Sync.MaxFetchRetries == 0 {
		cfg.Sync.MaxFetchRetries = 3
	}
	if cfg.Sync.RetryDelaySecs == 0 {
		cfg.Sync.RetryDelaySecs = 5
	}
	if cfg.Schedule.IncrementalCron == "" {
		// Weekday evenings, after the provider has settled the daily close.
		cfg.Schedule.IncrementalCron = "0 30 18 * * 1-5"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.Provider.BaseURL == "" {
		return fmt.Errorf("provider.base_url is required")
	}
	if c.Sync.LookbackDays < 0 {
		return fmt.Errorf("sync.lookback_days must not be negative")
	}
	if c.Sync.MaxFetchRetries < 1 {
		return fmt.Errorf("sync.max_fetch_retries must be at least 1")
	}
	return nil
}

// RequestDelay returns the inter-symbol pacing delay.
func (c *Config) RequestDelay() time.Duration {
	return time.Duration(c.Sync.RequestDelaySecs * float64(time.Second))
}

// RetryDelay returns the delay between fetch retry attempts.
func (c *Config) RetryDelay() time.Duration {
	return time.Duration(c.Sync.RetryDelaySecs * float64(time.Second))
}

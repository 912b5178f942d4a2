package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "data/stockvault.db", cfg.Database.SQLitePath)
	assert.Equal(t, 365, cfg.Sync.LookbackDays)
	assert.Equal(t, 3, cfg.Sync.MaxFetchRetries)
	assert.Equal(t, 500*time.Millisecond, cfg.RequestDelay())
	assert.Equal(t, 5*time.Second, cfg.RetryDelay())
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_FileAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
provider:
  base_url: https://data.example.com
sync:
  lookback_days: 30
  retry_delay_seconds: 1
`), 0o644))
	t.Setenv("PROVIDER_API_KEY", "secret")
	t.Setenv("LOOKBACK_DAYS", "90")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://data.example.com", cfg.Provider.BaseURL)
	assert.Equal(t, "secret", cfg.Provider.APIKey)
	assert.Equal(t, 90, cfg.Sync.LookbackDays, "environment overrides the file")
	assert.Equal(t, time.Second, cfg.RetryDelay())
}

func TestValidate(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	require.Error(t, cfg.Validate(), "base_url is required")

	cfg.Provider.BaseURL = "https://data.example.com"
	require.NoError(t, cfg.Validate())

	cfg.Sync.MaxFetchRetries = 0
	require.Error(t, cfg.Validate())
}

package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"StockVault/internal/collector"
	"StockVault/internal/config"
	"StockVault/internal/logging"
	"StockVault/internal/store"
	"StockVault/internal/syncer"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var cfgPath string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "stockvault",
	Short: "Local time-series store of daily market bars",
	Long: `StockVault maintains a local SQLite store of daily OHLCV bars for a
large, changing universe of equities, kept current by incremental
synchronization against a remote market-data provider.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to config file (default configs/config.yaml)")
}

// setup loads configuration and builds the logger shared by all subcommands.
func setup() (*config.Config, *logrus.Logger, error) {
	path := cfgPath
	if path == "" {
		path = "configs/config.yaml"
		if v := os.Getenv("CONFIG_PATH"); v != "" {
			path = v
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("config validation: %w", err)
	}
	log, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}

// openStore opens the SQLite store, creating the parent directory if needed.
func openStore(cfg *config.Config, log *logrus.Logger) (*store.SQLiteStore, error) {
	if dir := filepath.Dir(cfg.Database.SQLitePath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}
	return store.OpenSQLite(cfg.Database.SQLitePath, log)
}

// newSynchronizer wires provider, fetcher and store into a Synchronizer.
func newSynchronizer(cfg *config.Config, st *store.SQLiteStore, log *logrus.Logger) *syncer.Synchronizer {
	client := collector.NewAPIClient(cfg.Provider.BaseURL, cfg.Provider.APIKey, cfg.Proxy)
	fetcher := collector.NewFetcher(client, cfg.Sync.MaxFetchRetries, cfg.RetryDelay(), log)
	return syncer.New(fetcher, st, syncer.Options{
		LookbackDays: cfg.Sync.LookbackDays,
		RequestDelay: cfg.RequestDelay(),
	}, log)
}

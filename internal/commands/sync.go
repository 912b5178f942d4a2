package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"StockVault/internal/syncer"

	"github.com/spf13/cobra"
)

var syncMode string

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Run one synchronization pass",
	Long: `Run one synchronization pass over the whole universe.

Examples:
  # Fetch only the range after each symbol's cursor
  stockvault sync --mode incremental

  # Re-fetch the full lookback window for every symbol
  stockvault sync --mode full-refresh`,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().StringVar(&syncMode, "mode", string(syncer.ModeIncremental),
		"sync mode: full-refresh or incremental")
	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	mode, err := syncer.ParseMode(syncMode)
	if err != nil {
		return err
	}

	cfg, log, err := setup()
	if err != nil {
		return err
	}

	st, err := openStore(cfg, log)
	if err != nil {
		return err
	}
	defer st.Close()

	// Ctrl+C stops after the current symbol.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sync := newSynchronizer(cfg, st, log)
	if _, err := sync.Run(ctx, mode); err != nil {
		return err
	}
	return nil
}

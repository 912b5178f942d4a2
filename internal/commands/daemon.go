package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"StockVault/internal/scheduler"

	"github.com/spf13/cobra"
)

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Run incremental syncs on the configured cron schedule",
	RunE:  runDaemon,
}

func init() {
	rootCmd.AddCommand(daemonCmd)
}

func runDaemon(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}

	st, err := openStore(cfg, log)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sched := scheduler.New(ctx, newSynchronizer(cfg, st, log), log)
	if err := sched.Register(cfg.Schedule.IncrementalCron); err != nil {
		return err
	}
	sched.Start()
	defer sched.Stop()

	if os.Getenv("RUN_ON_START") == "true" {
		log.Info("RUN_ON_START enabled, executing incremental sync now")
		go sched.RunNow()
	}

	log.WithField("cron", cfg.Schedule.IncrementalCron).Info("daemon running, press Ctrl+C to stop")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info("shutdown signal received, stopping")
	cancel()
	return nil
}

package commands

import (
	"context"
	"fmt"

	"StockVault/internal/validator"

	"github.com/spf13/cobra"
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Re-check every persisted bar against the store invariants",
	RunE:  runAudit,
}

func init() {
	rootCmd.AddCommand(auditCmd)
}

func runAudit(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}

	st, err := openStore(cfg, log)
	if err != nil {
		return err
	}
	defer st.Close()

	bars, err := st.AllBars(context.Background())
	if err != nil {
		return err
	}
	if len(bars) == 0 {
		log.Warn("store is empty, nothing to audit")
		return nil
	}

	findings := validator.Audit(bars)
	for _, f := range findings {
		log.WithField("finding", f.String()).Warn("audit issue")
	}
	if len(findings) > 0 {
		return fmt.Errorf("audit found %d issue(s) in %d bars", len(findings), len(bars))
	}
	log.WithField("bars", len(bars)).Info("audit passed")
	return nil
}

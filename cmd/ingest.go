package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func newIngestCmd() *cobra.Command {
	var flags runFlags

	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Pull spreadsheet attachments from Gmail into Google Sheets",
		Long: `For every ingest item in the config file, find the newest email under the
item's Gmail label, take its spreadsheet attachment, and replace the item's
destination range with the attachment's rows.

Only the newest message of the newest conversation is considered. The
destination range is cleared before every write, so a run is repeatable.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := setupLogger()

			cfg, account, err := loadConfig(&flags)
			if err != nil {
				return err
			}
			if len(cfg.Ingest) == 0 {
				return fmt.Errorf("config file %s declares no ingest items", flags.configPath)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			provider, err := setupMetrics(ctx, flags.metrics)
			if err != nil {
				return fmt.Errorf("failed to set up metrics: %w", err)
			}
			defer provider.Shutdown(ctx)

			runner, reporter, err := ingestPipeline(ctx, account, logger, provider.Metrics())
			if err != nil {
				return err
			}

			if flags.dryRun {
				return reportBatch(ctx, reporter, cfg.Ingest)
			}
			return runBatch(ctx, runner, cfg.Ingest)
		},
	}

	flags.register(cmd)
	return cmd
}

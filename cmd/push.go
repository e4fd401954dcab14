package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func newPushCmd() *cobra.Command {
	var flags runFlags

	cmd := &cobra.Command{
		Use:   "push",
		Short: "Copy rows between Google spreadsheets",
		Long: `For every push item in the config file, read the body rows of a sheet in the
source spreadsheet and replace the destination sheet's body with them.

Push clears the destination from row 2 down to its last used row before
writing, so stale rows never survive a shrinking source.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := setupLogger()

			cfg, account, err := loadConfig(&flags)
			if err != nil {
				return err
			}
			if len(cfg.Push) == 0 {
				return fmt.Errorf("config file %s declares no push items", flags.configPath)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			provider, err := setupMetrics(ctx, flags.metrics)
			if err != nil {
				return fmt.Errorf("failed to set up metrics: %w", err)
			}
			defer provider.Shutdown(ctx)

			runner, reporter, err := pushPipeline(ctx, account, logger, provider.Metrics())
			if err != nil {
				return err
			}

			if flags.dryRun {
				return reportBatch(ctx, reporter, cfg.Push)
			}
			return runBatch(ctx, runner, cfg.Push)
		},
	}

	flags.register(cmd)
	return cmd
}

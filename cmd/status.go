package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	var flags runFlags

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Check every configured item without writing anything",
		Long: `Run the read-only checks for all ingest and push items in the config file:
structural validation, range format, and reachability of each source and
destination. Nothing is cleared or written.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := setupLogger()

			cfg, account, err := loadConfig(&flags)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			var failed error
			if len(cfg.Ingest) > 0 {
				_, reporter, err := ingestPipeline(ctx, account, logger, nil)
				if err != nil {
					return err
				}
				fmt.Printf("ingest (%d items)\n", len(cfg.Ingest))
				if err := reportBatch(ctx, reporter, cfg.Ingest); err != nil {
					failed = err
				}
			}
			if len(cfg.Push) > 0 {
				_, reporter, err := pushPipeline(ctx, account, logger, nil)
				if err != nil {
					return err
				}
				fmt.Printf("push (%d items)\n", len(cfg.Push))
				if err := reportBatch(ctx, reporter, cfg.Push); err != nil {
					failed = err
				}
			}
			return failed
		},
	}

	cmd.Flags().StringVar(&flags.configPath, "config", defaultConfigPath(), "Path to the TOML configuration file")
	cmd.Flags().StringVar(&flags.account, "account", "", "Google account name (overrides the config file)")
	return cmd
}

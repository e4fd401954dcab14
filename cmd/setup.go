package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mwalther/sheetsync/internal/config"
	"github.com/mwalther/sheetsync/internal/drive"
	"github.com/mwalther/sheetsync/internal/extract"
	"github.com/mwalther/sheetsync/internal/gmail"
	"github.com/mwalther/sheetsync/internal/instrumentation"
	"github.com/mwalther/sheetsync/internal/logging"
	"github.com/mwalther/sheetsync/internal/pipeline"
	"github.com/mwalther/sheetsync/internal/sheets"
)

// runFlags are the flags shared by the ingest and push commands.
type runFlags struct {
	configPath string
	account    string
	dryRun     bool
	metrics    bool
}

func (f *runFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.configPath, "config", defaultConfigPath(), "Path to the TOML configuration file")
	cmd.Flags().StringVar(&f.account, "account", "", "Google account name (overrides the config file)")
	cmd.Flags().BoolVar(&f.dryRun, "dry-run", false, "Check sources and destinations without writing anything")
	cmd.Flags().BoolVar(&f.metrics, "metrics", false, "Emit OpenTelemetry metrics to stderr")
}

// loadConfig reads the config file and resolves the account name, with the
// --account flag taking precedence over the file.
func loadConfig(flags *runFlags) (*config.Config, string, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, "", err
	}
	account := cfg.Account
	if flags.account != "" {
		account = flags.account
	}
	return cfg, account, nil
}

// setupMetrics builds the metrics provider. When disabled it returns a
// provider whose Metrics() is nil, which every recorder accepts.
func setupMetrics(ctx context.Context, enabled bool) (*instrumentation.Provider, error) {
	return instrumentation.NewProvider(ctx, instrumentation.Config{
		Enabled:        enabled,
		ServiceName:    "sheetsync",
		ServiceVersion: version,
	})
}

// ingestPipeline wires the Gmail reader, the attachment extractor and the
// sheets writer for one account.
func ingestPipeline(ctx context.Context, account string, logger *slog.Logger, metrics *instrumentation.Metrics) (*pipeline.Runner, *pipeline.Reporter, error) {
	gmailClient, err := gmail.NewClientForAccount(ctx, account)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create Gmail client for account %s: %w", account, err)
	}
	driveClient, err := drive.NewClientForAccount(ctx, account)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create Drive client for account %s: %w", account, err)
	}
	sheetsClient, err := sheets.NewClientForAccount(ctx, account)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create Sheets client for account %s: %w", account, err)
	}

	reader := gmail.NewReader(gmailClient, logger)
	extractor := extract.New(extract.NewDriveConverter(driveClient), sheetsClient, logger, extract.WithMetrics(metrics))
	writer := sheets.NewWriter(sheetsClient, sheets.ClearDeclaredRange, logger)

	runner := pipeline.NewRunner("ingest", reader, extractor, writer, logger, pipeline.WithMetrics(metrics))
	reporter := pipeline.NewReporter("ingest", reader, writer, logger)
	return runner, reporter, nil
}

// pushPipeline wires the sheet-to-sheet reader and writer for one account.
// Push sources always yield rows directly, so there is no extractor.
func pushPipeline(ctx context.Context, account string, logger *slog.Logger, metrics *instrumentation.Metrics) (*pipeline.Runner, *pipeline.Reporter, error) {
	sheetsClient, err := sheets.NewClientForAccount(ctx, account)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create Sheets client for account %s: %w", account, err)
	}

	reader := sheets.NewReader(sheetsClient, logger)
	writer := sheets.NewWriter(sheetsClient, sheets.ClearBody, logger)

	runner := pipeline.NewRunner("push", reader, nil, writer, logger, pipeline.WithMetrics(metrics))
	reporter := pipeline.NewReporter("push", reader, writer, logger)
	return runner, reporter, nil
}

// runBatch executes a batch and reports the outcome on stdout. A batch with
// failed items yields an error so the process exits non-zero.
func runBatch(ctx context.Context, runner *pipeline.Runner, items []config.SourceTarget) error {
	batch, err := runner.RunAll(ctx, items)
	if batch != nil {
		fmt.Print(batch.Summary())
	}
	if err != nil {
		return err
	}
	if batch.Failed > 0 {
		return fmt.Errorf("%d of %d items failed", batch.Failed, len(batch.Results))
	}
	return nil
}

// reportBatch runs the read-only checks and prints them. Failed checks yield
// an error so the process exits non-zero.
func reportBatch(ctx context.Context, reporter *pipeline.Reporter, items []config.SourceTarget) error {
	statuses := reporter.Report(ctx, items)
	failed := 0
	for _, status := range statuses {
		printStatus(status)
		if status.Failed() {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d items failed checks", failed, len(statuses))
	}
	return nil
}

func printStatus(status pipeline.ItemStatus) {
	fmt.Printf("%s -> %s\n", status.Source, status.Sheet)
	for _, check := range status.Checks {
		if check.Detail != "" {
			fmt.Printf("  [%s] %-12s %s\n", check.Level, check.Name, check.Detail)
		} else {
			fmt.Printf("  [%s] %s\n", check.Level, check.Name)
		}
	}
}

func setupLogger() *slog.Logger {
	return logging.Setup(debug)
}

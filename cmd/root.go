package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the sheetsync application
var rootCmd = &cobra.Command{
	Use:   "sheetsync",
	Short: "Syncs spreadsheet data from Gmail attachments into Google Sheets",
	Long: `sheetsync moves tabular data into Google Sheets from two kinds of sources:

  - ingest: spreadsheet attachments on the newest email under a Gmail label
  - push:   rows from a sheet in another Google spreadsheet

Each run clears the destination range and replaces it with the freshest data,
stamping the top-left cell with the update time.`,
	SilenceUsage: true,
}

var debug bool

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "sheetsync version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// defaultConfigPath returns the conventional config file location.
func defaultConfigPath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "sheetsync", "config.toml")
	}
	return "config.toml"
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(newIngestCmd())
	rootCmd.AddCommand(newPushCmd())
	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newAuthCmd())
	rootCmd.AddCommand(newVersionCmd())
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the sheetsync version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("sheetsync version %s\n", version)
		},
	}
}

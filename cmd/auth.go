package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mwalther/sheetsync/internal/google"
)

func newAuthCmd() *cobra.Command {
	var account string
	var force bool

	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authorize a Google account for sheetsync",
		Long: `Run the OAuth flow for a Google account and cache the resulting token.

Requires the SHEETSYNC_GOOGLE_CLIENT_ID and SHEETSYNC_GOOGLE_CLIENT_SECRET
environment variables. The command prints an authorization URL, then reads
the resulting code from stdin and stores the token under the given account
name.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := google.ValidateAccountName(account); err != nil {
				return err
			}
			if google.HasTokenForAccount(account) && !force {
				fmt.Printf("account %q is already authorized (use --force to re-authorize)\n", account)
				return nil
			}

			url, err := google.GetAuthURL()
			if err != nil {
				return err
			}
			fmt.Printf("Open the following URL in a browser and approve access:\n\n  %s\n\nAuthorization code: ", url)

			reader := bufio.NewReader(os.Stdin)
			code, err := reader.ReadString('\n')
			if err != nil {
				return fmt.Errorf("failed to read authorization code: %w", err)
			}
			code = strings.TrimSpace(code)
			if code == "" {
				return fmt.Errorf("no authorization code provided")
			}

			if err := google.SaveTokenForAccount(cmd.Context(), account, code); err != nil {
				return err
			}
			fmt.Printf("token stored for account %q\n", account)
			return nil
		},
	}

	cmd.Flags().StringVar(&account, "account", "default", "Google account name to authorize")
	cmd.Flags().BoolVar(&force, "force", false, "Re-run the flow even if a token is already cached")
	return cmd
}

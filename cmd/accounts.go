package cmd

import (
	"github.com/spf13/cobra"

	"github.com/dypbi/iflow-manager/internal/app"
	"github.com/dypbi/iflow-manager/internal/logger"
)

var (
	//nolint:gochecknoglobals // Cobra commands are package globals by convention.
	accountsCmd = &cobra.Command{
		Use:   "accounts",
		Short: "Account management commands",
		Long: `Manage the stored iFlow accounts.

Use 'accounts add' to register an account from its BXAuth cookie and
'accounts remove' to delete one by name or 1-based index.`,
	}

	//nolint:gochecknoglobals // Cobra commands are package globals by convention.
	accountsAddCmd = &cobra.Command{
		Use:   "add",
		Short: "Add an account from its BXAuth cookie",
		Long: `Registers a new account using a BXAuth session cookie captured
from the browser. The account's display name and API key are fetched
from the platform immediately, and the router config is re-synced.

To capture the cookie automatically, use 'iflow-manager auth login'.`,
		Run: func(cmd *cobra.Command, _ []string) {
			bxauth, _ := cmd.Flags().GetString("bxauth")
			if bxauth == "" {
				logger.Fatalf(cmd.Context(), "The --bxauth flag is required")
			}

			app.ExecuteAccountsAddCommand(cmd.Context(), appConfig, bxauth)
		},
	}

	//nolint:gochecknoglobals // Cobra commands are package globals by convention.
	accountsRemoveCmd = &cobra.Command{
		Use:   "remove {name|index}",
		Short: "Remove an account by name or 1-based index",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			app.ExecuteAccountsRemoveCommand(cmd.Context(), appConfig, args[0])
		},
	}
)

//nolint:gochecknoinits // Cobra requires the init function to set up commands.
func init() {
	accountsAddCmd.Flags().String("bxauth", "", "BXAuth session cookie value.")

	accountsCmd.AddCommand(accountsAddCmd)
	accountsCmd.AddCommand(accountsRemoveCmd)

	rootCmd.AddCommand(accountsCmd)
}

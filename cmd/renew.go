package cmd

import (
	"github.com/spf13/cobra"

	"github.com/dypbi/iflow-manager/internal/app"
)

//nolint:gochecknoglobals // Cobra commands are package globals by convention.
var renewCmd = &cobra.Command{
	Use:   "renew",
	Short: "Renew API keys that are expired or about to expire",
	Long: `Fetches fresh API keys for accounts whose keys are expired or
expire within the configured threshold. Pass --all to force a renewal
of every account regardless of expiry.

The router config is re-synced when at least one key changed.`,
	Run: func(cmd *cobra.Command, _ []string) {
		renewAll, _ := cmd.Flags().GetBool("all")

		app.ExecuteRenewCommand(cmd.Context(), appConfig, renewAll)
	},
}

//nolint:gochecknoinits // Cobra requires the init function to set up commands.
func init() {
	renewCmd.Flags().BoolP("all", "a", false, "renew every account, not just expiring ones.")

	rootCmd.AddCommand(renewCmd)
}

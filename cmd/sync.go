package cmd

import (
	"github.com/spf13/cobra"

	"github.com/dypbi/iflow-manager/internal/app"
)

//nolint:gochecknoglobals // Cobra commands are package globals by convention.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Write the stored API keys into the router config",
	Long: `Rewrites the iFlow provider block of the router (CCR) configuration
with the comma-joined API keys of all stored accounts. Every other
field of the configuration is left untouched.

Pass --restart to restart the router afterwards so the new keys take
effect immediately.`,
	Run: func(cmd *cobra.Command, _ []string) {
		restart, _ := cmd.Flags().GetBool("restart")

		app.ExecuteSyncCommand(cmd.Context(), appConfig, restart)
	},
}

//nolint:gochecknoinits // Cobra requires the init function to set up commands.
func init() {
	syncCmd.Flags().BoolP("restart", "r", false, "restart the router after syncing.")

	rootCmd.AddCommand(syncCmd)
}

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/dypbi/iflow-manager/internal/app"
)

//nolint:gochecknoglobals // Cobra commands are package globals by convention.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate every stored API key against the provider",
	Long: `Sends a signed request to the provider's models endpoint with each
stored API key and reports which keys the provider still accepts.`,
	Run: func(cmd *cobra.Command, _ []string) {
		app.ExecuteCheckCommand(cmd.Context(), appConfig)
	},
}

//nolint:gochecknoinits // Cobra requires the init function to set up commands.
func init() {
	rootCmd.AddCommand(checkCmd)
}

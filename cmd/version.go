package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dypbi/iflow-manager/internal/version"
)

//nolint:gochecknoglobals // Cobra commands are package globals by convention.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	// Version output needs no configuration, so skip the persistent pre-run.
	PersistentPreRun: func(*cobra.Command, []string) {},
	Run: func(*cobra.Command, []string) {
		fmt.Println(version.Full())
	},
}

//nolint:gochecknoinits // Cobra requires the init function to set up commands.
func init() {
	rootCmd.AddCommand(versionCmd)
}

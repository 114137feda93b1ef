package cmd

import (
	"github.com/spf13/cobra"

	"github.com/dypbi/iflow-manager/internal/app"
)

var (
	//nolint:gochecknoglobals // Cobra commands are package globals by convention.
	authCmd = &cobra.Command{
		Use:   "auth",
		Short: "Authentication management commands",
		Long: `Manage authentication for the iFlow platform.

Use 'auth login' to log in via browser and automatically capture the
BXAuth session cookie.`,
	}

	//nolint:gochecknoglobals // Cobra commands are package globals by convention.
	authLoginCmd = &cobra.Command{
		Use:   "login",
		Short: "Log in to iFlow and capture the session cookie",
		Long: `Opens a browser window for you to log in to the iFlow platform.

The login process:
1. Browser opens at https://platform.iflow.cn
2. Sign in with your phone number and SMS code
3. Wait for the tool to detect the session automatically

After a successful login the BXAuth cookie is captured, the account is
stored with its API key, and the router config is re-synced.`,
		Run: func(cmd *cobra.Command, _ []string) {
			app.ExecuteAuthLoginCommand(cmd.Context(), appConfig)
		},
	}
)

//nolint:gochecknoinits // Cobra requires the init function to set up commands.
func init() {
	authCmd.AddCommand(authLoginCmd)

	rootCmd.AddCommand(authCmd)
}

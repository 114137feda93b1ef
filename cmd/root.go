package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/dypbi/iflow-manager/internal/app"
	"github.com/dypbi/iflow-manager/internal/config"
	"github.com/dypbi/iflow-manager/internal/logger"
)

var (
	//nolint:gochecknoglobals // It is required for configuration initialization before the application starts.
	configFilenameFromFlag string

	//nolint:gochecknoglobals,lll // It is initialized once during the application's startup and shared across the command execution logic.
	appConfig *config.Config

	//nolint:gochecknoglobals,lll // Cobra command requires a global definition for proper command-line parsing and execution.
	rootCmd = &cobra.Command{
		Use:   "iflow-manager",
		Short: "Manage iFlow accounts and keep the router's API keys fresh.",
		Long: `iflow-manager maintains a pool of iFlow platform accounts.
It stores their session cookies and API keys, renews keys before they
expire, and writes the joined key list into the router (CCR) provider
configuration so requests rotate across all accounts.

Run without arguments to see the account overview.`,
		Args:             cobra.NoArgs,
		PersistentPreRun: initConfig,
		Run: func(cmd *cobra.Command, _ []string) {
			app.ExecuteRootCommand(cmd.Context(), appConfig)
		},
	}
)

// Execute executes the root command.
func Execute() {
	signals := []os.Signal{syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM}
	ctx, stop := signal.NotifyContext(context.Background(), signals...)

	defer func() {
		_ = logger.Logger().Sync()
	}()

	defer stop()

	go func() {
		defer stop()

		err := rootCmd.ExecuteContext(ctx)
		cobra.CheckErr(err)
	}()

	<-ctx.Done()
}

//nolint:gochecknoinits // Cobra requires the init function to set up flags before the command is executed.
func init() {
	persistentFlags := rootCmd.PersistentFlags()

	persistentFlags.StringVarP(
		&configFilenameFromFlag,
		"config",
		"c",
		"",
		fmt.Sprintf("path to the configuration file (default is '%s')",
			config.DefaultConfigFilename))

	persistentFlags.StringP(
		"log-level",
		"v",
		"",
		"logging verbosity: debug, info, warn, error.")

	persistentFlags.String(
		"accounts",
		"",
		"path to the accounts JSON file.")

	persistentFlags.String(
		"router-config",
		"",
		"path to the router (CCR) JSON configuration.")
}

func initConfig(cmd *cobra.Command, _ []string) {
	var err error

	appConfig, err = config.LoadConfig(configFilenameFromFlag)
	if err != nil {
		logger.Fatalf(cmd.Context(), "Failed to load configuration: %v", err)
	}

	if err = bindFlagsToConfig(cmd.Root().PersistentFlags(), appConfig); err != nil {
		logger.Fatalf(cmd.Context(), "Failed to parse flags: %v", err)
	}

	logger.SetLevel(appConfig.ParsedLogLevel)
}

func bindFlagsToConfig(flags *pflag.FlagSet, cfg *config.Config) error {
	if flag := flags.Lookup("log-level"); flag != nil && flag.Changed {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}

	if flag := flags.Lookup("accounts"); flag != nil && flag.Changed {
		cfg.AccountsPath, _ = flags.GetString("accounts")
	}

	if flag := flags.Lookup("router-config"); flag != nil && flag.Changed {
		cfg.RouterConfigPath, _ = flags.GetString("router-config")
	}

	return config.ValidateConfig(cfg)
}

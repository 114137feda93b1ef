package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/dypbi/iflow-manager/internal/config"
	"github.com/dypbi/iflow-manager/internal/constants"
)

const testBaseConfigContent = `
accounts_path: "/config/accounts.json"
router_config_path: "/config/ccr/config.json"
router_binary: "ccr"
log_level: "info"
request_timeout: "30s"
renew_threshold: "24h"
`

// newTestFlagSet mirrors the persistent flags of the root command.
func newTestFlagSet() *cobra.Command {
	testCmd := &cobra.Command{Use: "test"}

	testCmd.Flags().StringP("log-level", "v", "", "logging verbosity")
	testCmd.Flags().String("accounts", "", "accounts file path")
	testCmd.Flags().String("router-config", "", "router config path")

	return testCmd
}

// loadTestConfig writes the base config to a temp file and loads it.
func loadTestConfig(t *testing.T) *config.Config {
	t.Helper()

	configPath := filepath.Join(t.TempDir(), "test-config.yaml")

	err := os.WriteFile(
		configPath,
		[]byte(testBaseConfigContent),
		constants.DefaultFilePermissions,
	) //nolint:gosec // It's a test file.
	require.NoError(t, err)

	cfg, err := config.LoadConfig(configPath)
	require.NoError(t, err)

	return cfg
}

// TestFlagOverrides tests that command-line flags correctly override configuration file values.
//
//nolint:nolintlint,tparallel // Cannot run in parallel due to Viper global state.
func TestFlagOverrides(t *testing.T) {
	tests := []struct {
		name           string
		flags          map[string]string
		expectedConfig func(*testing.T, *config.Config)
	}{
		{
			name:  "no flags - use config values",
			flags: map[string]string{},
			expectedConfig: func(t *testing.T, cfg *config.Config) {
				t.Helper()
				assert.Equal(t, "/config/accounts.json", cfg.AccountsPath)
				assert.Equal(t, "/config/ccr/config.json", cfg.RouterConfigPath)
				assert.Equal(t, zapcore.InfoLevel, cfg.ParsedLogLevel)
			},
		},
		{
			name: "log-level flag only",
			flags: map[string]string{
				"log-level": "debug",
			},
			expectedConfig: func(t *testing.T, cfg *config.Config) {
				t.Helper()
				assert.Equal(t, zapcore.DebugLevel, cfg.ParsedLogLevel)
				assert.Equal(t, "/config/accounts.json", cfg.AccountsPath)
			},
		},
		{
			name: "accounts flag only",
			flags: map[string]string{
				"accounts": "/flag/accounts.json",
			},
			expectedConfig: func(t *testing.T, cfg *config.Config) {
				t.Helper()
				assert.Equal(t, "/flag/accounts.json", cfg.AccountsPath)
				assert.Equal(t, "/config/ccr/config.json", cfg.RouterConfigPath)
			},
		},
		{
			name: "router-config flag only",
			flags: map[string]string{
				"router-config": "/flag/ccr.json",
			},
			expectedConfig: func(t *testing.T, cfg *config.Config) {
				t.Helper()
				assert.Equal(t, "/flag/ccr.json", cfg.RouterConfigPath)
				assert.Equal(t, "/config/accounts.json", cfg.AccountsPath)
			},
		},
		{
			name: "all flags - override everything",
			flags: map[string]string{
				"log-level":     "warn",
				"accounts":      "/all/accounts.json",
				"router-config": "/all/ccr.json",
			},
			expectedConfig: func(t *testing.T, cfg *config.Config) {
				t.Helper()
				assert.Equal(t, zapcore.WarnLevel, cfg.ParsedLogLevel)
				assert.Equal(t, "/all/accounts.json", cfg.AccountsPath)
				assert.Equal(t, "/all/ccr.json", cfg.RouterConfigPath)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Cleanup(viper.Reset)

			cfg := loadTestConfig(t)

			testCmd := newTestFlagSet()
			for flagName, flagValue := range tt.flags {
				require.NoError(t, testCmd.Flags().Set(flagName, flagValue))
			}

			require.NoError(t, bindFlagsToConfig(testCmd.Flags(), cfg))

			tt.expectedConfig(t, cfg)
		})
	}
}

// TestFlagOverrides_InvalidValues tests that invalid flag values are caught during validation.
//
//nolint:nolintlint,tparallel // Cannot run in parallel due to Viper global state.
func TestFlagOverrides_InvalidValues(t *testing.T) {
	tests := []struct {
		name        string
		flagName    string
		flagValue   string
		expectedErr error
	}{
		{
			name:        "unknown log level",
			flagName:    "log-level",
			flagValue:   "loud",
			expectedErr: config.ErrUnknownLogLevel,
		},
		{
			name:        "blank accounts path",
			flagName:    "accounts",
			flagValue:   "   ",
			expectedErr: config.ErrEmptyAccountsPath,
		},
		{
			name:        "blank router config path",
			flagName:    "router-config",
			flagValue:   " ",
			expectedErr: config.ErrEmptyRouterConfigPath,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Cleanup(viper.Reset)

			cfg := loadTestConfig(t)

			testCmd := newTestFlagSet()
			require.NoError(t, testCmd.Flags().Set(tt.flagName, tt.flagValue))

			err := bindFlagsToConfig(testCmd.Flags(), cfg)
			require.ErrorIs(t, err, tt.expectedErr)
		})
	}
}

// TestBindFlagsToConfig_EmptyFlagSet tests that binding an empty flag set
// just validates the config.
func TestBindFlagsToConfig_EmptyFlagSet(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{
		AccountsPath:     "/accounts.json",
		RouterConfigPath: "/ccr/config.json",
		RouterBinary:     "ccr",
		LogLevel:         "info",
		RequestTimeout:   "30s",
		RenewThreshold:   "24h",
	}

	emptyFlags := pflag.NewFlagSet("test", pflag.ContinueOnError)

	require.NoError(t, bindFlagsToConfig(emptyFlags, cfg))
}

// TestCommandTree tests that every subcommand is registered on the root.
func TestCommandTree(t *testing.T) {
	t.Parallel()

	expected := []string{"accounts", "auth", "check", "renew", "sync", "version"}

	var names []string
	for _, sub := range rootCmd.Commands() {
		names = append(names, sub.Name())
	}

	for _, name := range expected {
		assert.Contains(t, names, name)
	}

	accounts, _, err := rootCmd.Find([]string{"accounts", "add"})
	require.NoError(t, err)
	assert.NotNil(t, accounts.Flags().Lookup("bxauth"))

	renew, _, err := rootCmd.Find([]string{"renew"})
	require.NoError(t, err)
	assert.NotNil(t, renew.Flags().Lookup("all"))

	sync, _, err := rootCmd.Find([]string{"sync"})
	require.NoError(t, err)
	assert.NotNil(t, sync.Flags().Lookup("restart"))
}

// Package config loads, validates, and persists the application configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/dypbi/iflow-manager/internal/constants"
	"github.com/dypbi/iflow-manager/internal/logger"
)

// Config holds all configuration settings.
type Config struct {
	// AccountsPath is the path of the JSON file holding the stored accounts.
	AccountsPath string `mapstructure:"accounts_path"`
	// RouterConfigPath is the path of the router (CCR) JSON configuration
	// whose provider block receives the joined API keys on sync.
	RouterConfigPath string `mapstructure:"router_config_path"`
	// RouterBinary is the router CLI executable invoked for restarts.
	RouterBinary string `mapstructure:"router_binary"`
	// LogLevel specifies the logging verbosity level.
	LogLevel string `mapstructure:"log_level"`
	// RequestTimeout is the timeout for platform API requests (e.g. "30s").
	RequestTimeout string `mapstructure:"request_timeout"`
	// RenewThreshold is how close to expiry a key must be before a smart
	// renewal refreshes it (e.g. "24h").
	RenewThreshold string `mapstructure:"renew_threshold"`
	// PlatformBaseURL is the base URL of the iFlow platform (set automatically).
	PlatformBaseURL string
	// ProviderAPIURL is the chat-completions endpoint written into the router
	// provider block and used by key checks (set automatically).
	ProviderAPIURL string
	// ParsedLogLevel is the parsed zap log level.
	ParsedLogLevel zapcore.Level
	// ParsedRequestTimeout is the parsed platform request timeout.
	ParsedRequestTimeout time.Duration
	// ParsedRenewThreshold is the parsed smart-renewal threshold.
	ParsedRenewThreshold time.Duration
}

const (
	// PlatformBaseURL is the base URL for the iFlow platform.
	PlatformBaseURL = "https://platform.iflow.cn"

	// ProviderAPIURL is the iFlow chat-completions endpoint.
	ProviderAPIURL = "https://apis.iflow.cn/v1/chat/completions"

	// DefaultConfigFilename is the default name of the configuration file.
	DefaultConfigFilename = ".iflow-manager.yaml"

	// DefaultAccountsFilename is the default name of the accounts file.
	DefaultAccountsFilename = "accounts.json"

	// DefaultRouterConfigPath is the default router configuration location,
	// relative to the user's home directory.
	DefaultRouterConfigPath = ".claude-code-router/config.json"

	// DefaultRouterBinary is the default router CLI executable name.
	DefaultRouterBinary = "ccr"

	// defaultLogLevel is the log level used when the config does not set one.
	defaultLogLevel = "info"

	// defaultRequestTimeout is the platform request timeout used by default.
	defaultRequestTimeout = "30s"

	// defaultRenewThreshold makes smart renewal refresh keys expiring within a day,
	// matching the "expiring" classification of account listings.
	defaultRenewThreshold = "24h"
)

// Static error definitions for better error handling.
var (
	// ErrEmptyAccountsPath indicates that the accounts file path is missing.
	ErrEmptyAccountsPath = errors.New("accounts path cannot be empty")
	// ErrEmptyRouterConfigPath indicates that the router config path is missing.
	ErrEmptyRouterConfigPath = errors.New("router config path cannot be empty")
	// ErrEmptyRouterBinary indicates that the router binary name is missing.
	ErrEmptyRouterBinary = errors.New("router binary cannot be empty")
	// ErrUnknownLogLevel indicates that the log level is not recognized.
	ErrUnknownLogLevel = errors.New("unknown log level")
	// ErrInvalidRequestTimeout indicates that the request timeout is invalid.
	ErrInvalidRequestTimeout = errors.New("request_timeout must be positive")
	// ErrInvalidRenewThreshold indicates that the renew threshold is invalid.
	ErrInvalidRenewThreshold = errors.New("renew_threshold must be positive")
)

// LoadConfig loads configuration settings from a YAML file.
// A missing file is not an error: every setting has a usable default,
// so the tool works out of the box.
func LoadConfig(configFilename string) (*Config, error) {
	usingDefaultLocation := configFilename == ""
	if usingDefaultLocation {
		configFilename = defaultConfigPath()
	}

	viper.SetConfigFile(configFilename)
	viper.SetConfigType("yaml")

	viper.SetDefault("accounts_path", defaultAccountsPath())
	viper.SetDefault("router_config_path", defaultRouterConfigPath())
	viper.SetDefault("router_binary", DefaultRouterBinary)
	viper.SetDefault("log_level", defaultLogLevel)
	viper.SetDefault("request_timeout", defaultRequestTimeout)
	viper.SetDefault("renew_threshold", defaultRenewThreshold)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError

		// An explicitly requested file must exist; the default one may not.
		missing := errors.As(err, &notFound) || os.IsNotExist(err)
		if !missing || !usingDefaultLocation {
			return nil, fmt.Errorf("failed to read config from file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// ValidateConfig checks the configuration for validity and sets derived fields.
func ValidateConfig(cfg *Config) error {
	var err error

	cfg.PlatformBaseURL = PlatformBaseURL
	cfg.ProviderAPIURL = ProviderAPIURL

	if strings.TrimSpace(cfg.AccountsPath) == "" {
		return ErrEmptyAccountsPath
	}

	if strings.TrimSpace(cfg.RouterConfigPath) == "" {
		return ErrEmptyRouterConfigPath
	}

	if strings.TrimSpace(cfg.RouterBinary) == "" {
		return ErrEmptyRouterBinary
	}

	parsedLogLevel, isLogLevelCorrect := logger.ParseLogLevel(cfg.LogLevel)
	if !isLogLevelCorrect {
		return fmt.Errorf("%w: '%s'", ErrUnknownLogLevel, cfg.LogLevel)
	}

	cfg.ParsedLogLevel = parsedLogLevel

	cfg.ParsedRequestTimeout, err = time.ParseDuration(cfg.RequestTimeout)
	if err != nil {
		return fmt.Errorf("failed to parse request timeout: %w", err)
	}

	if cfg.ParsedRequestTimeout <= 0 {
		return ErrInvalidRequestTimeout
	}

	cfg.ParsedRenewThreshold, err = time.ParseDuration(cfg.RenewThreshold)
	if err != nil {
		return fmt.Errorf("failed to parse renew threshold: %w", err)
	}

	if cfg.ParsedRenewThreshold <= 0 {
		return ErrInvalidRenewThreshold
	}

	return nil
}

// SaveConfig writes the current settings to the default configuration file.
func SaveConfig(cfg *Config) error {
	data, err := yaml.Marshal(map[string]any{
		"accounts_path":      cfg.AccountsPath,
		"router_config_path": cfg.RouterConfigPath,
		"router_binary":      cfg.RouterBinary,
		"log_level":          cfg.LogLevel,
		"request_timeout":    cfg.RequestTimeout,
		"renew_threshold":    cfg.RenewThreshold,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err = os.WriteFile(defaultConfigPath(), data, constants.DefaultFilePermissions); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// defaultConfigPath returns the default config file location in the user's
// home directory, falling back to the working directory when home is unknown.
func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultConfigFilename
	}

	return filepath.Join(home, DefaultConfigFilename)
}

func defaultAccountsPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultAccountsFilename
	}

	return filepath.Join(home, ".iflow-manager", DefaultAccountsFilename)
}

func defaultRouterConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultRouterConfigPath
	}

	return filepath.Join(home, DefaultRouterConfigPath)
}

// Package router keeps the router (CCR) configuration in sync with the
// stored accounts: it rewrites the iFlow provider's api_key list and can
// restart the router CLI so changes take effect.
package router

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/dypbi/iflow-manager/internal/config"
	"github.com/dypbi/iflow-manager/internal/constants"
	"github.com/dypbi/iflow-manager/internal/logger"
)

// Service provides router configuration sync and restart.
type Service interface {
	// Sync writes the comma-separated API key list into the iFlow provider
	// block of the router configuration, creating the block if it is absent.
	Sync(ctx context.Context, apiKeys string) error
	// Restart restarts the router so the rewritten configuration is picked up.
	Restart(ctx context.Context) error
	// Status reports whether the router configuration exists.
	Status(ctx context.Context) *Status
}

// Status describes the router configuration on this machine.
type Status struct {
	// ConfigPath is the inspected configuration location.
	ConfigPath string
	// ConfigExists reports whether the configuration file is present.
	ConfigExists bool
}

// ServiceImpl implements the router sync service.
type ServiceImpl struct {
	// cfg contains the application configuration.
	cfg *config.Config
}

const (
	// providerName is the name of the managed provider block.
	providerName = "op-provider"

	// providersField is the top-level config field holding provider blocks.
	providersField = "Providers"

	// restartTimeout bounds the router restart command.
	restartTimeout = 60 * time.Second
)

// defaultModels are the models advertised by a freshly created provider block.
//
//nolint:gochecknoglobals // Immutable template data.
var defaultModels = []string{"qwen3-vl-plus", "minimax-m2.1", "kimi-k2.5", "glm-5", "minimax-m2.5"}

// Static error definitions for better error handling.
var (
	// ErrConfigNotFound indicates the router configuration file is missing.
	ErrConfigNotFound = errors.New("router config not found")
	// ErrNoAPIKeys indicates there are no usable keys to write.
	ErrNoAPIKeys = errors.New("no API keys to sync")
	// ErrRestartFailed indicates the router restart command failed.
	ErrRestartFailed = errors.New("router restart failed")
)

// NewService creates a router sync service instance.
func NewService(cfg *config.Config) Service {
	return &ServiceImpl{cfg: cfg}
}

// Sync writes the API key list into the iFlow provider block.
// The configuration is edited as raw JSON so every field this tool does not
// know about survives the rewrite untouched.
func (s *ServiceImpl) Sync(ctx context.Context, apiKeys string) error {
	if strings.TrimSpace(apiKeys) == "" {
		return ErrNoAPIKeys
	}

	data, err := os.ReadFile(s.cfg.RouterConfigPath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrConfigNotFound, s.cfg.RouterConfigPath)
		}

		return fmt.Errorf("failed to read router config: %w", err)
	}

	var routerConfig map[string]any
	if err = json.Unmarshal(data, &routerConfig); err != nil {
		return fmt.Errorf("failed to parse router config: %w", err)
	}

	providers, _ := routerConfig[providersField].([]any)

	updated := false

	for _, entry := range providers {
		provider, ok := entry.(map[string]any)
		if !ok {
			continue
		}

		if name, _ := provider["name"].(string); name == providerName {
			provider["api_key"] = apiKeys
			updated = true

			break
		}
	}

	if !updated {
		providers = append(providers, s.defaultProviderBlock(apiKeys))
	}

	routerConfig[providersField] = providers

	rewritten, err := json.MarshalIndent(routerConfig, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal router config: %w", err)
	}

	if err = os.WriteFile(s.cfg.RouterConfigPath, rewritten, constants.DefaultFilePermissions); err != nil {
		return fmt.Errorf("failed to write router config: %w", err)
	}

	logger.Infof(ctx, "Router config updated with %d keys",
		len(strings.Split(apiKeys, ",")))

	return nil
}

// defaultProviderBlock is the provider entry created when the router config
// has never seen this tool before. The "header" transformer is what attaches
// the rotation and signing headers on the router side.
func (s *ServiceImpl) defaultProviderBlock(apiKeys string) map[string]any {
	models := make([]any, 0, len(defaultModels))
	for _, model := range defaultModels {
		models = append(models, model)
	}

	return map[string]any{
		"name":         providerName,
		"api_base_url": s.cfg.ProviderAPIURL,
		"api_key":      apiKeys,
		"models":       models,
		"transformer":  map[string]any{"use": []any{"header"}},
	}
}

// Restart runs the router CLI's restart command.
func (s *ServiceImpl) Restart(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, restartTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, s.cfg.RouterBinary, "restart")

	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%w: %w (%s)", ErrRestartFailed, err, strings.TrimSpace(string(output)))
	}

	logger.Debugf(ctx, "Router restart output: %s", strings.TrimSpace(string(output)))

	return nil
}

// Status reports whether the router configuration exists.
func (s *ServiceImpl) Status(_ context.Context) *Status {
	_, err := os.Stat(s.cfg.RouterConfigPath)

	return &Status{
		ConfigPath:   s.cfg.RouterConfigPath,
		ConfigExists: err == nil,
	}
}

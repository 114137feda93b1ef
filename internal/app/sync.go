package app

import (
	"context"

	"github.com/dypbi/iflow-manager/internal/config"
	"github.com/dypbi/iflow-manager/internal/logger"
	"github.com/dypbi/iflow-manager/internal/service/router"
)

// ExecuteSyncCommand rewrites the router provider's key list from the stored
// accounts and optionally restarts the router so the change takes effect.
func ExecuteSyncCommand(ctx context.Context, cfg *config.Config, restart bool) {
	accountService := newAccountService(ctx, cfg)

	joined, err := accountService.JoinedAPIKeys(ctx)
	if err != nil {
		logger.Fatalf(ctx, "Failed to collect API keys: %v", err)
	}

	routerService := router.NewService(cfg)

	if err = routerService.Sync(ctx, joined); err != nil {
		logger.Fatalf(ctx, "Router sync failed: %v", err)
	}

	if !restart {
		return
	}

	if err = routerService.Restart(ctx); err != nil {
		logger.Fatalf(ctx, "Router restart failed: %v", err)
	}

	logger.Info(ctx, "Router restarted")
}

package app

import (
	"context"

	"github.com/dypbi/iflow-manager/internal/config"
	"github.com/dypbi/iflow-manager/internal/logger"
	"github.com/dypbi/iflow-manager/internal/service/accounts"
)

// ExecuteRenewCommand refreshes account keys. By default only expired and
// soon-expiring accounts are touched; renewAll forces every account.
// The router config is synced when at least one key changed.
func ExecuteRenewCommand(ctx context.Context, cfg *config.Config, renewAll bool) {
	accountService := newAccountService(ctx, cfg)

	var (
		summary *accounts.RenewSummary
		err     error
	)

	if renewAll {
		summary, err = accountService.RenewAll(ctx)
	} else {
		summary, err = accountService.RenewExpiring(ctx)
	}

	if err != nil {
		logger.Fatalf(ctx, "Renewal failed: %v", err)
	}

	if summary.Selected == 0 {
		logger.Info(ctx, "All keys are healthy, nothing to renew")

		return
	}

	logger.Infof(ctx, "Renewed %d of %d accounts (%d failed)",
		summary.Renewed, summary.Selected, summary.Failed)

	if summary.Renewed > 0 {
		syncRouter(ctx, cfg, accountService)
	}
}

package app

import (
	"context"

	"github.com/dypbi/iflow-manager/internal/config"
	"github.com/dypbi/iflow-manager/internal/logger"
	"github.com/dypbi/iflow-manager/internal/utils"
)

// ExecuteAccountsAddCommand registers a new account from its BXAuth cookie
// and pushes the refreshed key list into the router config.
func ExecuteAccountsAddCommand(ctx context.Context, cfg *config.Config, bxauth string) {
	accountService := newAccountService(ctx, cfg)

	account, err := accountService.Add(ctx, bxauth)
	if err != nil {
		logger.Fatalf(ctx, "Failed to add account: %v", err)
	}

	logger.Infof(ctx, "Account %s added (key %s, expires %s)",
		account.Name, utils.MaskAPIKey(account.APIKey), account.ExpireTime)

	syncRouter(ctx, cfg, accountService)
}

// ExecuteAccountsRemoveCommand deletes an account selected by its 1-based
// index or its name and pushes the refreshed key list into the router config.
func ExecuteAccountsRemoveCommand(ctx context.Context, cfg *config.Config, selector string) {
	accountService := newAccountService(ctx, cfg)

	removed, err := accountService.Remove(ctx, selector)
	if err != nil {
		logger.Fatalf(ctx, "Failed to remove account: %v", err)
	}

	logger.Infof(ctx, "Account %s removed", removed.Name)

	syncRouter(ctx, cfg, accountService)
}

package app

import (
	"context"

	"github.com/dypbi/iflow-manager/internal/config"
	"github.com/dypbi/iflow-manager/internal/logger"
	"github.com/dypbi/iflow-manager/internal/service/auth"
	"github.com/dypbi/iflow-manager/internal/utils"
)

// ExecuteAuthLoginCommand executes the auth login command.
// It opens a browser, waits for the user to log in, captures the BXAuth
// cookie, and stores the resulting account.
func ExecuteAuthLoginCommand(ctx context.Context, cfg *config.Config) {
	logger.Info(ctx, "Starting authentication process")

	authService, err := auth.NewService(cfg)
	if err != nil {
		logger.Fatalf(ctx, "Failed to initialize authentication service: %v", err)
		return
	}

	cookie, err := authService.LoginAndExtractCookie(ctx)
	if err != nil {
		logger.Fatalf(ctx, "Authentication failed: %v", err)
		return
	}

	accountService := newAccountService(ctx, cfg)

	account, err := accountService.Add(ctx, cookie)
	if err != nil {
		logger.Fatalf(ctx, "Failed to store the new account: %v", err)
		return
	}

	syncRouter(ctx, cfg, accountService)

	logger.Info(ctx, "Authentication complete!")
	logger.Infof(ctx, "Account %s is ready (key %s, expires %s)",
		account.Name, utils.MaskAPIKey(account.APIKey), account.ExpireTime)
	logger.Info(ctx, "")
	logger.Info(ctx, "Check the overview:")
	logger.Info(ctx, "iflow-manager")
}

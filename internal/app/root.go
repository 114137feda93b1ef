package app

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/dypbi/iflow-manager/internal/client/iflow"
	"github.com/dypbi/iflow-manager/internal/config"
	"github.com/dypbi/iflow-manager/internal/logger"
	"github.com/dypbi/iflow-manager/internal/service/accounts"
	"github.com/dypbi/iflow-manager/internal/service/router"
	"github.com/dypbi/iflow-manager/internal/utils"
)

// newAccountService builds the account service with its platform client and store.
func newAccountService(ctx context.Context, cfg *config.Config) accounts.Service {
	client, err := iflow.NewClient(cfg)
	if err != nil {
		logger.Fatalf(ctx, "Failed to initialize iFlow client: %v", err)
	}

	return accounts.NewService(cfg, client, accounts.NewStore(cfg.AccountsPath))
}

// syncRouter pushes the current key list into the router config.
// Failures are reported but never abort the command that triggered the sync:
// the accounts file is already saved and a later 'sync' can catch up.
func syncRouter(ctx context.Context, cfg *config.Config, accountService accounts.Service) {
	joined, err := accountService.JoinedAPIKeys(ctx)
	if err != nil {
		logger.Warnf(ctx, "Failed to collect API keys for router sync: %v", err)

		return
	}

	if err = router.NewService(cfg).Sync(ctx, joined); err != nil {
		logger.Warnf(ctx, "Router sync failed: %v", err)
	}
}

// ExecuteRootCommand prints the account overview and the router config status.
func ExecuteRootCommand(ctx context.Context, cfg *config.Config) {
	accountService := newAccountService(ctx, cfg)

	stored, err := accountService.List(ctx)
	if err != nil {
		logger.Fatalf(ctx, "Failed to load accounts: %v", err)
	}

	if len(stored) == 0 {
		fmt.Println("No accounts stored yet.")
		fmt.Println("Run 'iflow-manager auth login' to add one via the browser.")
	} else {
		printAccountsTable(cfg, stored)
	}

	status := router.NewService(cfg).Status(ctx)

	fmt.Println()

	if status.ConfigExists {
		fmt.Printf("Router config: %s\n", status.ConfigPath)
	} else {
		fmt.Printf("Router config: %s (not found)\n", status.ConfigPath)
	}
}

// printAccountsTable renders the overview table for stored accounts.
func printAccountsTable(cfg *config.Config, stored []*accounts.Account) {
	now := time.Now()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "#\tNAME\tAPI KEY\tSTATUS\tEXPIRES")

	for i, account := range stored {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			i+1,
			account.Name,
			utils.MaskAPIKey(account.APIKey),
			account.ExpiryStatus(now, cfg.ParsedRenewThreshold),
			account.RemainingText())
	}

	_ = w.Flush()
}

package app

import (
	"context"
	"fmt"

	"github.com/dypbi/iflow-manager/internal/config"
	"github.com/dypbi/iflow-manager/internal/logger"
)

// ExecuteCheckCommand validates every stored API key against the provider
// endpoint and prints per-account results.
func ExecuteCheckCommand(ctx context.Context, cfg *config.Config) {
	accountService := newAccountService(ctx, cfg)

	checks, err := accountService.CheckKeys(ctx)
	if err != nil {
		logger.Fatalf(ctx, "Key check failed: %v", err)
	}

	if len(checks) == 0 {
		fmt.Println("No accounts stored, nothing to check.")

		return
	}

	valid := 0

	for _, check := range checks {
		if check.Err == nil {
			valid++

			fmt.Printf("OK    %s\n", check.Name)
		} else {
			fmt.Printf("FAIL  %s: %v\n", check.Name, check.Err)
		}
	}

	fmt.Printf("\n%d of %d keys valid\n", valid, len(checks))
}

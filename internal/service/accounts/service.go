package accounts

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"github.com/dypbi/iflow-manager/internal/client/iflow"
	"github.com/dypbi/iflow-manager/internal/config"
	"github.com/dypbi/iflow-manager/internal/logger"
	"github.com/dypbi/iflow-manager/internal/utils"
)

// Service provides account management on top of the store and the platform client.
type Service interface {
	// List returns all stored accounts.
	List(ctx context.Context) ([]*Account, error)
	// Add registers a new account from its BXAuth cookie, fetching its
	// display name and key material from the platform.
	Add(ctx context.Context, bxauth string) (*Account, error)
	// Remove deletes an account selected by its 1-based index or its name.
	Remove(ctx context.Context, selector string) (*Account, error)
	// RenewExpiring refreshes keys of expired and soon-expiring accounts only.
	RenewExpiring(ctx context.Context) (*RenewSummary, error)
	// RenewAll refreshes the keys of every account.
	RenewAll(ctx context.Context) (*RenewSummary, error)
	// CheckKeys validates every stored key against the provider endpoint.
	CheckKeys(ctx context.Context) ([]*KeyCheck, error)
	// JoinedAPIKeys returns the comma-separated key list for the router config.
	JoinedAPIKeys(ctx context.Context) (string, error)
}

// RenewSummary reports the outcome of a renewal run.
type RenewSummary struct {
	// Selected is how many accounts were picked for renewal.
	Selected int
	// Renewed is how many accounts received a fresh key.
	Renewed int
	// Failed is how many renewals errored.
	Failed int
}

// KeyCheck is the validation result for one account's key.
type KeyCheck struct {
	// Name is the account display name.
	Name string
	// Err is nil when the provider accepted the key.
	Err error
}

// ServiceImpl implements the account management service.
type ServiceImpl struct {
	// cfg contains the application configuration.
	cfg *config.Config
	// client talks to the iFlow platform.
	client iflow.Client
	// store persists accounts on disk.
	store *Store
	// now returns the current time. Overridable in tests.
	now func() time.Time
}

// NewService creates an account service instance with dependency-injected components.
func NewService(cfg *config.Config, client iflow.Client, store *Store) Service {
	return &ServiceImpl{
		cfg:    cfg,
		client: client,
		store:  store,
		now:    time.Now,
	}
}

// List returns all stored accounts.
func (s *ServiceImpl) List(_ context.Context) ([]*Account, error) {
	return s.store.Load()
}

// Add registers a new account from its BXAuth cookie.
func (s *ServiceImpl) Add(ctx context.Context, bxauth string) (*Account, error) {
	accounts, err := s.store.Load()
	if err != nil {
		return nil, err
	}

	for _, account := range accounts {
		if account.BXAuth == bxauth {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateAccount, account.Name)
		}
	}

	// The name is best-effort: a profile page the tool cannot parse
	// must not block adding an otherwise working account.
	name, err := s.client.FetchProfileName(ctx, bxauth)
	if err != nil {
		logger.Warnf(ctx, "Failed to fetch profile name: %v", err)

		name = iflow.UnknownProfileName
	}

	info, err := s.client.FetchKeyInfo(ctx, bxauth)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch key info: %w", err)
	}

	account := &Account{
		BXAuth:     bxauth,
		APIKey:     info.APIKey,
		Name:       name,
		ExpireTime: info.ExpireTime,
	}

	accounts = append(accounts, account)
	if err = s.store.Save(accounts); err != nil {
		return nil, err
	}

	logger.Infof(ctx, "Added account %s (key %s, expires %s)",
		account.Name, utils.MaskAPIKey(account.APIKey), account.ExpireTime)

	return account, nil
}

// Remove deletes an account selected by its 1-based index or its name.
func (s *ServiceImpl) Remove(ctx context.Context, selector string) (*Account, error) {
	accounts, err := s.store.Load()
	if err != nil {
		return nil, err
	}

	index := -1

	if parsed, parseErr := strconv.Atoi(selector); parseErr == nil {
		if parsed >= 1 && parsed <= len(accounts) {
			index = parsed - 1
		}
	} else {
		for i, account := range accounts {
			if account.Name == selector {
				index = i

				break
			}
		}
	}

	if index < 0 {
		return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, selector)
	}

	removed := accounts[index]
	accounts = append(accounts[:index], accounts[index+1:]...)

	if err = s.store.Save(accounts); err != nil {
		return nil, err
	}

	logger.Infof(ctx, "Removed account %s", removed.Name)

	return removed, nil
}

// RenewExpiring refreshes keys of expired and soon-expiring accounts only.
func (s *ServiceImpl) RenewExpiring(ctx context.Context) (*RenewSummary, error) {
	return s.renew(ctx, func(account *Account) bool {
		status := account.ExpiryStatus(s.now(), s.cfg.ParsedRenewThreshold)

		return status == StatusExpired || status == StatusExpiring
	})
}

// RenewAll refreshes the keys of every account.
func (s *ServiceImpl) RenewAll(ctx context.Context) (*RenewSummary, error) {
	return s.renew(ctx, func(*Account) bool { return true })
}

// renew refreshes the key of every account matching the filter.
// Only APIKey and ExpireTime are updated; the name stays whatever
// it was when the account was added.
func (s *ServiceImpl) renew(ctx context.Context, shouldRenew func(*Account) bool) (*RenewSummary, error) {
	accounts, err := s.store.Load()
	if err != nil {
		return nil, err
	}

	var selected []*Account

	for _, account := range accounts {
		if shouldRenew(account) {
			selected = append(selected, account)
		}
	}

	summary := &RenewSummary{Selected: len(selected)}
	if len(selected) == 0 {
		return summary, nil
	}

	var bar *progressbar.ProgressBar
	if logger.Level() <= zap.InfoLevel {
		bar = progressbar.Default(int64(len(selected)), "Renewing keys")
	}

	for _, account := range selected {
		info, fetchErr := s.client.FetchKeyInfo(ctx, account.BXAuth)
		if fetchErr != nil {
			logger.Warnf(ctx, "Failed to renew %s: %v", account.Name, fetchErr)

			summary.Failed++
		} else {
			account.APIKey = info.APIKey
			account.ExpireTime = info.ExpireTime
			summary.Renewed++
		}

		if bar != nil {
			_ = bar.Add(1)
		}
	}

	if summary.Renewed > 0 {
		if err = s.store.Save(accounts); err != nil {
			return nil, err
		}
	}

	logger.Infof(ctx, "Renewal finished: %d/%d succeeded", summary.Renewed, summary.Selected)

	return summary, nil
}

// CheckKeys validates every stored key against the provider endpoint.
func (s *ServiceImpl) CheckKeys(ctx context.Context) ([]*KeyCheck, error) {
	accounts, err := s.store.Load()
	if err != nil {
		return nil, err
	}

	checks := make([]*KeyCheck, 0, len(accounts))

	for _, account := range accounts {
		check := &KeyCheck{Name: account.Name}

		if account.APIKey == "" {
			check.Err = ErrMissingAPIKey
		} else {
			check.Err = s.client.ValidateKey(ctx, account.APIKey)
		}

		checks = append(checks, check)
	}

	return checks, nil
}

// JoinedAPIKeys returns the comma-separated key list for the router config.
func (s *ServiceImpl) JoinedAPIKeys(_ context.Context) (string, error) {
	accounts, err := s.store.Load()
	if err != nil {
		return "", err
	}

	return JoinAPIKeys(accounts), nil
}

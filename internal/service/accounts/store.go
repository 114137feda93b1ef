package accounts

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dypbi/iflow-manager/internal/constants"
)

// Store persists accounts as a JSON file ({"accounts": [...]}).
// The format is shared with earlier tooling, so it is kept as-is:
// a missing file simply means no accounts yet.
type Store struct {
	// path is the location of the accounts JSON file.
	path string
}

// Static error definitions for better error handling.
var (
	// ErrAccountNotFound indicates the requested account does not exist.
	ErrAccountNotFound = errors.New("account not found")
	// ErrDuplicateAccount indicates an account with the same cookie already exists.
	ErrDuplicateAccount = errors.New("account already exists")
	// ErrMissingAPIKey indicates an account has no issued key to work with.
	ErrMissingAPIKey = errors.New("account has no API key")
)

// NewStore creates a store over the given accounts file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads all stored accounts.
// A missing file yields an empty slice, not an error.
func (s *Store) Load() ([]*Account, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to read accounts file: %w", err)
	}

	var parsed accountsFile
	if err = json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse accounts file: %w", err)
	}

	return parsed.Accounts, nil
}

// Save writes all accounts back to disk, creating the parent folder if needed.
func (s *Store) Save(accounts []*Account) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, constants.DefaultFolderPermissions); err != nil {
			return fmt.Errorf("failed to create accounts folder: %w", err)
		}
	}

	data, err := json.MarshalIndent(accountsFile{Accounts: accounts}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal accounts: %w", err)
	}

	if err = os.WriteFile(s.path, data, constants.DefaultFilePermissions); err != nil {
		return fmt.Errorf("failed to write accounts file: %w", err)
	}

	return nil
}

// JoinAPIKeys joins the non-empty keys of the given accounts into the
// comma-separated list the router provider config (and the signing keyring)
// consumes.
func JoinAPIKeys(accounts []*Account) string {
	keys := make([]string, 0, len(accounts))

	for _, account := range accounts {
		if account.APIKey != "" {
			keys = append(keys, account.APIKey)
		}
	}

	return strings.Join(keys, ",")
}

package accounts

import (
	"time"

	"github.com/dustin/go-humanize"
)

// Account is one stored iFlow account.
// Field names mirror the on-disk JSON, which predates this tool.
type Account struct {
	// BXAuth is the platform session cookie used to (re)issue the API key.
	BXAuth string `json:"BXAuth"`
	// APIKey is the currently issued credential.
	APIKey string `json:"apiKey"`
	// Name is the account display name, e.g. a masked phone number.
	Name string `json:"name"`
	// ExpireTime is the key expiry in ExpireTimeLayout, as the platform reports it.
	ExpireTime string `json:"expireTime"`
}

// accountsFile is the envelope of the accounts JSON file.
type accountsFile struct {
	Accounts []*Account `json:"accounts"`
}

// ExpireTimeLayout is the platform's expiry timestamp layout.
const ExpireTimeLayout = "2006-01-02 15:04"

// Status classifies how close an account's key is to expiry.
type Status string

const (
	// StatusUnknown means the expiry timestamp is missing or unparseable.
	StatusUnknown Status = "unknown"
	// StatusExpired means the key has already expired.
	StatusExpired Status = "expired"
	// StatusExpiring means the key expires within the renew threshold.
	StatusExpiring Status = "expiring"
	// StatusNormal means the key has comfortable time left.
	StatusNormal Status = "normal"
)

// ExpiresAt parses the account's expiry timestamp.
// The second return value is false when the timestamp is missing or malformed.
func (a *Account) ExpiresAt() (time.Time, bool) {
	parsed, err := time.ParseInLocation(ExpireTimeLayout, a.ExpireTime, time.Local)
	if err != nil {
		return time.Time{}, false
	}

	return parsed, true
}

// ExpiryStatus classifies the account's key against the given threshold.
func (a *Account) ExpiryStatus(now time.Time, threshold time.Duration) Status {
	expiresAt, ok := a.ExpiresAt()
	if !ok {
		return StatusUnknown
	}

	remaining := expiresAt.Sub(now)

	switch {
	case remaining <= 0:
		return StatusExpired
	case remaining < threshold:
		return StatusExpiring
	default:
		return StatusNormal
	}
}

// RemainingText renders the time until expiry for humans, e.g. "3 days from now".
func (a *Account) RemainingText() string {
	expiresAt, ok := a.ExpiresAt()
	if !ok {
		return string(StatusUnknown)
	}

	return humanize.Time(expiresAt)
}

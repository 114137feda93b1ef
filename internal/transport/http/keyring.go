package http

import (
	"strings"
	"sync"
)

// Keyring holds an ordered pool of API keys and hands them out round-robin.
// It is configured once at construction: later changes to the source
// configuration are not observed, clients rebuild their transport instead.
// All methods are safe for concurrent use.
type Keyring struct {
	// mu guards cursor. Selecting a key and advancing the cursor
	// must be a single read-modify-write, otherwise two concurrent
	// requests could sign with the same credential or skip one.
	mu sync.Mutex
	// keys is the immutable credential pool, in configured order.
	keys []string
	// cursor is the index of the key returned by the next call to Next.
	cursor int
}

// ParseAPIKeys splits a comma-separated credential list into individual keys.
// Entries are trimmed of surrounding whitespace and empty entries are dropped,
// so " k1 , k2 ,,k3 " parses to ["k1" "k2" "k3"].
func ParseAPIKeys(raw string) []string {
	var keys []string

	for _, entry := range strings.Split(raw, ",") {
		if key := strings.TrimSpace(entry); key != "" {
			keys = append(keys, key)
		}
	}

	return keys
}

// NewKeyring creates a keyring over the given keys.
// An empty or nil slice is valid: the keyring then reports no credential
// on every call instead of failing.
func NewKeyring(keys []string) *Keyring {
	return &Keyring{keys: keys}
}

// NewKeyringFromConfig creates a keyring from a raw comma-separated
// credential list, as stored in the provider configuration.
func NewKeyringFromConfig(raw string) *Keyring {
	return NewKeyring(ParseAPIKeys(raw))
}

// Next returns the current key and its pool index, then advances the cursor,
// wrapping to the first key after the last one.
// When the pool is empty it returns ("", 0, false) and the cursor stays put.
func (k *Keyring) Next() (key string, index int, ok bool) {
	k.mu.Lock()
	defer k.mu.Unlock()

	if len(k.keys) == 0 {
		return "", 0, false
	}

	index = k.cursor
	key = k.keys[index]
	k.cursor = (k.cursor + 1) % len(k.keys)

	return key, index, true
}

// Size returns the number of keys in the pool.
func (k *Keyring) Size() int {
	return len(k.keys)
}

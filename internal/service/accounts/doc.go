// Package accounts manages the stored iFlow accounts: the JSON store on disk,
// key expiry classification, and renewal of expired or expiring keys through
// the platform client.
package accounts

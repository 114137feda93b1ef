// Package app provides the main application logic for managing iFlow accounts.
// It wires the platform client, the account store, and the router sync service,
// and executes the commands parsed by the cmd package.
package app

// Package iflow implements the client for the iFlow platform API.
// It fetches API keys and profile names for accounts authenticated by their
// BXAuth cookie, and validates issued keys against the provider endpoint.
package iflow

// Package auth provides browser-based authentication for the iFlow platform.
//
// It opens a real browser via go-rod, lets the user complete the login on
// platform.iflow.cn, and captures the BXAuth session cookie once it appears.
package auth

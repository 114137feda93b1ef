// Package utils provides small helpers shared across the application:
// User-Agent providers for HTTP transports, credential masking for logs
// and display, content-type detection, and regex extraction utilities.
package utils

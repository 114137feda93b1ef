package iflow

import "errors"

// Static error definitions for better error handling.
var (
	// ErrUnexpectedHTTPStatus indicates an unexpected HTTP status code was received.
	ErrUnexpectedHTTPStatus = errors.New("unexpected HTTP status")
	// ErrKeyRequestRejected indicates the platform refused to issue a key.
	ErrKeyRequestRejected = errors.New("platform rejected the API key request")
	// ErrEmptyKeyInfo indicates the platform answered success without key material.
	ErrEmptyKeyInfo = errors.New("platform returned no key material")
	// ErrInvalidAPIKey indicates the provider endpoint refused the key.
	ErrInvalidAPIKey = errors.New("API key was rejected by the provider")
)

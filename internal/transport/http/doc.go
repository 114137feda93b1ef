// Package http provides custom HTTP transport utilities:
// API-key rotation, iFlow request signing, request/response logging,
// and User-Agent header injection.
// Everything here is wired as http.RoundTripper middleware,
// so clients compose the pieces they need.
package http

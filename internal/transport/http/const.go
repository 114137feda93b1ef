package http

import "time"

const (
	// DefaultTimeout is the default timeout duration for HTTP requests.
	DefaultTimeout = 30 * time.Second

	// DefaultUserAgent is the default User-Agent string used for platform HTTP requests.
	// It mimics a common browser User-Agent because the profile page refuses plain clients.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36" //nolint: lll

	// SigningUserAgent identifies this client on signed provider requests.
	// It is part of the signed message, so changing it invalidates recorded signatures.
	SigningUserAgent = "iflow-cli/0.1.0 (external, cli)"
)

// Header names attached to every signed provider request.
const (
	// HeaderUserAgent carries the fixed client identifier.
	HeaderUserAgent = "user-agent"
	// HeaderSessionID carries a fresh per-request UUID v4.
	HeaderSessionID = "session-id"
	// HeaderConversationID is always sent empty, reserved by the provider.
	HeaderConversationID = "conversation-id"
	// HeaderTimestamp carries the request wall-clock time as decimal epoch milliseconds.
	HeaderTimestamp = "x-iflow-timestamp"
	// HeaderSignature carries the lowercase hex HMAC-SHA256 signature,
	// or an empty value when no credential is configured.
	HeaderSignature = "x-iflow-signature"
)

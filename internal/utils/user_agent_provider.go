package utils

//go:generate $MOCKGEN -source=user_agent_provider.go -destination=mocks/user_agent_provider_mock.go

// UserAgentProvider supplies the User-Agent string for outgoing requests.
// The transport layer asks a provider instead of holding a string so that
// platform clients (browser-looking agent) and signed provider clients
// (fixed client identifier) can share the same injector.
type UserAgentProvider interface {
	// GetUserAgent returns the User-Agent string to send.
	GetUserAgent() string
}

// SimpleUserAgentProvider returns the same User-Agent for every request.
// Both agents this tool sends are fixed strings, so this is the only
// implementation outside of test mocks.
type SimpleUserAgentProvider struct {
	// userAgent is the User-Agent string to return.
	userAgent string
}

// NewSimpleUserAgentProvider creates a provider around a fixed User-Agent string.
func NewSimpleUserAgentProvider(userAgent string) UserAgentProvider {
	return &SimpleUserAgentProvider{userAgent: userAgent}
}

// GetUserAgent returns the configured User-Agent string.
func (p *SimpleUserAgentProvider) GetUserAgent() string {
	return p.userAgent
}

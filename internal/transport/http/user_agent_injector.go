package http

import (
	"net/http"

	"github.com/dypbi/iflow-manager/internal/utils"
)

// UserAgentInjector is an http.RoundTripper that fills in a missing
// User-Agent header. The iFlow platform serves its profile page only to
// browser-looking clients, so platform requests go through this injector
// with a browser User-Agent while signed provider requests carry the
// fixed client identifier instead.
type UserAgentInjector struct {
	// next is the underlying HTTP round tripper.
	next http.RoundTripper
	// userAgentProvider supplies the User-Agent string to inject.
	userAgentProvider utils.UserAgentProvider
}

// NewUserAgentInjector wraps next so that every request leaving it carries
// a User-Agent header. A header already set on the request wins.
func NewUserAgentInjector(next http.RoundTripper, userAgentProvider utils.UserAgentProvider) http.RoundTripper {
	return &UserAgentInjector{
		next:              next,
		userAgentProvider: userAgentProvider,
	}
}

// RoundTrip implements the http.RoundTripper interface.
func (t *UserAgentInjector) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get(HeaderUserAgent) == "" {
		req.Header.Set(HeaderUserAgent, t.userAgentProvider.GetUserAgent())
	}

	return t.next.RoundTrip(req)
}

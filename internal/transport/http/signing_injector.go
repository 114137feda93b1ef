package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/dypbi/iflow-manager/internal/logger"
	"github.com/dypbi/iflow-manager/internal/utils"
)

// SigningInjector is a custom http.RoundTripper that attaches the iFlow
// signing headers to every outgoing request: a fixed client User-Agent,
// a fresh session ID, the request timestamp, and an HMAC-SHA256 signature
// keyed by the next credential from the keyring.
//
// The request body is passed through untouched; the injector clones the
// request and only overrides headers. It never fails on its own: with an
// empty keyring the request still goes out, carrying an empty signature.
type SigningInjector struct {
	// next is the underlying HTTP round tripper.
	next http.RoundTripper
	// keyring supplies credentials in round-robin order.
	keyring *Keyring
	// userAgent is the fixed client identifier included in the signed message.
	userAgent string
	// now returns the current wall-clock time. Overridable in tests.
	now func() time.Time
	// newSessionID returns a fresh session identifier. Overridable in tests.
	newSessionID func() string
}

// NewSigningInjector creates and returns a new instance of SigningInjector.
// It takes an underlying http.RoundTripper and the keyring to rotate through.
func NewSigningInjector(next http.RoundTripper, keyring *Keyring) *SigningInjector {
	return &SigningInjector{
		next:         next,
		keyring:      keyring,
		userAgent:    SigningUserAgent,
		now:          time.Now,
		newSessionID: uuid.NewString,
	}
}

// RoundTrip executes a single HTTP transaction with the signing headers attached.
// It implements the http.RoundTripper interface.
func (t *SigningInjector) RoundTrip(req *http.Request) (*http.Response, error) {
	if req == nil {
		return nil, ErrNilRequest
	}

	clone := req.Clone(req.Context())
	for name, value := range t.SigningHeaders(req) {
		clone.Header.Set(name, value)
	}

	return t.next.RoundTrip(clone)
}

// SigningHeaders builds the full set of headers for one request.
// Exactly five keys are always present; the signature value is empty
// when no credential is available.
func (t *SigningInjector) SigningHeaders(req *http.Request) map[string]string {
	var (
		sessionID = t.newSessionID()
		timestamp = t.now().UnixMilli()
		signature string
	)

	if key, index, ok := t.keyring.Next(); ok {
		signature = ComputeSignature(t.userAgent, sessionID, timestamp, key)

		if req != nil {
			logger.Debugf(req.Context(), "Signing request with key #%d (%s)",
				index, utils.MaskAPIKey(key))
		}
	}

	return map[string]string{
		HeaderUserAgent:      t.userAgent,
		HeaderSessionID:      sessionID,
		HeaderConversationID: "",
		HeaderTimestamp:      strconv.FormatInt(timestamp, 10),
		HeaderSignature:      signature,
	}
}

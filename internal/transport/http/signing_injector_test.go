package http

import (
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sessionIDPattern matches the canonical UUID v4 layout:
// 36 characters, hyphens at positions 9, 14, 19 and 24,
// version nibble 4 and variant nibble in {8, 9, a, b}.
var sessionIDPattern = regexp.MustCompile(
	`^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

// captureTransport records the requests it receives and answers 200 OK.
type captureTransport struct {
	requests []*http.Request
}

func (c *captureTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	c.requests = append(c.requests, req)

	return &http.Response{
		StatusCode: http.StatusOK,
		Header:     make(http.Header),
		Body:       io.NopCloser(strings.NewReader("")),
		Request:    req,
	}, nil
}

// newFixedInjector returns an injector with deterministic time and session ID.
func newFixedInjector(next http.RoundTripper, keyring *Keyring) *SigningInjector {
	injector := NewSigningInjector(next, keyring)
	injector.now = func() time.Time { return time.UnixMilli(1700000000000) }
	injector.newSessionID = func() string { return "11111111-2222-4333-8444-555555555555" }

	return injector
}

// TestSigningInjector_Headers tests that exactly the five signing headers are
// produced and that the signature matches the independently computed digest.
func TestSigningInjector_Headers(t *testing.T) {
	t.Parallel()

	injector := newFixedInjector(http.DefaultTransport, NewKeyring([]string{"abc12345"}))

	req, err := http.NewRequest(http.MethodPost, "http://example.com", nil) //nolint:noctx // Test code.
	require.NoError(t, err)

	headers := injector.SigningHeaders(req)
	assert.Len(t, headers, 5)

	assert.Equal(t, SigningUserAgent, headers[HeaderUserAgent])
	assert.Equal(t, "11111111-2222-4333-8444-555555555555", headers[HeaderSessionID])
	assert.Equal(t, "", headers[HeaderConversationID])
	assert.Equal(t, "1700000000000", headers[HeaderTimestamp])
	assert.Equal(t,
		"51f1a1dfaf44706a942c762284b56831f3edbda30190425b323f815f65fb0516",
		headers[HeaderSignature])
}

// TestSigningInjector_EmptyKeyring tests that a request without any
// configured credential still succeeds and carries an empty signature,
// not a hash computed with an empty key.
func TestSigningInjector_EmptyKeyring(t *testing.T) {
	t.Parallel()

	injector := newFixedInjector(http.DefaultTransport, NewKeyring(nil))

	headers := injector.SigningHeaders(nil)
	assert.Len(t, headers, 5)

	assert.Equal(t, SigningUserAgent, headers[HeaderUserAgent])
	assert.NotEmpty(t, headers[HeaderSessionID])
	assert.NotEmpty(t, headers[HeaderTimestamp])
	assert.Empty(t, headers[HeaderSignature])
}

// TestSigningInjector_SessionIDFormat tests that generated session IDs follow
// the UUID v4 textual layout and are fresh per request.
func TestSigningInjector_SessionIDFormat(t *testing.T) {
	t.Parallel()

	injector := NewSigningInjector(http.DefaultTransport, NewKeyring([]string{"k1"}))

	seen := make(map[string]struct{})

	for range 10 {
		headers := injector.SigningHeaders(nil)
		sessionID := headers[HeaderSessionID]

		assert.Regexp(t, sessionIDPattern, sessionID)

		_, duplicate := seen[sessionID]
		assert.False(t, duplicate, "session ID %q repeated", sessionID)

		seen[sessionID] = struct{}{}
	}
}

// TestSigningInjector_RoundTrip tests the full transaction: the signing
// headers reach the server and the request body arrives unchanged.
func TestSigningInjector_RoundTrip(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, readErr := io.ReadAll(r.Body)
		assert.NoError(t, readErr)
		assert.Equal(t, `{"prompt":"hello"}`, string(body))

		assert.Equal(t, SigningUserAgent, r.Header.Get(HeaderUserAgent))
		assert.Regexp(t, sessionIDPattern, r.Header.Get(HeaderSessionID))
		assert.NotEmpty(t, r.Header.Get(HeaderTimestamp))
		assert.Regexp(t, signatureHexPattern, r.Header.Get(HeaderSignature))

		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	injector := NewSigningInjector(http.DefaultTransport, NewKeyring([]string{"abc12345"}))

	req, err := http.NewRequest( //nolint:noctx // Test code.
		http.MethodPost, server.URL, strings.NewReader(`{"prompt":"hello"}`))
	require.NoError(t, err)

	resp, err := injector.RoundTrip(req)
	require.NoError(t, err)

	defer resp.Body.Close() //nolint:errcheck // Test cleanup.

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// The caller's request must stay untouched; only the clone is decorated.
	assert.Empty(t, req.Header.Get(HeaderSignature))
}

// TestSigningInjector_RotatesAcrossRequests tests that consecutive requests
// are signed with consecutive keys from the pool.
func TestSigningInjector_RotatesAcrossRequests(t *testing.T) {
	t.Parallel()

	var (
		capture = &captureTransport{}
		keys    = []string{"abc12345", "def67890"}
	)

	injector := newFixedInjector(capture, NewKeyring(keys))

	for range 4 {
		req, err := http.NewRequest(http.MethodGet, "http://example.com", nil) //nolint:noctx // Test code.
		require.NoError(t, err)

		resp, err := injector.RoundTrip(req)
		require.NoError(t, err)
		resp.Body.Close() //nolint:errcheck,gosec // Test cleanup.
	}

	require.Len(t, capture.requests, 4)

	// With fixed time and session ID, the signature depends only on the key,
	// so the header sequence must alternate between the two keys' digests.
	for i, req := range capture.requests {
		expected := ComputeSignature(
			SigningUserAgent,
			"11111111-2222-4333-8444-555555555555",
			1700000000000,
			keys[i%len(keys)])

		assert.Equal(t, expected, req.Header.Get(HeaderSignature), "request %d", i)
	}
}

// TestSigningInjector_NilRequest tests the nil-request guard.
func TestSigningInjector_NilRequest(t *testing.T) {
	t.Parallel()

	injector := NewSigningInjector(http.DefaultTransport, NewKeyring([]string{"k1"}))

	resp, err := injector.RoundTrip(nil) //nolint:bodyclose // No response on error.
	require.ErrorIs(t, err, ErrNilRequest)
	assert.Nil(t, resp)
}

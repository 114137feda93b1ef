package http

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

// signatureHexPattern matches a full SHA-256 digest in lowercase hex.
var signatureHexPattern = regexp.MustCompile(`^[0-9a-f]{64}$`)

// TestComputeSignature_KnownVector tests the signature against a digest
// computed by an independent HMAC implementation.
func TestComputeSignature_KnownVector(t *testing.T) {
	t.Parallel()

	const (
		sessionID = "11111111-2222-4333-8444-555555555555"
		timestamp = int64(1700000000000)
	)

	tests := []struct {
		name     string
		apiKey   string
		expected string
	}{
		{
			name:     "regular key",
			apiKey:   "abc12345",
			expected: "51f1a1dfaf44706a942c762284b56831f3edbda30190425b323f815f65fb0516",
		},
		{
			// A present-but-empty key still yields a real HMAC,
			// distinct from the empty absence marker.
			name:     "empty key",
			apiKey:   "",
			expected: "51bc09e9cd8b217cf9b320563a59f3e8c0b7905e37e52e37686668199507b8b1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := ComputeSignature(SigningUserAgent, sessionID, timestamp, tt.apiKey)
			assert.Equal(t, tt.expected, got)
			assert.Regexp(t, signatureHexPattern, got)
		})
	}
}

// TestComputeSignature_MessageTemplate tests that the signed message is
// exactly "{userAgent}:{sessionID}:{timestamp}" by recomputing the digest
// over that template with the standard library.
func TestComputeSignature_MessageTemplate(t *testing.T) {
	t.Parallel()

	const (
		userAgent = "agent/1.0"
		sessionID = "session"
		timestamp = int64(42)
		apiKey    = "k1"
	)

	mac := hmac.New(sha256.New, []byte(apiKey))
	mac.Write(fmt.Appendf(nil, "%s:%s:%d", userAgent, sessionID, timestamp))
	expected := hex.EncodeToString(mac.Sum(nil))

	assert.Equal(t, expected, ComputeSignature(userAgent, sessionID, timestamp, apiKey))
}

// TestComputeSignature_Deterministic tests that identical inputs always
// produce identical signatures.
func TestComputeSignature_Deterministic(t *testing.T) {
	t.Parallel()

	first := ComputeSignature("ua", "sid", 1000, "key")
	second := ComputeSignature("ua", "sid", 1000, "key")

	assert.Equal(t, first, second)
}

// TestComputeSignature_InputSensitivity tests that changing any input
// changes the signature.
func TestComputeSignature_InputSensitivity(t *testing.T) {
	t.Parallel()

	base := ComputeSignature("ua", "sid", 1000, "key")

	assert.NotEqual(t, base, ComputeSignature("ua2", "sid", 1000, "key"))
	assert.NotEqual(t, base, ComputeSignature("ua", "sid2", 1000, "key"))
	assert.NotEqual(t, base, ComputeSignature("ua", "sid", 1001, "key"))
	assert.NotEqual(t, base, ComputeSignature("ua", "sid", 1000, "key2"))
}

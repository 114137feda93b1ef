package http

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// ComputeSignature builds the iFlow request signature:
// lowercase hex HMAC-SHA256 over "{userAgent}:{sessionID}:{timestamp}",
// keyed by the API key.
//
// The key may be empty and still produces a real HMAC; deciding whether a
// credential exists at all is the caller's job (see Keyring.Next). A missing
// credential maps to an empty signature header, never to HMAC with an empty key.
func ComputeSignature(userAgent, sessionID string, timestamp int64, apiKey string) string {
	message := fmt.Sprintf("%s:%s:%d", userAgent, sessionID, timestamp)

	mac := hmac.New(sha256.New, []byte(apiKey))
	_, _ = mac.Write([]byte(message))

	return hex.EncodeToString(mac.Sum(nil))
}

package iflow

// KeyInfo is the API key material issued for an account.
type KeyInfo struct {
	// APIKey is the issued credential.
	APIKey string `json:"apiKey"`
	// ExpireTime is the key expiry in the platform's "2006-01-02 15:04" layout.
	ExpireTime string `json:"expireTime"`
}

// apiKeyResponse is the envelope of the apikey endpoint.
type apiKeyResponse struct {
	// Success reports whether the platform accepted the request.
	Success bool `json:"success"`
	// Message carries the platform's failure description, if any.
	Message string `json:"message"`
	// Data holds the issued key material.
	Data *KeyInfo `json:"data"`
}

// apiKeyRequest is the body of the apikey endpoint.
// The platform issues the key for the authenticated account;
// the name field stays empty.
type apiKeyRequest struct {
	Name string `json:"name"`
}

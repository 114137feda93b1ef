package iflow

//go:generate $MOCKGEN -source=client.go -destination=mocks/client_mock.go

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/dypbi/iflow-manager/internal/config"
	"github.com/dypbi/iflow-manager/internal/logger"
	http_transport "github.com/dypbi/iflow-manager/internal/transport/http"
	"github.com/dypbi/iflow-manager/internal/utils"
)

// Client defines the interface for interacting with the iFlow platform.
type Client interface {
	// FetchKeyInfo requests the API key and its expiry for the account
	// authenticated by the given BXAuth cookie.
	FetchKeyInfo(ctx context.Context, bxauth string) (*KeyInfo, error)
	// FetchProfileName extracts the account display name from the profile page.
	FetchProfileName(ctx context.Context, bxauth string) (string, error)
	// ValidateKey sends a signed request to the provider endpoint and reports
	// whether the key is accepted.
	ValidateKey(ctx context.Context, apiKey string) error
}

// ClientImpl implements the Client interface for interacting with the iFlow platform.
type ClientImpl struct {
	// cfg contains the application configuration.
	cfg *config.Config
	// httpClient is the HTTP client for platform requests.
	httpClient *http.Client
	// profileNamesCache caches extracted profile names per BXAuth cookie;
	// the profile page is stable for the cookie's lifetime.
	profileNamesCache *lru.Cache[string, string]
}

const (
	// apiKeyURI is the URI path of the API key issuing endpoint.
	apiKeyURI = "/api/openapi/apikey"
	// profileURI is the URI path of the profile page.
	profileURI = "/profile"
	// providerModelsURI is the URI path listing provider models, used for key checks.
	providerModelsURI = "/models"

	// bxAuthCookieName is the name of the platform session cookie.
	bxAuthCookieName = "BXAuth"

	// profileNamesCacheSize bounds the profile-name cache.
	// One entry per stored account; far more than anyone manages.
	profileNamesCacheSize = 128
)

// NewClient creates and returns a new instance of ClientImpl.
// It initializes the HTTP client with the logging and User-Agent transports.
func NewClient(cfg *config.Config) (Client, error) {
	httpClient := &http.Client{
		Transport: http_transport.NewUserAgentInjector(
			http_transport.NewLogTransport(http.DefaultTransport, 0),
			utils.NewSimpleUserAgentProvider(http_transport.DefaultUserAgent)),
		Timeout: cfg.ParsedRequestTimeout,
	}

	profileNamesCache, err := lru.New[string, string](profileNamesCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create profile names cache: %w", err)
	}

	return &ClientImpl{
		cfg:               cfg,
		httpClient:        httpClient,
		profileNamesCache: profileNamesCache,
	}, nil
}

// FetchKeyInfo requests the API key and expiry for the account behind the cookie.
func (c *ClientImpl) FetchKeyInfo(ctx context.Context, bxauth string) (*KeyInfo, error) {
	body, err := json.Marshal(apiKeyRequest{Name: ""})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx,
		http.MethodPost, c.cfg.PlatformBaseURL+apiKeyURI, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json, text/plain, */*")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Origin", c.cfg.PlatformBaseURL)
	req.AddCookie(&http.Cookie{Name: bxAuthCookieName, Value: bxauth})

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch key info: %w", err)
	}

	defer resp.Body.Close() //nolint:errcheck // Error on close is not critical here.

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedHTTPStatus, resp.StatusCode)
	}

	var parsed apiKeyResponse
	if err = json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode key info response: %w", err)
	}

	if !parsed.Success {
		if parsed.Message != "" {
			return nil, fmt.Errorf("%w: %s", ErrKeyRequestRejected, parsed.Message)
		}

		return nil, ErrKeyRequestRejected
	}

	if parsed.Data == nil || parsed.Data.APIKey == "" {
		return nil, ErrEmptyKeyInfo
	}

	logger.Debugf(ctx, "Fetched key %s, expires at %s",
		utils.MaskAPIKey(parsed.Data.APIKey), parsed.Data.ExpireTime)

	return parsed.Data, nil
}

// FetchProfileName extracts the account display name from the profile page.
// Names are cached per cookie; a cache hit skips the request entirely.
func (c *ClientImpl) FetchProfileName(ctx context.Context, bxauth string) (string, error) {
	if name, ok := c.profileNamesCache.Get(bxauth); ok {
		return name, nil
	}

	req, err := http.NewRequestWithContext(ctx,
		http.MethodGet, c.cfg.PlatformBaseURL+profileURI+"?tab=apiKey", nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept",
		"text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,image/apng,*/*;q=0.8")
	req.Header.Set("Accept-Language", "zh-CN,zh;q=0.9,en;q=0.8")
	req.AddCookie(&http.Cookie{Name: bxAuthCookieName, Value: bxauth})

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch profile: %w", err)
	}

	defer resp.Body.Close() //nolint:errcheck // Error on close is not critical here.

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: %d", ErrUnexpectedHTTPStatus, resp.StatusCode)
	}

	html, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read profile page: %w", err)
	}

	name := extractProfileName(string(html))
	if name != UnknownProfileName {
		c.profileNamesCache.Add(bxauth, name)
	}

	return name, nil
}

// ValidateKey sends a signed models request to the provider endpoint.
// The request goes through the same signing transport the router's
// header transformer applies, so a passing check also exercises the
// signature the provider expects.
func (c *ClientImpl) ValidateKey(ctx context.Context, apiKey string) error {
	signingClient := &http.Client{
		Transport: http_transport.NewSigningInjector(
			http_transport.NewLogTransport(http.DefaultTransport, 0),
			http_transport.NewKeyring([]string{apiKey})),
		Timeout: c.cfg.ParsedRequestTimeout,
	}

	req, err := http.NewRequestWithContext(ctx,
		http.MethodGet, providerModelsURL(c.cfg.ProviderAPIURL), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := signingClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach provider: %w", err)
	}

	defer resp.Body.Close() //nolint:errcheck // Error on close is not critical here.

	switch resp.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrInvalidAPIKey
	default:
		return fmt.Errorf("%w: %d", ErrUnexpectedHTTPStatus, resp.StatusCode)
	}
}

// providerModelsURL derives the models listing endpoint from the configured
// chat-completions URL, e.g. …/v1/chat/completions -> …/v1/models.
func providerModelsURL(completionsURL string) string {
	base := strings.TrimSuffix(completionsURL, "/chat/completions")

	return base + providerModelsURI
}

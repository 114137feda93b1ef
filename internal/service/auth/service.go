package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-rod/rod"

	"github.com/dypbi/iflow-manager/internal/config"
	"github.com/dypbi/iflow-manager/internal/logger"
)

const (
	// browserSlowMotionDelay is the delay between browser actions for visibility during debugging.
	browserSlowMotionDelay = 200 * time.Millisecond

	// iflowDomain is the main iFlow domain.
	iflowDomain = "iflow.cn"

	// bxAuthCookieName is the name of the session cookie to capture.
	bxAuthCookieName = "BXAuth"

	// loginPollInterval is the interval for polling the login status.
	loginPollInterval = 1 * time.Second

	// maxLoginWaitTime is the maximum time to wait for user to complete login.
	maxLoginWaitTime = 10 * time.Minute

	// sessionEstablishDelay is the delay after login to allow the session to fully establish.
	sessionEstablishDelay = 2 * time.Second

	// browserCleanupDelay is the delay to wait for Chrome to release file locks before cleanup.
	browserCleanupDelay = 500 * time.Millisecond
)

var (
	// ErrLoginTimeout is returned when login takes too long.
	ErrLoginTimeout = errors.New("login timeout exceeded")

	// ErrBrowserClosed is returned when the browser is closed by the user.
	ErrBrowserClosed = errors.New("browser was closed by user")

	// ErrNavigatedAway is returned when the user navigates away from the login flow.
	ErrNavigatedAway = errors.New("user navigated away from login flow")

	// ErrCookieNotFound is returned when the session cookie cannot be found after login.
	ErrCookieNotFound = errors.New("BXAuth cookie not found - login may have failed")
)

// Service provides browser-based authentication.
type Service interface {
	// LoginAndExtractCookie opens a browser, waits for the user to log in,
	// then extracts the BXAuth session cookie.
	LoginAndExtractCookie(ctx context.Context) (string, error)
}

// ServiceImpl provides browser-based authentication for iFlow.
type ServiceImpl struct {
	cfg     *config.Config
	browser *rod.Browser
	page    *rod.Page
	// tempDir stores the temporary profile directory for cleanup.
	tempDir string
}

// NewService creates a new browser authentication service.
func NewService(cfg *config.Config) (*ServiceImpl, error) {
	return &ServiceImpl{
		cfg: cfg,
	}, nil
}

// LoginAndExtractCookie opens a browser, waits for the user to log in,
// then extracts the BXAuth session cookie.
func (s *ServiceImpl) LoginAndExtractCookie(ctx context.Context) (string, error) {
	logger.Info(ctx, "Starting browser-based authentication")

	if err := s.initBrowser(ctx); err != nil {
		return "", fmt.Errorf("failed to initialize browser: %w", err)
	}

	defer s.cleanup(ctx)

	cookie, err := s.waitForUserLogin(ctx)
	if err != nil {
		return "", fmt.Errorf("login failed: %w", err)
	}

	if cookie == "" {
		// The poll loop normally hands the cookie over directly. When it
		// does not, dump whatever the browser holds and look there.
		cookie, err = s.extractCookieFromBrowser(ctx)
		if err != nil {
			return "", fmt.Errorf("failed to extract cookie: %w", err)
		}
	}

	logger.Info(ctx, "Session cookie extracted successfully")

	return cookie, nil
}

package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dypbi/iflow-manager/internal/logger"
)

// waitForUserLogin navigates to the platform and waits until the session
// cookie appears, which is how a completed login shows up.
func (s *ServiceImpl) waitForUserLogin(ctx context.Context) (string, error) {
	logger.Infof(ctx, "Opening %s...", s.cfg.PlatformBaseURL)

	s.page.MustNavigate(s.cfg.PlatformBaseURL)

	logger.Info(ctx, "")
	logger.Info(ctx, "Please complete the login in the browser:")
	logger.Info(ctx, "")
	logger.Info(ctx, "1. Click the login button and sign in with your phone number")
	logger.Info(ctx, "2. Enter the SMS code you receive")
	logger.Info(ctx, "3. Do NOT close the browser - the session is detected automatically")
	logger.Info(ctx, "")
	logger.Info(ctx, "Waiting for login to complete...")

	cookie, err := s.waitForLoginComplete(ctx)
	if err != nil {
		return "", err
	}

	logger.Info(ctx, "Login completed successfully!")

	// Give the session a moment to fully establish.
	time.Sleep(sessionEstablishDelay)

	return cookie, nil
}

// waitForLoginComplete polls the browser until the session cookie shows up.
func (s *ServiceImpl) waitForLoginComplete(ctx context.Context) (string, error) {
	var (
		startTime = time.Now()
		lastURL   string
	)

	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}

		if time.Since(startTime) > maxLoginWaitTime {
			return "", fmt.Errorf("%w: waited for %v", ErrLoginTimeout, maxLoginWaitTime)
		}

		if !s.isBrowserAlive(ctx) {
			return "", ErrBrowserClosed
		}

		currentURL, err := s.getCurrentURL(ctx)
		if err != nil {
			return "", fmt.Errorf("failed to get current URL: %w", err)
		}

		if currentURL != lastURL {
			logger.Debugf(ctx, "URL changed: %s", currentURL)

			lastURL = currentURL
		}

		if err = s.validateLoginURL(currentURL); err != nil {
			return "", err
		}

		if cookie := s.getSessionCookie(ctx); cookie != "" {
			logger.Info(ctx, "Session cookie detected - login successful!")

			return cookie, nil
		}

		time.Sleep(loginPollInterval)
	}
}

// validateLoginURL validates that the user hasn't navigated away from the platform.
func (s *ServiceImpl) validateLoginURL(currentURL string) error {
	// A blank page shows up briefly during redirects.
	if currentURL == "" || currentURL == "about:blank" {
		return nil
	}

	if !strings.Contains(currentURL, iflowDomain) {
		return fmt.Errorf("%w to: %s", ErrNavigatedAway, currentURL)
	}

	return nil
}

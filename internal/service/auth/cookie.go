package auth

import (
	"context"

	"github.com/dypbi/iflow-manager/internal/logger"
)

// getSessionCookie retrieves the BXAuth cookie value if it exists, without logging.
func (s *ServiceImpl) getSessionCookie(ctx context.Context) string {
	defer func() {
		if r := recover(); r != nil {
			logger.Debugf(ctx, "getSessionCookie panic recovered: %v", r)
		}
	}()

	cookies, err := s.page.Cookies([]string{s.cfg.PlatformBaseURL})
	if err != nil {
		return ""
	}

	for _, cookie := range cookies {
		if cookie.Name == bxAuthCookieName && cookie.Value != "" {
			return cookie.Value
		}
	}

	return ""
}

// extractCookieFromBrowser extracts the session cookie from all browser cookies,
// reporting what was available when the lookup fails.
func (s *ServiceImpl) extractCookieFromBrowser(ctx context.Context) (string, error) {
	logger.Info(ctx, "Extracting session cookie from browser...")

	cookies := s.page.MustCookies()
	logger.Debugf(ctx, "Found %d cookies", len(cookies))

	for _, cookie := range cookies {
		if cookie.Name == bxAuthCookieName && cookie.Value != "" {
			logger.Debugf(ctx, "Found '%s' cookie, length: %d characters",
				bxAuthCookieName, len(cookie.Value))

			return cookie.Value, nil
		}
	}

	logger.Error(ctx, "Session cookie not found. Available cookies:")

	for _, cookie := range cookies {
		logger.Errorf(ctx, "%s (domain: %s)", cookie.Name, cookie.Domain)
	}

	return "", ErrCookieNotFound
}

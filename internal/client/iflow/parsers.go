package iflow

import (
	"regexp"

	"github.com/dypbi/iflow-manager/internal/utils"
)

// UnknownProfileName is reported when no account name can be extracted.
const UnknownProfileName = "unknown"

// Profile pages don't expose the account name through an API, so it is
// scraped from the HTML. The masked phone number is tried first since it is
// what the platform renders for every account.
//
//nolint:gochecknoglobals // Immutable, pre-compiled regex patterns used as constants.
var (
	maskedPhonePattern = regexp.MustCompile(`(?P<name>\d{3}\*{4}\d{4})`)
	phoneFieldPattern  = regexp.MustCompile(`"phone"\s*:\s*"(?P<name>[^"]+)"`)
	nameFieldPattern   = regexp.MustCompile(`"name"\s*:\s*"(?P<name>[^"]+)"`)
)

// extractProfileName pulls the account name out of the profile page HTML.
// It returns UnknownProfileName when none of the known shapes match.
func extractProfileName(html string) string {
	for _, pattern := range []*regexp.Regexp{maskedPhonePattern, phoneFieldPattern, nameFieldPattern} {
		if name := utils.ExtractNamedGroup(pattern, "name", html); name != "" {
			return name
		}
	}

	return UnknownProfileName
}

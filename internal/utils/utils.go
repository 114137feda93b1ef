package utils

import (
	"mime"
	"regexp"
	"strings"
)

// maskedKeyPrefixLength is the number of leading key characters kept visible
// when masking a credential for logs and account listings.
const maskedKeyPrefixLength = 8

// textContentTypePatterns is a slice of regular expressions that match content types
// considered to be text-based. This includes "text/*" and "application/json".
//
//nolint:gochecknoglobals // These are immutable, pre-compiled regex patterns and used as constants.
var textContentTypePatterns = []*regexp.Regexp{
	regexp.MustCompile("^text/.+"),
	regexp.MustCompile("^application/json$"),
}

// MaskAPIKey returns a display-safe form of an API key:
// the first few characters followed by an ellipsis.
// Keys at or below the visible length are fully masked,
// since showing them whole would defeat the point.
func MaskAPIKey(key string) string {
	if key == "" {
		return ""
	}

	if len(key) <= maskedKeyPrefixLength {
		return strings.Repeat("*", len(key))
	}

	return key[:maskedKeyPrefixLength] + "..."
}

// ExtractNamedGroup extracts the value of a named capturing group from a regex match.
// It returns an empty string if the group is not found or if there is no match.
func ExtractNamedGroup(re *regexp.Regexp, groupName, input string) string {
	match := re.FindStringSubmatch(input)
	if match == nil {
		return ""
	}

	// Map group names to their corresponding values.
	for i, name := range re.SubexpNames() {
		if name == groupName {
			return match[i]
		}
	}

	return ""
}

// IsTextContentType checks if the given content type represents a text-based format.
// It supports common text content types like "text/*" and "application/json".
// It also checks that the charset, if present, is either "utf-8" or "us-ascii".
func IsTextContentType(contentType string) bool {
	parsedType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}

	for _, pattern := range textContentTypePatterns {
		if !pattern.MatchString(parsedType) {
			continue
		}

		charset := strings.ToLower(params["charset"])

		return charset == "" || charset == "utf-8" || charset == "us-ascii"
	}

	return false
}

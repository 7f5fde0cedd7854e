package tagscrape

import (
	"regexp"
	"strings"
)

// urlPattern accepts an optional http(s) scheme, a dotted host name ending
// in an alphabetic TLD, and an optional path. IP hosts and ports are rejected.
var urlPattern = regexp.MustCompile(`(?i)^(https?://)?(www\.)?([a-z0-9-]+\.)+[a-z]{2,}(/[a-z0-9\-._~:/?#\[\]@!$&'()*+,;=]*)?$`)

// ValidateURL returns EINVALID if rawURL is not an acceptable scrape target.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return Errorf(EINVALID, "URL not provided")
	}
	if !urlPattern.MatchString(rawURL) {
		return Errorf(EINVALID, "invalid URL")
	}
	return nil
}

// NormalizeURL prefixes https:// to a URL accepted without a scheme.
func NormalizeURL(rawURL string) string {
	lower := strings.ToLower(rawURL)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return rawURL
	}
	return "https://" + rawURL
}

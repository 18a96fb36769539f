// Package links holds the pure string helpers of the capture pipeline:
// first-URL extraction from shared text and favicon thumbnail derivation.
package links

import (
	"net/url"
	"regexp"
)

var urlPattern = regexp.MustCompile(`(?i)https?://[\w./?=&%#-]+`)

// ExtractFirstURL scans text for the leftmost URL-shaped substring.
// Multiple URLs in the text resolve to the first occurrence.
func ExtractFirstURL(text string) (string, bool) {
	match := urlPattern.FindString(text)
	if match == "" {
		return "", false
	}
	return match, true
}

// FaviconURL derives a best-effort thumbnail reference for a link as
// "{scheme}://{host}/favicon.ico". This deliberately performs no network
// fetch; a malformed URL yields ok=false, never an error.
func FaviconURL(raw string) (string, bool) {
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "", false
	}
	return parsed.Scheme + "://" + parsed.Host + "/favicon.ico", true
}

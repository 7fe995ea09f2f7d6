package lib

import (
	"net/url"
	"strings"
)

// NormalizeScheme prefixes https:// when the URL carries no scheme
func NormalizeScheme(rawURL string) string {
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return "https://" + rawURL
	}
	return rawURL
}

// IsValidURL reports whether a string parses as an absolute URL after
// scheme normalization
func IsValidURL(rawURL string) bool {
	u, err := url.Parse(NormalizeScheme(rawURL))
	if err != nil {
		return false
	}
	return u.Host != ""
}

// ValidateUrls trims a raw batch, drops blank entries, and checks that
// every survivor parses as an absolute URL. It returns the normalized
// URLs, or ErrNoValidUrls / InvalidURLError. Validation is
// all-or-nothing: a single bad entry fails the whole batch before any
// network activity.
func ValidateUrls(rawUrls []string) ([]string, error) {
	var trimmed []string
	for _, u := range rawUrls {
		u = strings.TrimSpace(u)
		if u == "" {
			continue
		}
		trimmed = append(trimmed, u)
	}
	if len(trimmed) == 0 {
		return nil, ErrNoValidUrls
	}

	var invalid []string
	normalized := make([]string, 0, len(trimmed))
	for _, u := range trimmed {
		if !IsValidURL(u) {
			// Report the string the user actually typed.
			invalid = append(invalid, u)
			continue
		}
		normalized = append(normalized, NormalizeScheme(u))
	}
	if len(invalid) > 0 {
		return nil, &InvalidURLError{Urls: invalid}
	}

	return normalized, nil
}

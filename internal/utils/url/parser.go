package urlutil

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// ValidateURL performs comprehensive URL validation
func ValidateURL(urlStr string) error {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("invalid URL scheme: must be http or https, got %s", parsed.Scheme)
	}

	if parsed.Host == "" {
		return fmt.Errorf("invalid URL: missing host")
	}

	return nil
}

// ResolveURL resolves a possibly-relative href against a base URL and returns a string
func ResolveURL(base, href string) string {
	href = strings.TrimSpace(href)
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	if u.IsAbs() {
		return href
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return href
	}
	return baseURL.ResolveReference(u).String()
}

// ResolveHTTP resolves href against base and reports whether the result is an
// absolute http(s) URL with a host. Unparseable hrefs are rejected.
func ResolveHTTP(base, href string) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return "", false
	}
	if !u.IsAbs() {
		baseURL, err := url.Parse(base)
		if err != nil {
			return "", false
		}
		u = baseURL.ResolveReference(u)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", false
	}
	return u.String(), true
}

// IncrementQueryInt adds step to the integer query parameter name, treating a
// missing or malformed value as zero.
func IncrementQueryInt(rawURL, name string, step int) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid URL: %w", err)
	}
	q := u.Query()
	current, _ := strconv.Atoi(q.Get(name))
	q.Set(name, strconv.Itoa(current+step))
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Slug lower-cases s and joins its words with hyphens
func Slug(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), "-")
}

// Same reports whether two URLs point at the same resource, ignoring a
// trailing slash and the fragment.
func Same(a, b string) bool {
	return Canonical(a) == Canonical(b)
}

// Canonical normalizes a URL for comparison
func Canonical(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return raw
	}
	u.Fragment = ""
	u.Host = strings.ToLower(u.Host)
	u.Path = strings.TrimSuffix(u.Path, "/")
	u.RawQuery = u.Query().Encode()
	return u.String()
}

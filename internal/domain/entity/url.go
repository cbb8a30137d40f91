package entity

import (
	"fmt"
	"net/url"
	"path"
	"strings"
)

// CanonicalURL resolves href against the scheme and host of pageURL.
// Absolute hrefs are kept; fragments are dropped.
func CanonicalURL(pageURL, href string) (string, error) {
	href = strings.TrimSpace(href)
	if href == "" {
		return "", fmt.Errorf("empty href")
	}
	ref, err := url.Parse(href)
	if err != nil {
		return "", fmt.Errorf("parse href %q: %w", href, err)
	}
	ref.Fragment = ""
	if ref.IsAbs() {
		return ref.String(), nil
	}

	base, err := url.Parse(strings.TrimSpace(pageURL))
	if err != nil {
		return "", fmt.Errorf("parse page url %q: %w", pageURL, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return "", fmt.Errorf("page url %q is not absolute", pageURL)
	}
	if strings.HasPrefix(href, "//") {
		ref.Scheme = base.Scheme
		return ref.String(), nil
	}
	root := &url.URL{Scheme: base.Scheme, Host: base.Host}
	return root.ResolveReference(ref).String(), nil
}

// Slug is the last path segment of a canonical URL, e.g. "Lionel_Messi".
func Slug(canonicalURL string) string {
	parsed, err := url.Parse(canonicalURL)
	if err != nil {
		return ""
	}
	return path.Base(strings.TrimRight(parsed.Path, "/"))
}

package urlutil

import (
	"net/url"
	"strings"
)

// Canonicalize applies a deterministic normalization to a URL, producing a canonical form.
// It maps equivalent URL spellings to a single canonical representation.
//
// The normalization follows these rules:
//   - Scheme and host are lowercased
//   - A leading "www." label on the host is stripped
//   - Path is cleaned (collapsed "//" runs, trailing slashes removed except root)
//   - Fragments are removed
//   - Query parameters are removed
//   - Default ports are omitted (e.g., :80 for http, :443 for https)
//
// Properties:
//   - Pure: no state, no memory
//   - Deterministic: same input always produces same output
//   - Idempotent: Canonicalize(Canonicalize(url)) == Canonicalize(url)
//   - Context-free: does not depend on crawl history
func Canonicalize(sourceUrl url.URL) url.URL {
	// Create a copy to avoid mutating the original
	canonical := sourceUrl

	// Lowercase scheme and host
	canonical.Scheme = lowerASCII(canonical.Scheme)
	canonical.Host = lowerASCII(canonical.Host)

	// Remove default port if present
	if host, port := canonical.Hostname(), canonical.Port(); port != "" {
		if (canonical.Scheme == "http" && port == "80") ||
			(canonical.Scheme == "https" && port == "443") {
			canonical.Host = host
		}
	}

	// Strip a leading "www." label from the host
	canonical.Host = stripLeadingWWW(canonical.Host)

	// Collapse repeated slashes in the path, then strip the trailing slash (except root)
	if canonical.Path != "" {
		canonical.Path = collapseSlashes(canonical.Path)
	}
	if len(canonical.Path) > 1 {
		canonical.Path = stripTrailingSlash(canonical.Path)
	}

	// Remove fragment (anchor)
	canonical.Fragment = ""
	canonical.RawFragment = ""

	// Remove query parameters
	canonical.RawQuery = ""
	canonical.ForceQuery = false

	return canonical
}

// Equivalent reports whether two URL strings canonicalize to the same form.
// Parse failures make a URL opaque: it is compared to itself unchanged, per
// the normalizer's contract that unparseable input passes through untouched.
func Equivalent(a, b string) bool {
	return normalizeString(a) == normalizeString(b)
}

func normalizeString(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	canonical := Canonicalize(*parsed)
	return canonical.String()
}

// stripLeadingWWW removes a single leading "www." label from a host, leaving
// port suffixes and any other subdomain labels untouched.
func stripLeadingWWW(host string) string {
	hostname := host
	suffix := ""
	if idx := strings.LastIndex(host, ":"); idx != -1 {
		hostname, suffix = host[:idx], host[idx:]
	}
	if strings.HasPrefix(hostname, "www.") && len(hostname) > len("www.") {
		hostname = hostname[len("www."):]
	}
	return hostname + suffix
}

// collapseSlashes reduces any run of consecutive "/" in a path to a single "/".
func collapseSlashes(path string) string {
	var b strings.Builder
	b.Grow(len(path))
	prevSlash := false
	for i := 0; i < len(path); i++ {
		c := path[i]
		if c == '/' {
			if prevSlash {
				continue
			}
			prevSlash = true
		} else {
			prevSlash = false
		}
		b.WriteByte(c)
	}
	return b.String()
}

// lowerASCII converts ASCII characters to lowercase without allocating.
// This is faster than strings.ToLower for ASCII-only strings.
func lowerASCII(s string) string {
	var needsLower bool
	for i := 0; i < len(s); i++ {
		if s[i] >= 'A' && s[i] <= 'Z' {
			needsLower = true
			break
		}
	}
	if !needsLower {
		return s
	}
	b := make([]byte, len(s))
	copy(b, s)
	for i := 0; i < len(b); i++ {
		if b[i] >= 'A' && b[i] <= 'Z' {
			b[i] += 'a' - 'A'
		}
	}
	return string(b)
}

// stripTrailingSlash removes trailing slashes from a path.
func stripTrailingSlash(path string) string {
	for len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}
	return path
}

// Package urlnorm canonicalises and filters raw link strings before they
// enter the crawl frontier. It is the single gate keeping non-web schemes
// and binary assets out of the fetch path.
package urlnorm

import (
	"net/url"
	"path"
	"strings"
)

// DefaultSkipExtensions lists path extensions that never contain crawlable
// HTML: images, archives, documents, and media.
var DefaultSkipExtensions = []string{
	".pdf", ".jpg", ".jpeg", ".png", ".gif", ".webp", ".svg",
	".zip", ".rar", ".7z", ".mp4", ".webm", ".mp3", ".avi",
	".doc", ".docx", ".xls", ".xlsx", ".ppt", ".pptx",
}

// Normalizer resolves and canonicalises URLs against a configured
// skip-extension list. It is pure and safe for concurrent use.
type Normalizer struct {
	skip map[string]struct{}
}

// New builds a Normalizer from a list of extensions to reject. Extensions
// are matched case-insensitively against the URL path.
func New(skipExts []string) *Normalizer {
	skip := make(map[string]struct{}, len(skipExts))
	for _, ext := range skipExts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		skip[ext] = struct{}{}
	}
	return &Normalizer{skip: skip}
}

// Normalize resolves raw against base and returns the canonical absolute
// URL string. It reports false when the result is not fetchable: missing or
// non-http(s) scheme, missing host, or a skip-listed path extension. The
// fragment is always stripped, so the returned string doubles as the
// deduplication key for the visited set.
func (n *Normalizer) Normalize(raw string, base *url.URL) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "", false
	}
	if base != nil {
		parsed = base.ResolveReference(parsed)
	}

	scheme := strings.ToLower(parsed.Scheme)
	if scheme != "http" && scheme != "https" {
		return "", false
	}
	if parsed.Host == "" {
		return "", false
	}
	if n.skipped(parsed.Path) {
		return "", false
	}

	parsed.Fragment = ""
	parsed.RawFragment = ""
	return parsed.String(), true
}

func (n *Normalizer) skipped(p string) bool {
	ext := strings.ToLower(path.Ext(p))
	if ext == "" {
		return false
	}
	_, ok := n.skip[ext]
	return ok
}

// BaseDomain derives the domain used for crawl scoping from a URL: the
// lowercased host with a single leading "www." stripped. This deliberately
// does not consult the public suffix list; scoping here is specific to the
// target site's domain structure.
func BaseDomain(u *url.URL) string {
	if u == nil {
		return ""
	}
	host := strings.ToLower(u.Hostname())
	return strings.TrimPrefix(host, "www.")
}

// SameDomain reports whether u belongs to baseDomain: either an exact host
// match or a subdomain (suffix match on "." + baseDomain).
func SameDomain(u *url.URL, baseDomain string) bool {
	if u == nil || baseDomain == "" {
		return false
	}
	host := strings.ToLower(u.Hostname())
	return host == baseDomain || strings.HasSuffix(host, "."+baseDomain)
}

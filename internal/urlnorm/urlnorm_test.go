package urlnorm

import (
	"net/url"
	"strings"
	"testing"
)

func mustParse(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parse %q: %v", raw, err)
	}
	return u
}

func TestNormalize(t *testing.T) {
	n := New(DefaultSkipExtensions)
	base := mustParse(t, "http://example.com/dir/page.html")

	tests := []struct {
		name string
		raw  string
		want string
		ok   bool
	}{
		{name: "absolute", raw: "http://example.com/about", want: "http://example.com/about", ok: true},
		{name: "relative path", raw: "contact", want: "http://example.com/dir/contact", ok: true},
		{name: "root relative", raw: "/products?page=2", want: "http://example.com/products?page=2", ok: true},
		{name: "fragment stripped", raw: "http://a.co/x#frag", want: "http://a.co/x", ok: true},
		{name: "fragment only", raw: "#section", want: "http://example.com/dir/page.html", ok: true},
		{name: "query kept", raw: "http://a.co/x?q=1#frag", want: "http://a.co/x?q=1", ok: true},
		{name: "https kept", raw: "https://sub.example.com/", want: "https://sub.example.com/", ok: true},
		{name: "mailto rejected", raw: "mailto:someone@example.com", ok: false},
		{name: "javascript rejected", raw: "javascript:void(0)", ok: false},
		{name: "ftp rejected", raw: "ftp://example.com/file", ok: false},
		{name: "empty rejected", raw: "", ok: false},
		{name: "whitespace rejected", raw: "   ", ok: false},
		{name: "image rejected", raw: "/logo.png", ok: false},
		{name: "image uppercase rejected", raw: "/LOGO.PNG", ok: false},
		{name: "pdf rejected", raw: "http://example.com/report.pdf", ok: false},
		{name: "archive rejected", raw: "/downloads/bundle.zip", ok: false},
		{name: "extension only at path end", raw: "/png/gallery", want: "http://example.com/png/gallery", ok: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := n.Normalize(tc.raw, base)
			if ok != tc.ok {
				t.Fatalf("Normalize(%q) ok = %v, want %v", tc.raw, ok, tc.ok)
			}
			if !ok {
				return
			}
			if got != tc.want {
				t.Fatalf("Normalize(%q) = %q, want %q", tc.raw, got, tc.want)
			}
			if strings.Contains(got, "#") {
				t.Fatalf("Normalize(%q) = %q still contains a fragment", tc.raw, got)
			}
		})
	}
}

func TestNormalizeWithoutBase(t *testing.T) {
	n := New(DefaultSkipExtensions)

	if _, ok := n.Normalize("/relative/only", nil); ok {
		t.Fatal("relative URL without base should be rejected")
	}
	got, ok := n.Normalize("http://example.com/x", nil)
	if !ok || got != "http://example.com/x" {
		t.Fatalf("absolute URL without base = %q, %v", got, ok)
	}
}

func TestBaseDomain(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"https://www.durex.es/", "durex.es"},
		{"http://example.com/path", "example.com"},
		{"http://WWW.Example.COM/", "example.com"},
		{"http://blog.example.com/", "blog.example.com"},
	}
	for _, tc := range tests {
		if got := BaseDomain(mustParse(t, tc.raw)); got != tc.want {
			t.Errorf("BaseDomain(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestSameDomain(t *testing.T) {
	tests := []struct {
		raw        string
		baseDomain string
		want       bool
	}{
		{"http://blog.example.com/p", "example.com", true},
		{"http://example.com/p", "example.com", true},
		{"http://www.example.com/p", "example.com", true},
		{"http://evil.com/example.com", "example.com", false},
		{"http://notexample.com/", "example.com", false},
		{"http://example.com.evil.com/", "example.com", false},
	}
	for _, tc := range tests {
		if got := SameDomain(mustParse(t, tc.raw), tc.baseDomain); got != tc.want {
			t.Errorf("SameDomain(%q, %q) = %v, want %v", tc.raw, tc.baseDomain, got, tc.want)
		}
	}
}

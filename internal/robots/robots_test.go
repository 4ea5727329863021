package robots

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
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

func TestAllowedRespectsDisallowRules(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			w.Write([]byte("User-agent: *\nDisallow: /private/\n"))
			return
		}
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	gate := NewGate("test-bot", true, srv.Client())
	ctx := context.Background()

	if !gate.Allowed(ctx, mustParse(t, srv.URL+"/public/page")) {
		t.Error("expected /public/page to be allowed")
	}
	if gate.Allowed(ctx, mustParse(t, srv.URL+"/private/secret")) {
		t.Error("expected /private/secret to be disallowed")
	}
}

func TestAllowedFailsOpenOnMissingRobots(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	gate := NewGate("test-bot", true, srv.Client())
	for _, path := range []string{"/", "/anything", "/private/secret"} {
		if !gate.Allowed(context.Background(), mustParse(t, srv.URL+path)) {
			t.Errorf("expected %s to be allowed when robots.txt is missing", path)
		}
	}
}

func TestAllowedFailsOpenOnTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	target := srv.URL
	srv.Close() // connection refused from here on

	gate := NewGate("test-bot", true, http.DefaultClient)
	if !gate.Allowed(context.Background(), mustParse(t, target+"/page")) {
		t.Error("expected fail-open when robots.txt is unreachable")
	}
}

func TestRobotsFetchedOncePerHost(t *testing.T) {
	var robotsHits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			robotsHits.Add(1)
			w.Write([]byte("User-agent: *\nAllow: /\n"))
		}
	}))
	defer srv.Close()

	gate := NewGate("test-bot", true, srv.Client())
	for i := 0; i < 5; i++ {
		gate.Allowed(context.Background(), mustParse(t, srv.URL+"/page"))
	}
	if got := robotsHits.Load(); got != 1 {
		t.Fatalf("robots.txt fetched %d times, want 1", got)
	}
}

func TestRespectDisabledSkipsFetch(t *testing.T) {
	var robotsHits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			robotsHits.Add(1)
			w.Write([]byte("User-agent: *\nDisallow: /\n"))
		}
	}))
	defer srv.Close()

	gate := NewGate("test-bot", false, srv.Client())
	if !gate.Allowed(context.Background(), mustParse(t, srv.URL+"/page")) {
		t.Error("expected allow when respect is disabled")
	}
	if robotsHits.Load() != 0 {
		t.Error("robots.txt should not be fetched when respect is disabled")
	}
}

func TestAllowedRejectsRelativeURL(t *testing.T) {
	gate := NewGate("test-bot", true, nil)
	if gate.Allowed(context.Background(), mustParse(t, "/relative/only")) {
		t.Error("relative URLs must not be fetchable")
	}
	if gate.Allowed(context.Background(), nil) {
		t.Error("nil URL must not be fetchable")
	}
}

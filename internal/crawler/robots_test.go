package crawler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
)

// TestRobotsAllowed tests rule evaluation against a served robots.txt.
func TestRobotsAllowed(t *testing.T) {
	t.Parallel()

	var robotsFetches atomic.Int64
	mux := http.NewServeMux()
	mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, _ *http.Request) {
		robotsFetches.Add(1)
		w.Write([]byte("User-agent: *\nDisallow: /private/\n")) //nolint:errcheck
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	robots := NewRobots(server.Client(), "urlhound/1.0")
	ctx := context.Background()

	allowed, _ := url.Parse(server.URL + "/public/page")
	if !robots.Allowed(ctx, allowed) {
		t.Error("expected /public/page to be allowed")
	}

	denied, _ := url.Parse(server.URL + "/private/secret")
	if robots.Allowed(ctx, denied) {
		t.Error("expected /private/secret to be disallowed")
	}

	if n := robotsFetches.Load(); n != 1 {
		t.Errorf("expected one robots.txt fetch per origin, got %d", n)
	}
}

// TestRobotsFailsOpen tests that unreadable rules allow everything.
func TestRobotsFailsOpen(t *testing.T) {
	t.Parallel()

	t.Run("missing robots.txt", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.NotFoundHandler())
		defer server.Close()

		robots := NewRobots(server.Client(), "urlhound/1.0")
		u, _ := url.Parse(server.URL + "/anything")
		if !robots.Allowed(context.Background(), u) {
			t.Error("expected missing robots.txt to allow everything")
		}
	})

	t.Run("unreachable host", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.NotFoundHandler())
		deadURL := server.URL
		server.Close()

		robots := NewRobots(http.DefaultClient, "urlhound/1.0")
		u, _ := url.Parse(deadURL + "/anything")
		if !robots.Allowed(context.Background(), u) {
			t.Error("expected unreachable robots.txt to allow everything")
		}
	})
}

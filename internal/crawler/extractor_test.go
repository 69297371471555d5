package crawler

import (
	"testing"
)

// TestExtract tests candidate extraction by source kind.
func TestExtract(t *testing.T) {
	t.Parallel()

	t.Run("extracts all recognized sources", func(t *testing.T) {
		t.Parallel()

		body := `<html><body>
			<a href="/about">About</a>
			<script src="/app.js"></script>
			<form action="/search" method="GET"><input name="q"></form>
			<img src="/logo.png">
			<iframe src="/embed"></iframe>
			<area href="/map">
			<link href="/style.css" rel="stylesheet">
		</body></html>`

		candidates := Extract([]byte(body), "text/html")

		byKind := make(map[SourceKind][]string)
		for _, c := range candidates {
			byKind[c.Source] = append(byKind[c.Source], c.Raw)
		}

		if len(byKind[SourceHref]) != 1 || byKind[SourceHref][0] != "/about" {
			t.Errorf("expected one href candidate /about, got %v", byKind[SourceHref])
		}
		if len(byKind[SourceScript]) != 1 || byKind[SourceScript][0] != "/app.js" {
			t.Errorf("expected one script candidate /app.js, got %v", byKind[SourceScript])
		}
		if len(byKind[SourceForm]) != 1 || byKind[SourceForm][0] != "/search" {
			t.Errorf("expected one form candidate /search, got %v", byKind[SourceForm])
		}
		if len(byKind[SourceOther]) != 4 {
			t.Errorf("expected 4 other candidates, got %v", byKind[SourceOther])
		}
	})

	t.Run("skips elements without URL attributes", func(t *testing.T) {
		t.Parallel()

		body := `<html><body>
			<a>no href</a>
			<script>inline()</script>
			<form method="POST"><input name="x"></form>
			<a href="  ">blank href</a>
		</body></html>`

		if candidates := Extract([]byte(body), "text/html"); len(candidates) != 0 {
			t.Errorf("expected no candidates, got %v", candidates)
		}
	})

	t.Run("tolerates malformed markup", func(t *testing.T) {
		t.Parallel()

		body := `<html><body><a href="/ok">unclosed <div><a href="/also-ok"`
		candidates := Extract([]byte(body), "text/html")

		if len(candidates) != 2 {
			t.Fatalf("expected 2 candidates from broken markup, got %d: %v", len(candidates), candidates)
		}
	})

	t.Run("non-text content yields nothing", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name        string
			contentType string
			want        int
		}{
			{name: "png image", contentType: "image/png", want: 0},
			{name: "octet stream", contentType: "application/octet-stream", want: 0},
			{name: "pdf", contentType: "application/pdf", want: 0},
			{name: "html with charset param", contentType: "text/html; charset=utf-8", want: 1},
			{name: "empty content type treated as text", contentType: "", want: 1},
		}

		body := `<a href="/x">x</a>`
		for _, tt := range tests {
			tt := tt
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()

				if got := Extract([]byte(body), tt.contentType); len(got) != tt.want {
					t.Errorf("Extract with %q: expected %d candidates, got %d", tt.contentType, tt.want, len(got))
				}
			})
		}
	})

	t.Run("empty body yields nothing", func(t *testing.T) {
		t.Parallel()

		if got := Extract(nil, "text/html"); got != nil {
			t.Errorf("expected nil, got %v", got)
		}
	})

	t.Run("decodes declared legacy charset", func(t *testing.T) {
		t.Parallel()

		// "café" in ISO-8859-1: 0xE9 for é.
		body := []byte("<html><body><a href=\"/caf\xe9\">caf\xe9</a></body></html>")
		candidates := Extract(body, "text/html; charset=iso-8859-1")

		if len(candidates) != 1 {
			t.Fatalf("expected 1 candidate, got %d", len(candidates))
		}
		if candidates[0].Raw != "/café" {
			t.Errorf("expected decoded href /café, got %q", candidates[0].Raw)
		}
	})
}

package crawler

import (
	"errors"
	"net/url"
	"strings"
	"sync"
)

// ErrInvalidURL is returned by NormalizeURL for candidates that cannot be
// crawled: unparseable strings, non-http(s) schemes (mailto:, javascript:,
// tel:, data:), and URLs without a host. Invalid candidates are dropped,
// not reported as crawl errors.
var ErrInvalidURL = errors.New("invalid URL")

// NormalizeURL resolves raw against base (nil for absolute seeds) and
// returns its canonical form. The canonical string is the dedup key for
// the whole run, so everything that does not change page identity is
// stripped: fragments, default ports, scheme/host case, and the empty
// path (which becomes "/").
func NormalizeURL(raw string, base *url.URL) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "#" {
		return nil, ErrInvalidURL
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, ErrInvalidURL
	}
	if base != nil {
		u = base.ResolveReference(u)
	}

	u.Scheme = strings.ToLower(u.Scheme)
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, ErrInvalidURL
	}
	if u.Hostname() == "" {
		return nil, ErrInvalidURL
	}

	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""

	// Default ports carry no information: example.com:80 and
	// example.com are the same origin for http.
	switch {
	case u.Scheme == "http" && u.Port() == "80":
		u.Host = u.Hostname()
	case u.Scheme == "https" && u.Port() == "443":
		u.Host = u.Hostname()
	}

	if u.Path == "" {
		u.Path = "/"
	}

	return u, nil
}

// VisitedSet is the shared set of canonical URLs already claimed for
// fetching. TryClaim is the single synchronization point that guarantees
// at-most-once fetch per URL across all workers.
type VisitedSet struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

// NewVisitedSet creates an empty VisitedSet.
func NewVisitedSet() *VisitedSet {
	return &VisitedSet{seen: make(map[string]struct{})}
}

// TryClaim atomically tests and inserts the canonical URL. It returns
// true only for the caller that claims the URL first; every later call
// for the same URL returns false.
func (v *VisitedSet) TryClaim(canonical string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if _, ok := v.seen[canonical]; ok {
		return false
	}
	v.seen[canonical] = struct{}{}
	return true
}

// Len returns the number of claimed URLs.
func (v *VisitedSet) Len() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.seen)
}

package crawler

import (
	"net/url"
	"strings"
)

// Scope decides whether a discovered URL is eligible for the crawl.
// It is derived from the seed URLs once and never mutated, so checks are
// pure and safe to call from every worker without locking.
type Scope struct {
	// hosts are the seed hostnames (lower-case).
	hosts map[string]struct{}

	// includeSubdomains admits subdomains of any seed host.
	includeSubdomains bool

	// insidePaths, when non-empty, restricts candidates to URLs whose
	// path starts with one of the seed paths.
	insidePaths []string
}

// NewScope builds the crawl scope from the normalized seed URLs.
// When insideOnly is set, each seed's path becomes a required prefix.
func NewScope(seeds []*url.URL, includeSubdomains, insideOnly bool) *Scope {
	s := &Scope{
		hosts:             make(map[string]struct{}, len(seeds)),
		includeSubdomains: includeSubdomains,
	}
	for _, seed := range seeds {
		s.hosts[strings.ToLower(seed.Hostname())] = struct{}{}
		if insideOnly {
			s.insidePaths = append(s.insidePaths, seed.Path)
		}
	}
	return s
}

// Contains reports whether the candidate is in scope. The candidate must
// already be normalized; checks against raw URLs would be bypassable
// through case or encoding tricks.
func (s *Scope) Contains(u *url.URL) bool {
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}

	host := strings.ToLower(u.Hostname())
	if !s.containsHost(host) {
		return false
	}

	if len(s.insidePaths) > 0 {
		matched := false
		for _, prefix := range s.insidePaths {
			if strings.HasPrefix(u.Path, prefix) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	return true
}

// containsHost reports whether host is a seed host or, when subdomains
// are included, a subdomain of one. The "."+target suffix check prevents
// notexample.com from matching example.com.
func (s *Scope) containsHost(host string) bool {
	if _, ok := s.hosts[host]; ok {
		return true
	}
	if !s.includeSubdomains {
		return false
	}
	for target := range s.hosts {
		if strings.HasSuffix(host, "."+target) {
			return true
		}
	}
	return false
}

package crawler

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"sync"

	"github.com/temoto/robotstxt"
)

// robotsMaxSize caps how much of a robots.txt file is read. Real files
// are a few kilobytes; anything larger is hostile or broken.
const robotsMaxSize = 512 * 1024

// Robots is an opt-in politeness gate that checks URLs against each
// host's robots.txt. Rules are fetched once per scheme://host and cached
// for the run. Every failure mode fails open: a site without a readable
// robots.txt allows everything, matching crawler convention.
type Robots struct {
	client    *http.Client
	userAgent string

	mu     sync.Mutex
	groups map[string]*robotstxt.Group
}

// NewRobots creates a Robots gate using the given client, so robots.txt
// fetches go through the same proxy and TLS settings as the crawl itself.
func NewRobots(client *http.Client, userAgent string) *Robots {
	return &Robots{
		client:    client,
		userAgent: userAgent,
		groups:    make(map[string]*robotstxt.Group),
	}
}

// Allowed reports whether u may be fetched for our user agent.
func (r *Robots) Allowed(ctx context.Context, u *url.URL) bool {
	group := r.groupFor(ctx, u)
	if group == nil {
		return true
	}
	return group.Test(u.Path)
}

// groupFor returns the cached rule group for u's origin, fetching
// robots.txt on first use. A nil group means "no restrictions".
//
// The lock is held across the fetch so each origin is fetched exactly
// once; concurrent workers hitting new hosts serialize briefly, which is
// acceptable for a politeness feature.
func (r *Robots) groupFor(ctx context.Context, u *url.URL) *robotstxt.Group {
	origin := u.Scheme + "://" + u.Host

	r.mu.Lock()
	defer r.mu.Unlock()

	if group, ok := r.groups[origin]; ok {
		return group
	}

	group := r.fetchGroup(ctx, origin)
	r.groups[origin] = group
	return group
}

// fetchGroup downloads and parses robots.txt for the origin.
func (r *Robots) fetchGroup(ctx context.Context, origin string) *robotstxt.Group {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, origin+"/robots.txt", nil)
	if err != nil {
		return nil
	}
	req.Header.Set("User-Agent", r.userAgent)

	resp, err := r.client.Do(req)
	if err != nil {
		return nil
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, robotsMaxSize))
	if err != nil {
		return nil
	}

	data, err := robotstxt.FromStatusAndBytes(resp.StatusCode, body)
	if err != nil {
		return nil
	}
	return data.FindGroup(r.userAgent)
}

package config

import (
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// DefaultMaxDepth of 2 finds the overwhelming majority of linked
	// content on typical sites while keeping run times short. Deeper
	// crawls are opt-in via the --depth flag.
	DefaultMaxDepth = 2

	// DefaultConcurrency is the number of parallel fetch workers.
	// Eight workers saturate most targets without tripping rate limits.
	DefaultConcurrency = 8

	// DefaultUserAgent identifies urlhound in HTTP requests.
	// A descriptive User-Agent lets operators identify scanner traffic
	// in their logs.
	DefaultUserAgent = "urlhound/1.0 (+https://github.com/urlhound/urlhound)"

	// AppName is the application name used for XDG directory paths.
	AppName = "urlhound"
)

// Header is one HTTP request header to merge into every fetch.
// Headers keep their order and may repeat, which matters for headers
// like Cookie where servers see the concatenation.
type Header struct {
	// Name is the header name as given (canonicalization is left to
	// net/http at request time).
	Name string

	// Value is the header value with surrounding whitespace trimmed.
	Value string
}

// Config holds all options for one crawl run.
// It is populated from CLI flags and the optional config file, validated
// once, and then shared read-only between all workers.
type Config struct {
	// Seeds is the list of starting URLs. The hosts of the seeds define
	// the crawl scope.
	Seeds []string

	// MaxDepth is the maximum link-following depth. Seeds are depth 0;
	// a candidate found on a depth-N page is depth N+1 and is fetched
	// only if N+1 <= MaxDepth.
	MaxDepth int

	// Concurrency is the fixed size of the fetch worker pool.
	Concurrency int

	// Inside restricts the crawl to URLs whose path starts with the
	// seed's path. Useful for auditing a single section of a site.
	Inside bool

	// IncludeSubdomains widens the scope from the seed hosts to any of
	// their subdomains.
	IncludeSubdomains bool

	// MaxPageSize caps the number of response body bytes read per page.
	// Bodies beyond the cap are truncated, not failed. Zero means
	// unbounded.
	MaxPageSize int64

	// Insecure disables TLS certificate verification. Never on by
	// default; only for targets with self-signed or broken certificates.
	Insecure bool

	// Headers are extra request headers merged into every fetch, in
	// order, duplicates allowed.
	Headers []Header

	// ProxyURL routes all requests through the given proxy.
	// Supports http, https, and socks5 schemes. Empty means direct.
	ProxyURL string

	// Timeout is the per-request timeout. Zero means no timeout.
	Timeout time.Duration

	// FollowRedirects determines whether 3xx responses are followed.
	// When disabled, the redirect target is still reported as a
	// discovery but is not fetched automatically.
	FollowRedirects bool

	// RateLimit caps outgoing requests per second across all workers.
	// Zero means unlimited.
	RateLimit float64

	// RespectRobots enables the robots.txt gate: URLs disallowed for
	// our user agent are not fetched. Off by default; enumeration tools
	// are expected to see everything unless the operator opts in.
	RespectRobots bool

	// UserAgent is the User-Agent header for all requests, including
	// robots.txt fetches.
	UserAgent string

	// Unique enables display-level deduplication: each discovered URL
	// is reported at most once per run. Independent of the fetch-level
	// visited set.
	Unique bool

	// ShowSource annotates plain-text output with the source kind
	// ([href], [script], [form], ...).
	ShowSource bool

	// ShowWhere annotates output with the page the URL was found on.
	ShowWhere bool

	// JSONOutput switches output to one JSON object per line.
	// Mutually exclusive with MarkdownReport.
	JSONOutput bool

	// MarkdownReport appends a Markdown run summary after the crawl.
	// Mutually exclusive with JSONOutput.
	MarkdownReport bool

	// OutputFile writes records to the given path instead of stdout.
	OutputFile string

	// ConfigFilePath is an explicit config file path. Empty means
	// search the standard locations.
	ConfigFilePath string

	// SiteConfigs holds per-site settings loaded from the config file.
	SiteConfigs *File
}

// NewConfig creates a Config with default values. Non-zero defaults live
// here rather than in flag definitions so that library callers get the
// same behavior as the CLI.
func NewConfig() *Config {
	return &Config{
		MaxDepth:        DefaultMaxDepth,
		Concurrency:     DefaultConcurrency,
		FollowRedirects: true,
		UserAgent:       DefaultUserAgent,
	}
}

// XDGConfigDir returns the XDG config directory for urlhound.
// On Linux: ~/.config/urlhound
// On macOS: ~/Library/Application Support/urlhound
// On Windows: %APPDATA%\urlhound
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks the configuration and returns the first problem found.
// It runs once after flag and file resolution, before any crawling.
func (c *Config) Validate() error {
	if len(c.Seeds) == 0 {
		return ErrNoSeeds
	}
	if c.MaxDepth < 0 {
		return ErrInvalidDepth
	}
	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}
	if c.MaxPageSize < 0 {
		return ErrInvalidMaxPageSize
	}
	if c.Timeout < 0 {
		return ErrInvalidTimeout
	}
	if c.RateLimit < 0 {
		return ErrInvalidRateLimit
	}
	if c.JSONOutput && c.MarkdownReport {
		return ErrConflictingOutputFormats
	}
	if c.ProxyURL != "" {
		u, err := url.Parse(c.ProxyURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return ErrInvalidProxyURL
		}
		switch u.Scheme {
		case "http", "https", "socks5":
		default:
			return ErrInvalidProxyURL
		}
	}
	return nil
}

// ParseHeaderString parses the -H flag format: header pairs separated by
// ";;", each pair as "Name: Value". Pairs without a colon are skipped.
// Order and duplicates are preserved.
func ParseHeaderString(raw string) []Header {
	if raw == "" {
		return nil
	}

	var headers []Header
	for _, pair := range strings.Split(raw, ";;") {
		name, value, ok := strings.Cut(pair, ":")
		if !ok {
			continue
		}
		name = strings.TrimSpace(name)
		value = strings.TrimSpace(value)
		if name == "" {
			continue
		}
		headers = append(headers, Header{Name: name, Value: value})
	}
	return headers
}

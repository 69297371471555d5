package config

import "errors"

// Configuration validation errors returned by Config.Validate.
// They are package-level sentinels so callers can use errors.Is while
// users still get a readable message.
var (
	// ErrNoSeeds is returned when no seed URLs are provided via
	// arguments or standard input.
	ErrNoSeeds = errors.New("no seed URLs provided: pass URLs as arguments or on stdin")

	// ErrInvalidDepth is returned when the crawl depth is negative.
	ErrInvalidDepth = errors.New("invalid depth: must be non-negative")

	// ErrInvalidConcurrency is returned when the worker count is not
	// positive. Zero workers would mean no crawling at all.
	ErrInvalidConcurrency = errors.New("invalid concurrency: must be positive")

	// ErrInvalidMaxPageSize is returned when the page size cap is
	// negative. Use 0 for unbounded.
	ErrInvalidMaxPageSize = errors.New("invalid max page size: must be non-negative")

	// ErrInvalidTimeout is returned when the request timeout is
	// negative. Use 0 for no timeout.
	ErrInvalidTimeout = errors.New("invalid timeout: must be non-negative")

	// ErrInvalidRateLimit is returned when the request rate is
	// negative. Use 0 for unlimited.
	ErrInvalidRateLimit = errors.New("invalid rate limit: must be non-negative")

	// ErrConflictingOutputFormats is returned when both --json and
	// --markdown are specified.
	ErrConflictingOutputFormats = errors.New("conflicting output formats: --json and --markdown cannot be used together")

	// ErrInvalidProxyURL is returned when the proxy URL cannot be
	// parsed or uses an unsupported scheme. Supported schemes are
	// http, https, and socks5.
	ErrInvalidProxyURL = errors.New("invalid proxy URL: must be http, https, or socks5")
)

package crawler

// SourceKind identifies which part of a page yielded a candidate URL.
// The values match the source labels printed by the CLI.
type SourceKind string

// Known source kinds.
const (
	// SourceHref is an anchor href target.
	SourceHref SourceKind = "href"

	// SourceScript is a script src reference.
	SourceScript SourceKind = "script"

	// SourceForm is a form action target.
	SourceForm SourceKind = "form"

	// SourceOther covers the remaining URL-bearing attributes
	// (img/iframe/area/link and unfollowed redirect targets).
	SourceOther SourceKind = "other"
)

// FailureKind classifies why a fetch failed. Failures are per-task
// diagnostics, never fatal to the run.
type FailureKind string

// Known failure kinds.
const (
	// FailureTimeout means the per-request timeout expired or the run
	// was cancelled mid-fetch.
	FailureTimeout FailureKind = "timeout"

	// FailureTLS means certificate verification or the TLS handshake
	// failed.
	FailureTLS FailureKind = "tls_error"

	// FailureNetwork covers DNS, connection, and transport errors.
	FailureNetwork FailureKind = "network_error"

	// FailureTooLarge means the declared Content-Length exceeded the
	// configured page size cap.
	FailureTooLarge FailureKind = "too_large"

	// FailureNonText means the response was a binary content type with
	// nothing to extract.
	FailureNonText FailureKind = "non_text_content"
)

// FetchFailure describes a failed fetch.
type FetchFailure struct {
	// Kind is the failure classification.
	Kind FailureKind

	// Detail is the underlying error text, for diagnostics.
	Detail string
}

// Task is one unit of crawl work: a canonical URL awaiting fetch.
// Tasks are immutable after creation and consumed exactly once.
type Task struct {
	// URL is the canonical URL to fetch.
	URL string

	// Depth is the link distance from the seed. Seeds are depth 0.
	Depth int

	// Origin is the canonical URL of the page that referenced this one.
	// Empty for seeds.
	Origin string

	// Source is how the origin page referenced this URL.
	Source SourceKind
}

// Record is one unit of crawl output: either a discovered URL with its
// provenance, or a fetch-failure diagnostic when Failure is non-nil.
type Record struct {
	// URL is the discovered canonical URL (or, for diagnostics, the URL
	// whose fetch failed).
	URL string

	// Source is the kind of page element that yielded the URL.
	Source SourceKind

	// Where is the canonical URL of the page the URL was found on.
	Where string

	// Depth is the crawl depth of the discovered URL.
	Depth int

	// Failure is set on diagnostic records for unreachable URLs.
	Failure *FetchFailure
}

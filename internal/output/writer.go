package output

import (
	"github.com/urlhound/urlhound/internal/crawler"
)

// Writer consumes crawl records one at a time. Close flushes anything
// the writer buffered; writers that render a final summary do all their
// real work there.
type Writer interface {
	// Write handles one record from the crawl stream.
	Write(rec crawler.Record) error

	// Close finalizes the output. It must be called exactly once after
	// the record stream ends.
	Close() error
}

// MultiWriter fans each record out to several Writers, so a crawl can
// stream URLs to the terminal while a summary report accumulates on the
// side. Write and Close stop on the first error encountered.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write delivers the record to all configured Writers.
func (m *MultiWriter) Write(rec crawler.Record) error {
	for _, w := range m.writers {
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// Close closes all configured Writers.
func (m *MultiWriter) Close() error {
	for _, w := range m.writers {
		if err := w.Close(); err != nil {
			return err
		}
	}
	return nil
}

// Unique filters duplicate records before they reach the wrapped writer.
// Discoveries and failures are tracked separately: a URL that failed to
// fetch is still worth one diagnostic line even if it was already
// reported as a discovery.
type Unique struct {
	next         Writer
	seenURLs     map[string]struct{}
	seenFailures map[string]struct{}
}

// NewUnique wraps a writer with duplicate filtering.
func NewUnique(next Writer) *Unique {
	return &Unique{
		next:         next,
		seenURLs:     make(map[string]struct{}),
		seenFailures: make(map[string]struct{}),
	}
}

// Write forwards the record unless its URL was already seen.
func (u *Unique) Write(rec crawler.Record) error {
	seen := u.seenURLs
	if rec.Failure != nil {
		seen = u.seenFailures
	}
	if _, ok := seen[rec.URL]; ok {
		return nil
	}
	seen[rec.URL] = struct{}{}
	return u.next.Write(rec)
}

// Close closes the wrapped writer.
func (u *Unique) Close() error {
	return u.next.Close()
}

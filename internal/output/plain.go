package output

import (
	"bufio"
	"io"
	"strings"

	"github.com/urlhound/urlhound/internal/crawler"
)

// PlainWriter emits one URL per line, the default terminal format.
// Failure records are skipped; they belong in the log, not in a list a
// user will pipe into other tools.
type PlainWriter struct {
	out *bufio.Writer

	// showSource prefixes each line with the extraction source kind.
	showSource bool

	// showWhere prefixes each line with the page the URL was found on.
	showWhere bool
}

// PlainWriterOption configures a PlainWriter.
type PlainWriterOption func(*PlainWriter)

// WithSource enables the "[href]" style source prefix.
func WithSource(show bool) PlainWriterOption {
	return func(w *PlainWriter) {
		w.showSource = show
	}
}

// WithWhere enables the discovery-page prefix.
func WithWhere(show bool) PlainWriterOption {
	return func(w *PlainWriter) {
		w.showWhere = show
	}
}

// NewPlainWriter creates a PlainWriter that outputs to the given writer.
func NewPlainWriter(out io.Writer, opts ...PlainWriterOption) *PlainWriter {
	w := &PlainWriter{out: bufio.NewWriter(out)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write emits one line for a discovery record.
func (w *PlainWriter) Write(rec crawler.Record) error {
	if rec.Failure != nil {
		return nil
	}

	var sb strings.Builder
	if w.showSource {
		sb.WriteString("[")
		sb.WriteString(string(rec.Source))
		sb.WriteString("] ")
	}
	if w.showWhere {
		sb.WriteString("[")
		sb.WriteString(rec.Where)
		sb.WriteString("] ")
	}
	sb.WriteString(rec.URL)
	sb.WriteString("\n")

	_, err := w.out.WriteString(sb.String())
	return err
}

// Close flushes buffered lines.
func (w *PlainWriter) Close() error {
	return w.out.Flush()
}

package output

import (
	"encoding/json"
	"io"

	"github.com/urlhound/urlhound/internal/crawler"
)

// jsonRecord is the wire shape of one output line. The field set is
// stable: consumers parse it with jq or feed it into other tools, so
// Source, URL and Where are always present while Error only appears on
// failure records.
type jsonRecord struct {
	Source string `json:"Source"`
	URL    string `json:"URL"`
	Where  string `json:"Where"`
	Error  string `json:"Error,omitempty"`
}

// JSONWriter emits one JSON object per line (JSON Lines). Unlike the
// plain format it includes failure records, carrying the failure kind in
// the Error field.
type JSONWriter struct {
	enc *json.Encoder

	// showWhere controls whether the Where field is populated. The key
	// itself is always present so the wire shape does not change.
	showWhere bool
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithJSONWhere enables the Where field.
func WithJSONWhere(show bool) JSONWriterOption {
	return func(w *JSONWriter) {
		w.showWhere = show
	}
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(out io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{enc: json.NewEncoder(out)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write emits one JSON line for the record.
func (w *JSONWriter) Write(rec crawler.Record) error {
	line := jsonRecord{
		Source: string(rec.Source),
		URL:    rec.URL,
	}
	if w.showWhere {
		line.Where = rec.Where
	}
	if rec.Failure != nil {
		line.Error = string(rec.Failure.Kind)
		if rec.Failure.Detail != "" {
			line.Error += ": " + rec.Failure.Detail
		}
	}
	return w.enc.Encode(line)
}

// Close is a no-op; the encoder writes each line immediately.
func (w *JSONWriter) Close() error {
	return nil
}

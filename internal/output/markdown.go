package output

import (
	"io"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/nao1215/markdown"

	"github.com/urlhound/urlhound/internal/crawler"
)

// MarkdownWriter accumulates the crawl stream and renders a summary
// report on Close. It is meant for the -m flag, typically composed with
// a line writer through MultiWriter so the terminal output is unchanged.
type MarkdownWriter struct {
	out     io.Writer
	started time.Time

	total     int
	bySource  map[crawler.SourceKind]int
	byHost    map[string]int
	seenURLs  map[string]struct{}
	maxDepth  int
	failures  []crawler.Record
	seedLabel string
}

// NewMarkdownWriter creates a MarkdownWriter that renders to the given
// writer when the crawl ends. The seed label names the crawl in the
// report header.
func NewMarkdownWriter(out io.Writer, seedLabel string) *MarkdownWriter {
	return &MarkdownWriter{
		out:       out,
		started:   time.Now(),
		bySource:  make(map[crawler.SourceKind]int),
		byHost:    make(map[string]int),
		seenURLs:  make(map[string]struct{}),
		seedLabel: seedLabel,
	}
}

// Write folds one record into the summary counters.
func (w *MarkdownWriter) Write(rec crawler.Record) error {
	if rec.Failure != nil {
		w.failures = append(w.failures, rec)
		return nil
	}

	w.total++
	w.bySource[rec.Source]++
	w.seenURLs[rec.URL] = struct{}{}
	if rec.Depth > w.maxDepth {
		w.maxDepth = rec.Depth
	}
	if u, err := url.Parse(rec.URL); err == nil {
		w.byHost[u.Hostname()]++
	}
	return nil
}

// Close renders the accumulated summary as a Markdown document.
func (w *MarkdownWriter) Close() error {
	md := markdown.NewMarkdown(w.out)

	md.H1("Crawl Report")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Seeds", "`" + w.seedLabel + "`"},
			{"Started", w.started.Format("2006-01-02 15:04:05 MST")},
			{"Duration", time.Since(w.started).Round(time.Millisecond).String()},
			{"Discoveries", strconv.Itoa(w.total)},
			{"Unique URLs", strconv.Itoa(len(w.seenURLs))},
			{"Deepest Discovery", strconv.Itoa(w.maxDepth)},
			{"Fetch Failures", strconv.Itoa(len(w.failures))},
		},
	})
	md.PlainText("")

	w.writeSources(md)
	w.writeHosts(md)
	w.writeFailures(md)

	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [urlhound](https://github.com/urlhound/urlhound)*")

	return md.Build()
}

// writeSources writes the per-source-kind breakdown.
func (w *MarkdownWriter) writeSources(md *markdown.Markdown) {
	md.H2("Discoveries by Source")
	md.PlainText("")

	if w.total == 0 {
		md.PlainText("No URLs discovered.")
		md.PlainText("")
		return
	}

	kinds := []crawler.SourceKind{
		crawler.SourceHref,
		crawler.SourceScript,
		crawler.SourceForm,
		crawler.SourceOther,
	}
	rows := make([][]string, 0, len(kinds))
	for _, kind := range kinds {
		if w.bySource[kind] == 0 {
			continue
		}
		rows = append(rows, []string{string(kind), strconv.Itoa(w.bySource[kind])})
	}

	md.Table(markdown.TableSet{
		Header: []string{"Source", "Count"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeHosts writes the per-host breakdown, busiest first.
func (w *MarkdownWriter) writeHosts(md *markdown.Markdown) {
	if len(w.byHost) == 0 {
		return
	}

	md.H2("Discoveries by Host")
	md.PlainText("")

	hosts := make([]string, 0, len(w.byHost))
	for host := range w.byHost {
		hosts = append(hosts, host)
	}
	sort.Slice(hosts, func(i, j int) bool {
		if w.byHost[hosts[i]] != w.byHost[hosts[j]] {
			return w.byHost[hosts[i]] > w.byHost[hosts[j]]
		}
		return hosts[i] < hosts[j]
	})

	rows := make([][]string, 0, len(hosts))
	for _, host := range hosts {
		rows = append(rows, []string{"`" + host + "`", strconv.Itoa(w.byHost[host])})
	}

	md.Table(markdown.TableSet{
		Header: []string{"Host", "Count"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeFailures writes the fetch failure table.
func (w *MarkdownWriter) writeFailures(md *markdown.Markdown) {
	md.H2("Fetch Failures")
	md.PlainText("")

	if len(w.failures) == 0 {
		md.PlainText("No fetch failures.")
		md.PlainText("")
		return
	}

	rows := make([][]string, len(w.failures))
	for i, rec := range w.failures {
		rows[i] = []string{
			truncateString(rec.URL, 60),
			string(rec.Failure.Kind),
			truncateString(rec.Failure.Detail, 60),
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"URL", "Kind", "Detail"},
		Rows:   rows,
	})
	md.PlainText("")
}

// truncateString truncates a string to maxLen characters with ellipsis.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

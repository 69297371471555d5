// Package output turns the crawl record stream into user-facing output.
//
// This package contains writers for different formats:
//   - PlainWriter: one URL per line for terminal display and piping
//   - JSONWriter: one JSON object per line for tool integration
//   - MarkdownWriter: an end-of-run summary report
//
// Writers implement the Writer interface, allowing them to be used
// interchangeably and composed for multi-format output. The Unique
// wrapper filters duplicate records in front of any writer.
package output

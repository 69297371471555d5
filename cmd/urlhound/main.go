// Package main provides the entry point for the urlhound CLI.
//
// urlhound is a fast URL discovery tool for security researchers.
// It crawls one or more seed URLs and streams every in-scope URL it
// finds, with provenance, for use in reconnaissance pipelines.
//
// Usage:
//
//	urlhound crawl https://example.com
//	cat urls.txt | urlhound crawl
//
// See --help for all available options.
package main

// main is the entry point for urlhound.
func main() {
	Execute()
}

// Package config defines the crawl configuration and its validation.
//
// A Config is resolved exactly once per run, from CLI flags merged with an
// optional YAML configuration file, and is read-only for the lifetime of
// the crawl engine. Validation happens up front so that a bad configuration
// fails before any network traffic is generated.
//
// The configuration file (.urlhound) supports global defaults plus
// per-site overrides (extra headers, cookie, depth), and is searched for
// in the current directory, the user's home directory, and the XDG config
// directory.
package config

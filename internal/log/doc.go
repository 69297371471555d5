// Package log provides logging with automatic masking of credentials,
// built on top of the standard slog package.
//
// Crawl configurations routinely carry secrets: Authorization headers
// passed via -H, session cookies from the config file, and proxy URLs
// with embedded userinfo. The SecureHandler masks these before they
// reach the underlying handler, so even verbose logs are safe to share
// in bug reports or scan archives.
//
// # Usage
//
//	logger := log.NewSecureLogger(os.Stderr, verbose)
//	logger.Debug("request prepared",
//	    "url", "https://example.com/login",
//	    "authorization", "Bearer eyJ...",  // masked
//	)
//	slog.SetDefault(logger)
package log

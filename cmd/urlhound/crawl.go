package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/urlhound/urlhound/internal/config"
	"github.com/urlhound/urlhound/internal/crawler"
	"github.com/urlhound/urlhound/internal/log"
	"github.com/urlhound/urlhound/internal/output"
)

// NewCrawlCmd creates the crawl command.
func NewCrawlCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crawl [url...]",
		Short: "Crawl seed URLs and stream every in-scope URL discovered",
		Long: `Crawl fetches the seed URLs, extracts links, script references and
form actions, and follows in-scope discoveries up to the depth limit.
Every in-scope URL is printed as soon as it is found.

Seeds come from arguments or, when none are given, from stdin (one URL
per line), so the command composes with subdomain enumeration tools.

Examples:
  # Crawl a single site two levels deep (the default)
  urlhound crawl https://example.com

  # Pipe seeds in from another tool
  cat live-hosts.txt | urlhound crawl -d 3 --subs

  # JSON Lines output for downstream processing
  urlhound crawl --json -w https://example.com | jq -r .URL

  # Authenticated crawl through a proxy
  urlhound crawl -H "Cookie: session=abc;;X-Api-Key: k" \
    --proxy http://127.0.0.1:8080 https://example.com

Configuration file (.urlhound) example:
  sites:
    example.com:
      cookie: "session_id=abc123"
      headers:
        Authorization: "Bearer token"
    staging.example.com:
      depth: 4`,
		Args: cobra.ArbitraryArgs,
		RunE: runCrawlCmd,
	}

	// Crawl behavior flags
	cmd.Flags().IntP("depth", "d", config.DefaultMaxDepth,
		"Maximum crawl recursion depth (seeds are depth 0)")
	cmd.Flags().IntP("threads", "t", config.DefaultConcurrency,
		"Number of concurrent fetch workers")
	cmd.Flags().BoolP("inside", "i", false,
		"Only crawl URLs under the seed's path")
	cmd.Flags().Bool("subs", false,
		"Include subdomains of the seed hosts in scope")
	cmd.Flags().Int("max-size", -1,
		"Maximum response size to read in KB (-1 for unlimited)")
	cmd.Flags().Int("timeout", -1,
		"Per-request timeout in seconds (-1 for none)")
	cmd.Flags().Bool("insecure", false,
		"Skip TLS certificate verification")
	cmd.Flags().Bool("disable-redirects", false,
		"Do not follow redirects (targets are still reported)")
	cmd.Flags().String("proxy", "",
		"Proxy URL for all requests (http, https, or socks5 scheme)")
	cmd.Flags().StringP("headers", "H", "",
		`Custom request headers, "Name: Value" pairs separated by ";;"`)
	cmd.Flags().Float64("rate-limit", 0,
		"Maximum requests per second across all workers (0 for unlimited)")
	cmd.Flags().Bool("robots", false,
		"Respect robots.txt rules")

	// Output flags
	cmd.Flags().BoolP("json", "j", false,
		"Output one JSON object per line (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output a Markdown run summary (mutually exclusive with --json)")
	cmd.Flags().BoolP("show-source", "s", false,
		"Show where each URL was extracted from (href, script, form)")
	cmd.Flags().BoolP("show-where", "w", false,
		"Show the page each URL was discovered on")
	cmd.Flags().BoolP("unique", "u", false,
		"Report each URL at most once")
	cmd.Flags().StringP("output", "o", "",
		"Write output to the given file instead of stdout")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .urlhound in current or home directory)")

	return cmd
}

// runCrawlCmd executes the crawl command.
func runCrawlCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// Logging goes to stderr so stdout stays a clean URL stream.
	logger := log.NewSecureLogger(cmd.ErrOrStderr(), getVerboseFlag(cmd))
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			logger.Info("received shutdown signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
	}()

	return runCrawl(ctx, cfg, logger, cmd.OutOrStdout())
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from cobra command flags. Seeds come from
// args when present, stdin otherwise.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error

	cfg.MaxDepth, err = cmd.Flags().GetInt("depth")
	if err != nil {
		return nil, err
	}

	cfg.Concurrency, err = cmd.Flags().GetInt("threads")
	if err != nil {
		return nil, err
	}

	cfg.Inside, err = cmd.Flags().GetBool("inside")
	if err != nil {
		return nil, err
	}

	cfg.IncludeSubdomains, err = cmd.Flags().GetBool("subs")
	if err != nil {
		return nil, err
	}

	maxSizeKB, err := cmd.Flags().GetInt("max-size")
	if err != nil {
		return nil, err
	}
	if maxSizeKB > 0 {
		cfg.MaxPageSize = int64(maxSizeKB) * 1024
	}

	timeoutSec, err := cmd.Flags().GetInt("timeout")
	if err != nil {
		return nil, err
	}
	if timeoutSec > 0 {
		cfg.Timeout = time.Duration(timeoutSec) * time.Second
	}

	cfg.Insecure, err = cmd.Flags().GetBool("insecure")
	if err != nil {
		return nil, err
	}

	disableRedirects, err := cmd.Flags().GetBool("disable-redirects")
	if err != nil {
		return nil, err
	}
	cfg.FollowRedirects = !disableRedirects

	cfg.ProxyURL, err = cmd.Flags().GetString("proxy")
	if err != nil {
		return nil, err
	}

	rawHeaders, err := cmd.Flags().GetString("headers")
	if err != nil {
		return nil, err
	}
	cfg.Headers = config.ParseHeaderString(rawHeaders)

	cfg.RateLimit, err = cmd.Flags().GetFloat64("rate-limit")
	if err != nil {
		return nil, err
	}

	cfg.RespectRobots, err = cmd.Flags().GetBool("robots")
	if err != nil {
		return nil, err
	}

	cfg.JSONOutput, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.ShowSource, err = cmd.Flags().GetBool("show-source")
	if err != nil {
		return nil, err
	}

	cfg.ShowWhere, err = cmd.Flags().GetBool("show-where")
	if err != nil {
		return nil, err
	}

	cfg.Unique, err = cmd.Flags().GetBool("unique")
	if err != nil {
		return nil, err
	}

	cfg.OutputFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// Load site-specific configurations from the config file.
	// An explicitly specified path must exist; otherwise a missing file
	// just means an empty config.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)
	if configPath != "" {
		cfg.SiteConfigs, err = config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	} else if explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	} else {
		cfg.SiteConfigs = &config.File{
			Sites: make(map[string]config.SiteConfig),
		}
	}

	cfg.Seeds = args
	if len(cfg.Seeds) == 0 {
		cfg.Seeds, err = readSeeds(cmd.InOrStdin())
		if err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// readSeeds reads seed URLs from r, one per line, skipping blanks.
func readSeeds(r io.Reader) ([]string, error) {
	var seeds []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		seeds = append(seeds, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read seeds from stdin: %w", err)
	}
	return seeds, nil
}

// runCrawl executes the crawl and streams records to the output writer.
func runCrawl(ctx context.Context, cfg *config.Config, logger *slog.Logger, stdout io.Writer) error {
	engine, err := crawler.NewEngine(cfg, logger)
	if err != nil {
		return err
	}

	dest, closeDest, err := openOutput(cfg, stdout)
	if err != nil {
		return err
	}
	defer closeDest()

	writer := buildWriter(cfg, dest)

	logger.Info("starting crawl",
		"seeds", cfg.Seeds,
		"depth", cfg.MaxDepth,
		"threads", cfg.Concurrency,
	)
	start := time.Now()

	var discoveries, failures int
	for rec := range engine.Run(ctx) {
		if rec.Failure != nil {
			failures++
		} else {
			discoveries++
		}
		if err := writer.Write(rec); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize output: %w", err)
	}

	logger.Info("crawl finished",
		"discoveries", discoveries,
		"failures", failures,
		"elapsed", time.Since(start).Round(time.Millisecond),
	)

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("crawl interrupted: %w", err)
	}
	return nil
}

// openOutput resolves the output destination: the -o file when given,
// stdout otherwise. The returned func closes any opened file.
func openOutput(cfg *config.Config, stdout io.Writer) (io.Writer, func(), error) {
	if cfg.OutputFile == "" {
		return stdout, func() {}, nil
	}

	dir := filepath.Dir(cfg.OutputFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	// Crawl results can reveal internal structure; keep them owner-only.
	f, err := os.OpenFile(cfg.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, func() { f.Close() }, nil
}

// buildWriter assembles the record writer chain for the configured
// format, wrapped with duplicate filtering when -u is set.
func buildWriter(cfg *config.Config, dest io.Writer) output.Writer {
	var w output.Writer
	switch {
	case cfg.JSONOutput:
		w = output.NewJSONWriter(dest, output.WithJSONWhere(cfg.ShowWhere))
	case cfg.MarkdownReport:
		w = output.NewMarkdownWriter(dest, strings.Join(cfg.Seeds, ", "))
	default:
		w = output.NewPlainWriter(dest,
			output.WithSource(cfg.ShowSource),
			output.WithWhere(cfg.ShowWhere),
		)
	}

	if cfg.Unique {
		w = output.NewUnique(w)
	}
	return w
}

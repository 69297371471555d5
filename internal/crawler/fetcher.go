package crawler

import (
	"context"
	"crypto/tls"
	"errors"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/net/proxy"

	"github.com/urlhound/urlhound/internal/config"
)

// FetchResult is the typed outcome of one fetch. Exactly one of the
// success fields or Failure is meaningful: when Failure is nil the fetch
// succeeded and Body holds up to MaxPageSize bytes of the response.
type FetchResult struct {
	// StatusCode is the HTTP response status.
	StatusCode int

	// Body is the response body, possibly truncated at the page size cap.
	Body []byte

	// ContentType is the response Content-Type header.
	ContentType string

	// FinalURL is the URL after any followed redirects. Relative
	// candidates are resolved against it, not the request URL.
	FinalURL string

	// Truncated reports that Body was cut at the page size cap.
	Truncated bool

	// RedirectTarget is the resolved Location of an unfollowed 3xx
	// response. Empty otherwise.
	RedirectTarget string

	// Failure is non-nil when the fetch failed.
	Failure *FetchFailure
}

// Fetcher performs single HTTP GET requests with the configured timeout,
// TLS, proxy, redirect and page-size policies. It is safe for concurrent
// use; all mutable state lives in the http.Client's transport.
type Fetcher struct {
	client *http.Client
	cfg    *config.Config
}

// NewFetcher builds a Fetcher from the crawl configuration. It returns an
// error only for proxy URLs that cannot be turned into a transport, which
// Validate should have caught earlier.
func NewFetcher(cfg *config.Config) (*Fetcher, error) {
	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: cfg.Concurrency,
	}

	if cfg.Insecure {
		// Explicit opt-in via --insecure; never the default.
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // User asked to skip verification
	}

	if cfg.ProxyURL != "" {
		proxyURL, err := url.Parse(cfg.ProxyURL)
		if err != nil {
			return nil, config.ErrInvalidProxyURL
		}
		switch proxyURL.Scheme {
		case "http", "https":
			transport.Proxy = http.ProxyURL(proxyURL)
		case "socks5":
			dialer, err := socksDialer(proxyURL)
			if err != nil {
				return nil, err
			}
			transport.Proxy = nil
			transport.DialContext = dialer.DialContext
		default:
			return nil, config.ErrInvalidProxyURL
		}
	}

	client := &http.Client{Transport: transport}
	if !cfg.FollowRedirects {
		client.CheckRedirect = func(_ *http.Request, _ []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}

	return &Fetcher{client: client, cfg: cfg}, nil
}

// socksDialer builds a context-aware SOCKS5 dialer, carrying userinfo
// from the proxy URL as authentication.
func socksDialer(proxyURL *url.URL) (proxy.ContextDialer, error) {
	var auth *proxy.Auth
	if proxyURL.User != nil {
		password, _ := proxyURL.User.Password()
		auth = &proxy.Auth{
			User:     proxyURL.User.Username(),
			Password: password,
		}
	}

	dialer, err := proxy.SOCKS5("tcp", proxyURL.Host, auth, proxy.Direct)
	if err != nil {
		return nil, err
	}

	ctxDialer, ok := dialer.(proxy.ContextDialer)
	if !ok {
		return nil, config.ErrInvalidProxyURL
	}
	return ctxDialer, nil
}

// Fetch performs one GET request and classifies the outcome. The returned
// result is never nil; failures are values, not errors, because a dead
// page must not abort the run.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) *FetchResult {
	if f.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.cfg.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return &FetchResult{Failure: &FetchFailure{Kind: FailureNetwork, Detail: err.Error()}}
	}
	f.applyHeaders(req)

	resp, err := f.client.Do(req)
	if err != nil {
		return &FetchResult{Failure: classifyFetchError(err)}
	}
	defer resp.Body.Close()

	result := &FetchResult{
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		FinalURL:    resp.Request.URL.String(),
	}

	// An unfollowed redirect is a terminal success; the target is
	// recorded as a discovery but not fetched.
	if !f.cfg.FollowRedirects && resp.StatusCode >= 300 && resp.StatusCode < 400 {
		if loc, err := resp.Location(); err == nil {
			result.RedirectTarget = loc.String()
		}
		return result
	}

	// Binary responses carry nothing to extract; classify instead of
	// reading megabytes we would throw away.
	if !isTextContent(result.ContentType) {
		result.Failure = &FetchFailure{
			Kind:   FailureNonText,
			Detail: "content type " + result.ContentType,
		}
		return result
	}

	if f.cfg.MaxPageSize > 0 && resp.ContentLength > f.cfg.MaxPageSize {
		result.Failure = &FetchFailure{
			Kind:   FailureTooLarge,
			Detail: "content length exceeds page size cap",
		}
		return result
	}

	reader := io.Reader(resp.Body)
	if f.cfg.MaxPageSize > 0 {
		reader = io.LimitReader(resp.Body, f.cfg.MaxPageSize+1)
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		result.Failure = classifyFetchError(err)
		return result
	}

	if f.cfg.MaxPageSize > 0 && int64(len(body)) > f.cfg.MaxPageSize {
		body = body[:f.cfg.MaxPageSize]
		result.Truncated = true
	}
	result.Body = body

	return result
}

// applyHeaders merges the configured headers into the request: the
// default User-Agent first, then global -H headers in order (duplicates
// allowed), then per-site headers and cookie from the config file.
func (f *Fetcher) applyHeaders(req *http.Request) {
	req.Header.Set("User-Agent", f.cfg.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	for _, h := range f.cfg.Headers {
		if strings.EqualFold(h.Name, "User-Agent") {
			req.Header.Set(h.Name, h.Value)
			continue
		}
		req.Header.Add(h.Name, h.Value)
	}

	site := f.cfg.SiteConfigs.SiteFor(req.URL.Hostname())
	for name, value := range site.Headers {
		req.Header.Set(name, value)
	}
	if site.Cookie != "" {
		req.Header.Set("Cookie", site.Cookie)
	}
}

// classifyFetchError maps a transport error to a failure kind.
func classifyFetchError(err error) *FetchFailure {
	detail := err.Error()

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return &FetchFailure{Kind: FailureTimeout, Detail: detail}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &FetchFailure{Kind: FailureTimeout, Detail: detail}
	}

	var certErr *tls.CertificateVerificationError
	var recordErr tls.RecordHeaderError
	if errors.As(err, &certErr) || errors.As(err, &recordErr) {
		return &FetchFailure{Kind: FailureTLS, Detail: detail}
	}
	// url.Error from client.Do wraps the cause but some TLS failures
	// only surface in the message.
	if strings.Contains(detail, "tls:") || strings.Contains(detail, "x509:") {
		return &FetchFailure{Kind: FailureTLS, Detail: detail}
	}

	return &FetchFailure{Kind: FailureNetwork, Detail: detail}
}

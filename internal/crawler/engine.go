package crawler

import (
	"context"
	"log/slog"
	"net/url"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/urlhound/urlhound/internal/config"
)

// recordBuffer is the capacity of the output channel. It only smooths
// bursts; a slow consumer backpressures the workers, which is the
// behavior we want.
const recordBuffer = 64

// Engine drives one crawl run: it owns the frontier, the worker pool and
// the visited set, and emits a stream of discovery records.
type Engine struct {
	cfg      *config.Config
	logger   *slog.Logger
	fetcher  *Fetcher
	scope    *Scope
	visited  *VisitedSet
	frontier *Frontier
	limiter  *rate.Limiter
	robots   *Robots

	// seeds are the normalized starting URLs.
	seeds []*url.URL

	// outstanding counts pushed-but-not-fully-processed tasks. A task's
	// decrement happens only after its children have been pushed, so
	// the counter cannot reach zero while more work can still appear.
	// Zero plus an empty frontier is quiescence.
	outstanding atomic.Int64
}

// NewEngine validates the configuration, normalizes the seeds and builds
// a ready-to-run engine. Seeds that fail normalization are skipped with a
// warning; if none survive, the run fails before any network traffic.
func NewEngine(cfg *config.Config, logger *slog.Logger) (*Engine, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	seeds := make([]*url.URL, 0, len(cfg.Seeds))
	for _, raw := range cfg.Seeds {
		u, err := NormalizeURL(raw, nil)
		if err != nil {
			logger.Warn("skipping invalid seed URL", "seed", raw)
			continue
		}
		seeds = append(seeds, u)
	}
	if len(seeds) == 0 {
		return nil, config.ErrNoSeeds
	}

	fetcher, err := NewFetcher(cfg)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		cfg:      cfg,
		logger:   logger,
		fetcher:  fetcher,
		scope:    NewScope(seeds, cfg.IncludeSubdomains, cfg.Inside),
		visited:  NewVisitedSet(),
		frontier: NewFrontier(maxConfiguredDepth(cfg)),
		seeds:    seeds,
	}
	if cfg.RateLimit > 0 {
		e.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), 1)
	}
	if cfg.RespectRobots {
		e.robots = NewRobots(fetcher.client, cfg.UserAgent)
	}
	return e, nil
}

// maxConfiguredDepth returns the deepest depth any host may reach, which
// is the frontier's hard cap. Per-host limits below the cap are enforced
// by the engine before pushing.
func maxConfiguredDepth(cfg *config.Config) int {
	limit := cfg.MaxDepth
	if cfg.SiteConfigs == nil {
		return limit
	}
	for _, site := range cfg.SiteConfigs.Sites {
		if site.Depth > limit {
			limit = site.Depth
		}
	}
	return limit
}

// depthLimit returns the effective depth limit for a host: the per-site
// override from the config file when set, the global limit otherwise.
func (e *Engine) depthLimit(host string) int {
	site := e.cfg.SiteConfigs.SiteFor(host)
	if site.Depth > 0 {
		return site.Depth
	}
	return e.cfg.MaxDepth
}

// Run starts the crawl and returns the record stream. The channel is
// closed when the run reaches quiescence or the context is cancelled;
// cancellation abandons in-flight tasks without retrying them.
func (e *Engine) Run(ctx context.Context) <-chan Record {
	records := make(chan Record, recordBuffer)
	go e.run(ctx, records)
	return records
}

// run seeds the frontier, starts the worker pool and closes the record
// stream once all workers have exited.
func (e *Engine) run(ctx context.Context, records chan<- Record) {
	defer close(records)

	// Cancellation closes the frontier so blocked workers wake up;
	// in-flight fetches abort through the request context.
	stop := context.AfterFunc(ctx, e.frontier.Close)
	defer stop()

	for _, seed := range e.seeds {
		canonical := seed.String()
		if !e.visited.TryClaim(canonical) {
			continue // duplicate seed
		}
		e.pushTask(Task{URL: canonical, Depth: 0})
	}
	if e.outstanding.Load() == 0 {
		e.frontier.Close()
	}

	g := new(errgroup.Group)
	for i := 0; i < e.cfg.Concurrency; i++ {
		g.Go(func() error {
			e.worker(ctx, records)
			return nil
		})
	}
	_ = g.Wait() //nolint:errcheck // Workers never return errors; failures are records
}

// worker is the fetch loop each pool member runs until the frontier
// closes.
func (e *Engine) worker(ctx context.Context, records chan<- Record) {
	for {
		task, ok := e.frontier.Pop()
		if !ok {
			return
		}
		e.process(ctx, task, records)
		e.finishTask()
	}
}

// pushTask increments the outstanding counter and enqueues the task.
// The increment happens before the push so the counter can never be zero
// while the task is in flight; refused pushes roll it back.
func (e *Engine) pushTask(t Task) {
	e.outstanding.Add(1)
	if !e.frontier.Push(t) {
		e.finishTask()
	}
}

// finishTask decrements the outstanding counter and, at zero, closes the
// frontier: no task is queued or in flight, so no more work can appear.
func (e *Engine) finishTask() {
	if e.outstanding.Add(-1) == 0 {
		e.frontier.Close()
	}
}

// process fetches one task and turns the response into discovery records
// and child tasks. Fetch failures become diagnostic records; they never
// derive children and never abort the run.
func (e *Engine) process(ctx context.Context, task Task, records chan<- Record) {
	if e.limiter != nil {
		if err := e.limiter.Wait(ctx); err != nil {
			return
		}
	}

	pageURL, err := url.Parse(task.URL)
	if err != nil {
		return
	}
	if e.robots != nil && !e.robots.Allowed(ctx, pageURL) {
		e.logger.Debug("skipping URL disallowed by robots.txt", "url", task.URL)
		return
	}

	e.logger.Debug("fetching", "url", task.URL, "depth", task.Depth)
	res := e.fetcher.Fetch(ctx, task.URL)
	if res.Failure != nil {
		e.logger.Debug("fetch failed",
			"url", task.URL,
			"kind", res.Failure.Kind,
			"detail", res.Failure.Detail,
		)
		e.emit(ctx, records, Record{
			URL:     task.URL,
			Source:  task.Source,
			Where:   task.Origin,
			Depth:   task.Depth,
			Failure: res.Failure,
		})
		return
	}

	base := pageURL
	if final, err := url.Parse(res.FinalURL); err == nil {
		base = final
	}

	candidates := Extract(res.Body, res.ContentType)
	if res.RedirectTarget != "" {
		candidates = append(candidates, Candidate{Raw: res.RedirectTarget, Source: SourceOther})
	}

	childDepth := task.Depth + 1
	for _, c := range candidates {
		child, err := NormalizeURL(c.Raw, base)
		if err != nil {
			continue
		}
		if !e.scope.Contains(child) {
			continue
		}

		canonical := child.String()
		e.emit(ctx, records, Record{
			URL:    canonical,
			Source: c.Source,
			Where:  task.URL,
			Depth:  childDepth,
		})

		// The depth check precedes the claim so that a URL first seen
		// too deep can still be fetched if rediscovered within budget.
		if childDepth > e.depthLimit(child.Hostname()) {
			continue
		}
		if !e.visited.TryClaim(canonical) {
			continue // already fetched or queued; reported above anyway
		}
		e.pushTask(Task{
			URL:    canonical,
			Depth:  childDepth,
			Origin: task.URL,
			Source: c.Source,
		})
	}
}

// emit delivers a record unless the run has been cancelled.
func (e *Engine) emit(ctx context.Context, records chan<- Record, rec Record) {
	select {
	case records <- rec:
	case <-ctx.Done():
	}
}

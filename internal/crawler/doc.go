// Package crawler implements the concurrent crawl engine that discovers
// reachable URLs on a set of target sites.
//
// # Architecture
//
// The Engine owns all crawl state: a Frontier work queue of depth-tagged
// tasks, a VisitedSet that guarantees each URL is fetched at most once, and
// a fixed-size pool of fetch workers. Each worker runs the same loop: pop a
// task, fetch the page, extract candidate URLs, normalize them, filter them
// against the crawl Scope, report the survivors as discovery records, and
// enqueue the new ones for further crawling.
//
// # Components
//
//   - Engine: orchestrates workers and detects quiescence
//   - Frontier: blocking work queue with close semantics
//   - Fetcher: one HTTP GET per task with timeout, proxy, TLS, redirect
//     and page-size policies applied
//   - Extract: best-effort HTML scan for link-bearing attributes
//   - NormalizeURL / VisitedSet: canonicalization and atomic claim
//   - Scope: pure in-scope predicate derived from the seeds
//   - Robots: optional robots.txt gate with a per-host cache
//
// # Termination
//
// The link graph is cyclic in general, so termination relies on two
// mechanisms: the VisitedSet makes revisits impossible, and an
// outstanding-work counter detects quiescence. The counter is incremented
// for every task pushed and decremented only after a popped task has been
// fully processed, including pushing its children. When it reaches zero no
// worker can produce more work, so the frontier is closed and the pool
// drains.
//
// # Usage
//
//	engine, err := crawler.NewEngine(cfg, logger)
//	if err != nil { ... }
//	for rec := range engine.Run(ctx) {
//	    // rec is a discovery or a fetch-failure diagnostic
//	}
package crawler

package frontier

import (
	"sync"

	"github.com/dociq/ragforge/internal/config"
	"github.com/dociq/ragforge/pkg/urlutil"
)

/*
Frontier Responsibilities
- Maintain BFS ordering
- Deduplicate URLs
- Track crawl depth
- Prevent infinite traversal
- Knows nothing about:
	- fetching
	- extraction
	- markdown
	- storage

It is a data structure + policy module, not a pipeline executor.
*/

// CrawlFrontier is the sole keeper of crawl ordering and visited state.
// It accepts only already-admitted candidates (the Orchestrator is the
// single admission choke point) and hands them back out in strict BFS
// order: every URL at depth N is dequeued before any URL at depth N+1.
type CrawlFrontier struct {
	mu             sync.Mutex
	cfg            config.Config
	queuesByDepth  map[int]*FIFOQueue[CrawlToken]
	pendingByDepth map[int]int
	visited        Set[string]
	visitedCount   int
}

// NewCrawlFrontier returns a zero-state frontier. Init must be called
// before Submit/Dequeue are used against real limits.
func NewCrawlFrontier() CrawlFrontier {
	return CrawlFrontier{}
}

// Init resets the frontier's state against the given crawl configuration.
func (f *CrawlFrontier) Init(cfg config.Config) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cfg = cfg
	f.queuesByDepth = make(map[int]*FIFOQueue[CrawlToken])
	f.pendingByDepth = make(map[int]int)
	f.visited = NewSet[string]()
	f.visitedCount = 0
}

// Submit admits a candidate into the frontier. The caller (Orchestrator)
// must have already cleared robots/scope checks — Submit only applies
// depth/page limits and canonicalized-URL deduplication; it never
// re-evaluates admission policy.
// Submit returns whether the candidate was actually admitted. Callers that
// need to track outstanding work (e.g. a concurrent orchestrator's
// drain-completion counter) must use this return value rather than
// assuming every Submit call enqueues something — duplicates and
// limit-exceeding candidates are silently dropped.
func (f *CrawlFrontier) Submit(candidate CrawlAdmissionCandidate) bool {
	canonical := urlutil.Canonicalize(candidate.TargetURL())
	key := canonical.String()
	depth := candidate.DiscoveryMetadata().Depth()

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.visited == nil {
		f.visited = NewSet[string]()
	}
	if f.visited.Contains(key) {
		return false
	}
	if maxPages := f.cfg.MaxPages(); maxPages > 0 && f.visitedCount >= maxPages {
		return false
	}
	if maxDepth := f.cfg.MaxDepth(); maxDepth > 0 && depth > maxDepth {
		return false
	}

	f.visited.Add(key)
	f.visitedCount++

	if f.queuesByDepth == nil {
		f.queuesByDepth = make(map[int]*FIFOQueue[CrawlToken])
	}
	q, ok := f.queuesByDepth[depth]
	if !ok {
		q = NewFIFOQueue[CrawlToken]()
		f.queuesByDepth[depth] = q
	}
	q.Enqueue(NewCrawlToken(candidate.TargetURL(), depth))
	f.pendingByDepth[depth]++
	return true
}

// Dequeue pops the next token in strict BFS order: the lowest depth with
// any pending tokens, regardless of whether intermediate depths were ever
// populated (a never-seen or already-drained depth is skipped, not
// dereferenced).
func (f *CrawlFrontier) Dequeue() (CrawlToken, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	minDepth := -1
	for d, q := range f.queuesByDepth {
		if q == nil || q.Size() == 0 {
			continue
		}
		if minDepth == -1 || d < minDepth {
			minDepth = d
		}
	}
	if minDepth == -1 {
		return CrawlToken{}, false
	}

	token, _ := f.queuesByDepth[minDepth].Dequeue()
	f.pendingByDepth[minDepth]--
	return token, true
}

// VisitedCount reports the number of distinct canonicalized URLs ever
// admitted. It is append-only: dequeuing does not decrease it.
func (f *CrawlFrontier) VisitedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.visitedCount
}

// IsDepthExhausted reports whether depth has no pending (not yet
// dequeued) tokens. An empty or never-populated depth counts as exhausted.
func (f *CrawlFrontier) IsDepthExhausted(depth int) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.pendingByDepth == nil {
		return true
	}
	return f.pendingByDepth[depth] <= 0
}

// CurrentMinDepth returns the shallowest depth with pending tokens, or -1
// if the frontier has nothing left to dequeue.
func (f *CrawlFrontier) CurrentMinDepth() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	minDepth := -1
	for d, c := range f.pendingByDepth {
		if c <= 0 {
			continue
		}
		if minDepth == -1 || d < minDepth {
			minDepth = d
		}
	}
	return minDepth
}

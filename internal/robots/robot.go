package robots

import (
	"context"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/dociq/ragforge/internal/robots/cache"
	"github.com/dociq/ragforge/internal/telemetry"
)

/*
Responsibilities

- Fetch robots.txt per host
- Cache rules for crawl duration
- Enforce allow/disallow rules before enqueue

Robots checks occur before a URL enters the frontier.

Rule selection: most-specific user-agent match; within that agent, the
longest matching pattern wins; on an exact length tie, Allow beats Disallow.
*/

// robotState holds CachedRobot's mutable per-host cache behind a pointer so
// CachedRobot itself stays comparable (==) for tests and zero-value checks.
type robotState struct {
	mu       sync.RWMutex
	ruleSets map[string]ruleSet
}

// CachedRobot is the default Robot implementation: it fetches and parses
// robots.txt once per host (the RobotsFetcher's own cache.Cache keeps the
// raw fetch cheap across hosts for the crawl's duration), maps it to a
// ruleSet for the configured user agent, and evaluates admission decisions
// against it.
type CachedRobot struct {
	fetcher   *RobotsFetcher
	userAgent string
	state     *robotState
}

// NewCachedRobot constructs a CachedRobot backed by an in-memory robots.txt
// cache and the given metadata sink for fetch observability.
func NewCachedRobot(metadataSink telemetry.MetadataSink) CachedRobot {
	return CachedRobot{
		fetcher: NewRobotsFetcher(metadataSink, "", cache.NewMemoryCache()),
		state:   &robotState{ruleSets: make(map[string]ruleSet)},
	}
}

// Init sets the user agent identifying this crawler to remote hosts and
// used for group matching.
func (r *CachedRobot) Init(userAgent string) {
	r.userAgent = userAgent
	r.fetcher.userAgent = userAgent
}

// InitWithCache is Init plus an explicit robots.txt cache, used when callers
// want to share or pre-seed the underlying cache.Cache implementation.
func (r *CachedRobot) InitWithCache(userAgent string, c cache.Cache) {
	r.Init(userAgent)
	r.fetcher.cache = c
}

// Decide evaluates whether target may be crawled, fetching and caching the
// host's robots.txt on first use.
func (r *CachedRobot) Decide(target url.URL) (Decision, *RobotsError) {
	rs, err := r.ruleSetFor(target)
	if err != nil {
		return Decision{}, err
	}

	if !rs.hasGroups {
		return Decision{Url: target, Allowed: true, Reason: EmptyRuleSet}, nil
	}
	if !rs.matchedGroup {
		return Decision{Url: target, Allowed: true, Reason: UserAgentNotMatched}, nil
	}

	path := target.EscapedPath()
	if path == "" {
		path = "/"
	}

	allowed, reason := evaluate(path, rs.allowRules, rs.disallowRules)

	var crawlDelay time.Duration
	if rs.crawlDelay != nil {
		crawlDelay = *rs.crawlDelay
	}

	return Decision{
		Url:        target,
		Allowed:    allowed,
		Reason:     reason,
		CrawlDelay: crawlDelay,
	}, nil
}

func (r *CachedRobot) ruleSetFor(target url.URL) (ruleSet, *RobotsError) {
	r.state.mu.RLock()
	rs, found := r.state.ruleSets[target.Host]
	r.state.mu.RUnlock()
	if found {
		return rs, nil
	}

	result, err := r.fetcher.Fetch(context.Background(), schemeOrDefault(target.Scheme), target.Host)
	if err != nil {
		return ruleSet{}, err
	}

	rs = MapResponseToRuleSet(result.Response, r.userAgent, result.FetchedAt)

	r.state.mu.Lock()
	r.state.ruleSets[target.Host] = rs
	r.state.mu.Unlock()

	return rs, nil
}

func schemeOrDefault(scheme string) string {
	if scheme == "" {
		return "https"
	}
	return scheme
}

// evaluate applies the longest-match-wins, tie-favors-Allow rule (spec's
// RobotsRule entity definition) across the allow and disallow rule sets.
func evaluate(path string, allows, disallows []pathRule) (bool, DecisionReason) {
	bestAllowLen := -1
	for _, rule := range allows {
		if matchesPattern(path, rule.prefix) && len(rule.prefix) > bestAllowLen {
			bestAllowLen = len(rule.prefix)
		}
	}
	bestDisallowLen := -1
	for _, rule := range disallows {
		if matchesPattern(path, rule.prefix) && len(rule.prefix) > bestDisallowLen {
			bestDisallowLen = len(rule.prefix)
		}
	}

	if bestDisallowLen > bestAllowLen {
		return false, DisallowedByRobots
	}
	if bestAllowLen >= 0 {
		return true, AllowedByRobots
	}
	return true, NoMatchingRules
}

// matchesPattern implements robots.txt pattern matching: '*' matches any
// sequence of characters, and a trailing '$' anchors the match to the end
// of path.
func matchesPattern(path, pattern string) bool {
	if pattern == "" {
		return false
	}

	anchored := strings.HasSuffix(pattern, "$")
	if anchored {
		pattern = pattern[:len(pattern)-1]
	}

	segments := strings.Split(pattern, "*")
	if !strings.HasPrefix(path, segments[0]) {
		return false
	}
	remaining := path[len(segments[0]):]

	for i := 1; i < len(segments); i++ {
		seg := segments[i]
		if seg == "" {
			continue
		}
		idx := strings.Index(remaining, seg)
		if idx == -1 {
			return false
		}
		remaining = remaining[idx+len(seg):]
	}

	if anchored {
		return remaining == ""
	}
	return true
}

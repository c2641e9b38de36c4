package robots

import (
	"net/url"
	"time"
)

// Permission modeling

type pathRule struct {
	prefix string
}

type ruleSet struct {
	host string

	// The user-agent these rules apply to (resolved, not raw)
	userAgent string

	// Path-based rules, evaluated in order of precedence
	allowRules    []pathRule
	disallowRules []pathRule

	// Optional crawl delay from robots.txt
	crawlDelay *time.Duration

	// Metadata / observability
	fetchedAt time.Time
	sourceURL string

	// matchedGroup indicates if a user-agent group was matched in robots.txt
	// This is false when no group matches (not even wildcard *)
	matchedGroup bool

	// hasGroups indicates if the robots.txt file had any user-agent groups at all
	// This is false when the response had no groups (e.g., 404 or empty file)
	hasGroups bool

	// additionalMetadata carries Host/Request-rate/Visit-time directives,
	// observability-only, never consulted for admission decisions.
	additionalMetadata map[string][]string
}

// AdditionalMetadata returns the Host/Request-rate/Visit-time directives
// recognized but not used for admission decisions.
func (r ruleSet) AdditionalMetadata() map[string][]string {
	return r.additionalMetadata
}

type DecisionReason string

const (
	AllowedByRobots     DecisionReason = "allowed_by_robots"
	DisallowedByRobots  DecisionReason = "disallowed_by_robots"
	UserAgentNotMatched DecisionReason = "user_agent_not_matched"
	EmptyRuleSet        DecisionReason = "empty_rule_set"
	NoMatchingRules     DecisionReason = "no_matching_rules"
)

type Decision struct {
	Url url.URL

	Allowed bool

	// Why this decision was made (for logging/debugging)
	Reason DecisionReason

	// Optional delay override (robots crawl-delay); zero means no override.
	CrawlDelay time.Duration
}

// Robot is the orchestration port the scheduler consumes: per-host robots.txt
// fetch/cache/parse, rule evaluation, and crawl-delay extraction.
type Robot interface {
	Init(userAgent string)
	Decide(target url.URL) (Decision, *RobotsError)
}

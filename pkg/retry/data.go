package retry

import (
	"time"

	"github.com/dociq/ragforge/pkg/timeutil"
)

// Strategy selects how the delay before each retry attempt grows.
// The zero value is StrategyExponential so existing callers of NewRetryParam,
// which never set Strategy explicitly, keep the original behavior.
type Strategy int

const (
	StrategyExponential Strategy = iota
	StrategyFixed
	StrategyLinear
)

// RetryParam holds the parameters for retry logic.
// These parameters are passed from outside (e.g., config) and should not
// be known by the retry handler internally.
type RetryParam struct {
	BaseDelay    time.Duration
	Jitter       time.Duration
	RandomSeed   int64
	MaxAttempts  int
	BackoffParam timeutil.BackoffParam
	Strategy     Strategy
}

// NewRetryParam creates a new RetryParam with the given settings, using the
// Exponential backoff strategy.
func NewRetryParam(
	baseDelay time.Duration,
	jitter time.Duration,
	randomSeed int64,
	maxAttempts int,
	backoffParam timeutil.BackoffParam,
) RetryParam {
	return RetryParam{
		BaseDelay:    baseDelay,
		Jitter:       jitter,
		RandomSeed:   randomSeed,
		MaxAttempts:  maxAttempts,
		BackoffParam: backoffParam,
		Strategy:     StrategyExponential,
	}
}

// NewRetryParamWithStrategy is NewRetryParam with an explicit backoff strategy,
// used by the Resilience Engine's composite Retry policy.
func NewRetryParamWithStrategy(
	baseDelay time.Duration,
	jitter time.Duration,
	randomSeed int64,
	maxAttempts int,
	backoffParam timeutil.BackoffParam,
	strategy Strategy,
) RetryParam {
	p := NewRetryParam(baseDelay, jitter, randomSeed, maxAttempts, backoffParam)
	p.Strategy = strategy
	return p
}

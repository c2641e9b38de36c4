package pipeline

import (
	"time"

	"github.com/dociq/ragforge/internal/fetcher"
	"github.com/dociq/ragforge/pkg/bulkhead"
	"github.com/dociq/ragforge/pkg/circuitbreaker"
	"github.com/dociq/ragforge/pkg/resilience"
	"github.com/dociq/ragforge/pkg/retry"
	"github.com/dociq/ragforge/pkg/timeutil"
)

// Fronting every fetch with the Resilience Engine (pkg/resilience) rather
// than the bare retry loop Fetcher used to run on its own: D no longer owns
// backoff decisions, C does, and C also adds circuit-breaking, a bulkhead,
// and a per-attempt timeout around it.

const (
	defaultFetchTimeout        = 30 * time.Second
	fetchBreakerFailThreshold  = 5
	fetchBreakerCooldown       = 30 * time.Second
	fetchBreakerSamplingWindow = 60 * time.Second
	fetchBreakerMinThroughput  = 10
	fetchBreakerFailureRatio   = 0.5
	fetchBulkheadQueueFactor   = 4
)

// newFetchPolicy builds the HTTP-flavored Resilience Engine policy that
// fronts every call to Fetcher.Fetch: bulkhead (admission) -> circuit
// breaker (fail fast) -> retry (per-attempt backoff) -> timeout (bounds each
// attempt), outermost to innermost.
func newFetchPolicy(opts Options) (*resilience.Policy[fetcher.FetchResult], error) {
	concurrency := opts.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}

	retryParam := retryParamFor(opts)

	breaker := circuitbreaker.New[fetcher.FetchResult](circuitbreaker.Settings{
		Name:              "fetch",
		FailureThreshold:  fetchBreakerFailThreshold,
		DurationOfBreak:   fetchBreakerCooldown,
		SamplingDuration:  fetchBreakerSamplingWindow,
		MinimumThroughput: fetchBreakerMinThroughput,
		FailureRatio:      fetchBreakerFailureRatio,
	})

	bh := bulkhead.New[fetcher.FetchResult]("fetch", concurrency, concurrency*fetchBulkheadQueueFactor)

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}
	timeoutParam := &resilience.TimeoutParam{Duration: timeout, Strategy: resilience.TimeoutCooperative}

	order := []resilience.Kind{
		resilience.KindBulkhead,
		resilience.KindCircuitBreaker,
		resilience.KindRetry,
		resilience.KindTimeout,
	}

	return resilience.NewPolicy[fetcher.FetchResult]("fetch", order, &retryParam, breaker, bh, timeoutParam, resilience.NewStatsRecorder())
}

// singleAttemptRetryParam disables Fetcher's own retry loop: with the
// Resilience Engine now owning retry/backoff around the whole fetch call,
// Fetch itself should make exactly one attempt per invocation.
func singleAttemptRetryParam(opts Options) retry.RetryParam {
	return retry.NewRetryParam(0, 0, opts.RandomSeed, 1, timeutil.NewBackoffParam(0, 1, 0))
}

/*
Resilience Engine — composite policy.

A Policy composes a subset of {Retry, CircuitBreaker, Timeout, Bulkhead} in an
explicit execution order, P1 outermost: a call flows P1 -> P2 -> ... ->
operation -> ... -> P2 -> P1. Each primitive lives in its own package
(pkg/retry, pkg/circuitbreaker, pkg/bulkhead) and is wired together here.
*/
package resilience

import (
	"context"
	"time"

	"github.com/dociq/ragforge/pkg/bulkhead"
	"github.com/dociq/ragforge/pkg/circuitbreaker"
	"github.com/dociq/ragforge/pkg/failure"
	"github.com/dociq/ragforge/pkg/retry"
)

// Operation is the shape every resilience primitive wraps.
type Operation[T any] func(ctx context.Context) (T, failure.ClassifiedError)

// Policy composes zero or more resilience primitives for operations
// returning T. A nil field for a Kind listed in ExecutionOrder is a
// construction error (see NewPolicy).
type Policy[T any] struct {
	Name           string
	ExecutionOrder []Kind
	RetryParam     *retry.RetryParam
	Breaker        *circuitbreaker.Breaker[T]
	Bulkhead       *bulkhead.Bulkhead[T]
	Timeout        *TimeoutParam
	Stats          *StatsRecorder
}

// NewPolicy validates that every Kind named in order has a corresponding
// non-nil field set, then returns a ready-to-use Policy. Kinds not listed in
// order are ignored even if their field is set.
func NewPolicy[T any](name string, order []Kind, retryParam *retry.RetryParam, breaker *circuitbreaker.Breaker[T], bh *bulkhead.Bulkhead[T], timeout *TimeoutParam, stats *StatsRecorder) (*Policy[T], error) {
	for _, k := range order {
		switch k {
		case KindRetry:
			if retryParam == nil {
				return nil, &MisconfiguredPolicyError{PolicyName: name, Kind: k}
			}
		case KindCircuitBreaker:
			if breaker == nil {
				return nil, &MisconfiguredPolicyError{PolicyName: name, Kind: k}
			}
		case KindBulkhead:
			if bh == nil {
				return nil, &MisconfiguredPolicyError{PolicyName: name, Kind: k}
			}
		case KindTimeout:
			if timeout == nil {
				return nil, &MisconfiguredPolicyError{PolicyName: name, Kind: k}
			}
		}
	}
	return &Policy[T]{
		Name:           name,
		ExecutionOrder: order,
		RetryParam:     retryParam,
		Breaker:        breaker,
		Bulkhead:       bh,
		Timeout:        timeout,
		Stats:          stats,
	}, nil
}

// Execute runs op through the configured primitives in ExecutionOrder,
// outermost first, recording append-only statistics as it goes.
func (p *Policy[T]) Execute(ctx context.Context, op Operation[T]) (T, failure.ClassifiedError) {
	chain := op
	for i := len(p.ExecutionOrder) - 1; i >= 0; i-- {
		chain = p.wrap(p.ExecutionOrder[i], chain)
	}

	start := time.Now()
	result, err := chain(ctx)
	elapsed := time.Since(start)

	if p.Stats != nil {
		evType := EventSuccess
		if err != nil {
			evType = EventFailure
		}
		p.Stats.Record(StatEvent{Type: evType, PolicyName: p.Name, Elapsed: elapsed, Timestamp: start})
	}
	return result, err
}

func (p *Policy[T]) wrap(kind Kind, inner Operation[T]) Operation[T] {
	switch kind {
	case KindRetry:
		return p.wrapRetry(inner)
	case KindCircuitBreaker:
		return p.wrapCircuitBreaker(inner)
	case KindTimeout:
		return p.wrapTimeout(inner)
	case KindBulkhead:
		return p.wrapBulkhead(inner)
	default:
		return inner
	}
}

func (p *Policy[T]) wrapRetry(inner Operation[T]) Operation[T] {
	if p.RetryParam == nil {
		return inner
	}
	return func(ctx context.Context) (T, failure.ClassifiedError) {
		attempt := 0
		result := retry.Retry(*p.RetryParam, func() (T, failure.ClassifiedError) {
			attempt++
			if attempt > 1 && p.Stats != nil {
				p.Stats.Record(StatEvent{Type: EventRetry, PolicyName: p.Name, Timestamp: time.Now()})
			}
			return inner(ctx)
		})
		return result.Value(), result.Err()
	}
}

func (p *Policy[T]) wrapCircuitBreaker(inner Operation[T]) Operation[T] {
	if p.Breaker == nil {
		return inner
	}
	return func(ctx context.Context) (T, failure.ClassifiedError) {
		result, err := p.Breaker.Execute(ctx, inner)
		if err != nil {
			if _, isOpen := err.(*circuitbreaker.CircuitOpenError); isOpen && p.Stats != nil {
				p.Stats.Record(StatEvent{Type: EventCBOpened, PolicyName: p.Name, Timestamp: time.Now()})
			}
		}
		return result, err
	}
}

func (p *Policy[T]) wrapBulkhead(inner Operation[T]) Operation[T] {
	if p.Bulkhead == nil {
		return inner
	}
	return func(ctx context.Context) (T, failure.ClassifiedError) {
		result, err := p.Bulkhead.Execute(ctx, inner)
		if err != nil {
			if _, rejected := err.(*bulkhead.BulkheadRejectedError); rejected && p.Stats != nil {
				p.Stats.Record(StatEvent{Type: EventBulkheadRejected, PolicyName: p.Name, Timestamp: time.Now()})
			}
		}
		return result, err
	}
}

func (p *Policy[T]) wrapTimeout(inner Operation[T]) Operation[T] {
	if p.Timeout == nil || p.Timeout.Duration <= 0 {
		return inner
	}
	timeout := *p.Timeout
	return func(ctx context.Context) (T, failure.ClassifiedError) {
		var zero T
		deadlineCtx, cancel := context.WithTimeout(ctx, timeout.Duration)
		defer cancel()

		if timeout.Strategy == TimeoutCooperative {
			// Cooperative: pass the derived context through and await the
			// operation's own completion; it is expected to observe
			// deadlineCtx.Done(). If it still overran, report a timeout.
			result, err := inner(deadlineCtx)
			if deadlineCtx.Err() == context.DeadlineExceeded {
				if p.Stats != nil {
					p.Stats.Record(StatEvent{Type: EventTimeout, PolicyName: p.Name, Timestamp: time.Now()})
				}
				return zero, &TimeoutError{PolicyName: p.Name, Strategy: timeout.Strategy}
			}
			return result, err
		}

		// Pessimistic: abandon the wait unconditionally once the deadline
		// elapses, regardless of whether the operation ever observes it.
		type outcome struct {
			value T
			err   failure.ClassifiedError
		}
		done := make(chan outcome, 1)
		go func() {
			v, e := inner(deadlineCtx)
			done <- outcome{v, e}
		}()

		select {
		case out := <-done:
			return out.value, out.err
		case <-deadlineCtx.Done():
			if p.Stats != nil {
				p.Stats.Record(StatEvent{Type: EventTimeout, PolicyName: p.Name, Timestamp: time.Now()})
			}
			return zero, &TimeoutError{PolicyName: p.Name, Strategy: timeout.Strategy}
		}
	}
}

// HTTPRetryPredicate returns true for the HTTP-retryable error classes:
// connection, DNS, 5xx, 429, and timeout errors. It is applied by checking
// the error's own IsRetryable() method, the same mechanism pkg/retry already
// uses, so the HTTP-specific behavior is realized as a convention on how
// fetcher-layer errors set Retryable rather than a second predicate
// mechanism.
func HTTPRetryPredicate(err failure.ClassifiedError) bool {
	type retryable interface{ IsRetryable() bool }
	if r, ok := err.(retryable); ok {
		return r.IsRetryable()
	}
	return false
}

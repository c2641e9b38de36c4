/*
Resilience Engine — CircuitBreaker primitive.

Responsibilities:
- Track per-name state (Closed, Open, HalfOpen) across calls
- Trip to Open on consecutive-failures >= threshold, or on failure-ratio
  within a sampling window once minimum throughput is met
- Fail fast with CircuitOpenError while Open, without invoking the operation
- Probe a single call after the break duration elapses (HalfOpen); close on
  success, reopen on any failure

Built on github.com/sony/gobreaker/v2, which already implements this state
machine; this package adapts its error and settings shapes to the
ClassifiedError idiom used throughout the rest of the engine.
*/
package circuitbreaker

import (
	"context"
	"errors"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/dociq/ragforge/pkg/failure"
)

// State is one of the three CircuitBreaker states.
type State int

const (
	StateClosed State = iota
	StateHalfOpen
	StateOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateHalfOpen:
		return "half-open"
	case StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

// Settings configures a named breaker.
type Settings struct {
	Name              string
	FailureThreshold  uint32        // consecutive failures that trip the breaker
	DurationOfBreak   time.Duration // Open -> HalfOpen cooldown
	SamplingDuration  time.Duration // window over which failure ratio is measured
	MinimumThroughput uint32        // requests required before ratio tripping applies
	FailureRatio      float64       // [0,1] ratio that trips the breaker once throughput is met
}

// Breaker wraps a gobreaker.CircuitBreaker[T] for a single named dependency.
type Breaker[T any] struct {
	name string
	cb   *gobreaker.CircuitBreaker[T]
}

// New constructs a Breaker. Tripping occurs when EITHER the consecutive
// failure count reaches FailureThreshold OR (throughput >= MinimumThroughput
// AND failure ratio >= FailureRatio) within SamplingDuration — resolving the
// Open Question about which rule governs Closed->Open by applying both,
// the consecutive-failure path being the cheaper, always-on fast path and
// the ratio path applying once enough samples exist.
func New[T any](settings Settings) *Breaker[T] {
	st := gobreaker.Settings{
		Name:     settings.Name,
		Interval: settings.SamplingDuration,
		Timeout:  settings.DurationOfBreak,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if settings.FailureThreshold > 0 && counts.ConsecutiveFailures >= settings.FailureThreshold {
				return true
			}
			if settings.MinimumThroughput == 0 || counts.Requests < settings.MinimumThroughput {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			return ratio >= settings.FailureRatio
		},
	}
	return &Breaker[T]{
		name: settings.Name,
		cb:   gobreaker.NewCircuitBreaker[T](st),
	}
}

// Execute runs op through the breaker. When the breaker is Open (or HalfOpen
// past its probe limit), op is never invoked and a CircuitOpenError is
// returned immediately instead.
func (b *Breaker[T]) Execute(ctx context.Context, op func(ctx context.Context) (T, failure.ClassifiedError)) (T, failure.ClassifiedError) {
	result, err := b.cb.Execute(func() (T, error) {
		val, cerr := op(ctx)
		if cerr != nil {
			return val, cerr
		}
		return val, nil
	})
	if err == nil {
		return result, nil
	}

	var zero T
	if errors.Is(err, gobreaker.ErrOpenState) {
		return zero, &CircuitOpenError{Name: b.name, Cause: ErrCauseOpen, Message: err.Error()}
	}
	if errors.Is(err, gobreaker.ErrTooManyRequests) {
		return zero, &CircuitOpenError{Name: b.name, Cause: ErrCauseTooManyProbes, Message: err.Error()}
	}
	if cerr, ok := err.(failure.ClassifiedError); ok {
		return zero, cerr
	}
	// op() always wraps failures as ClassifiedError, so this path is
	// unreachable in practice; kept as a safe fallback for gobreaker's own
	// internal errors.
	return zero, &CircuitOpenError{Name: b.name, Cause: ErrCauseOpen, Message: err.Error()}
}

// State reports the breaker's current state.
func (b *Breaker[T]) State() State {
	switch b.cb.State() {
	case gobreaker.StateHalfOpen:
		return StateHalfOpen
	case gobreaker.StateOpen:
		return StateOpen
	default:
		return StateClosed
	}
}

// Name returns the breaker's configured name.
func (b *Breaker[T]) Name() string {
	return b.name
}

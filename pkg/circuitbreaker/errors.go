package circuitbreaker

import (
	"fmt"

	"github.com/dociq/ragforge/pkg/failure"
)

type CircuitBreakerErrorCause string

const (
	ErrCauseOpen          CircuitBreakerErrorCause = "circuit-open"
	ErrCauseTooManyProbes CircuitBreakerErrorCause = "too-many-half-open-probes"
)

// CircuitOpenError is returned when a call is rejected without invoking the
// wrapped operation because the breaker is Open (or HalfOpen and already at
// its probe limit). It is never retryable at this layer: the caller decides
// whether to retry after the cooldown window.
type CircuitOpenError struct {
	Name    string
	Cause   CircuitBreakerErrorCause
	Message string
}

func (e *CircuitOpenError) Error() string {
	return fmt.Sprintf("circuit breaker %q: %s: %s", e.Name, e.Cause, e.Message)
}

func (e *CircuitOpenError) Severity() failure.Severity {
	return failure.SeverityRecoverable
}

func (e *CircuitOpenError) IsRetryable() bool {
	return false
}

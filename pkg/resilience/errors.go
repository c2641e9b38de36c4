package resilience

import (
	"fmt"

	"github.com/dociq/ragforge/pkg/failure"
)

// TimeoutError is returned when an operation's per-attempt deadline elapses
// before it produces a result (the timeout primitive).
type TimeoutError struct {
	PolicyName string
	Strategy   TimeoutStrategy
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("timeout %q: exceeded deadline (%s)", e.PolicyName, e.Strategy)
}

func (e *TimeoutError) Severity() failure.Severity {
	return failure.SeverityRecoverable
}

func (e *TimeoutError) IsRetryable() bool {
	return true
}

// MisconfiguredPolicyError is returned by NewPolicy when ExecutionOrder names
// a Kind whose corresponding primitive was not supplied.
type MisconfiguredPolicyError struct {
	PolicyName string
	Kind       Kind
}

func (e *MisconfiguredPolicyError) Error() string {
	return fmt.Sprintf("policy %q: execution order names %s but no such primitive was configured", e.PolicyName, e.Kind)
}

func (e *MisconfiguredPolicyError) Severity() failure.Severity {
	return failure.SeverityFatal
}

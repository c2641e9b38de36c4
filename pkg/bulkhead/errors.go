package bulkhead

import (
	"fmt"

	"github.com/dociq/ragforge/pkg/failure"
)

// BulkheadRejectedError is returned when a caller would exceed max_queued
// waiters for a named bulkhead; the caller is shed immediately rather than
// joining the wait queue.
type BulkheadRejectedError struct {
	Name string
}

func (e *BulkheadRejectedError) Error() string {
	return fmt.Sprintf("bulkhead %q: rejected, queue full", e.Name)
}

func (e *BulkheadRejectedError) Severity() failure.Severity {
	return failure.SeverityRecoverable
}

func (e *BulkheadRejectedError) IsRetryable() bool {
	return false
}

// WaitCancelledError is returned when the caller's context is cancelled or
// deadline-exceeded while queued for a slot.
type WaitCancelledError struct {
	Name string
	Err  error
}

func (e *WaitCancelledError) Error() string {
	return fmt.Sprintf("bulkhead %q: wait cancelled: %v", e.Name, e.Err)
}

func (e *WaitCancelledError) Severity() failure.Severity {
	return failure.SeverityRecoverable
}

func (e *WaitCancelledError) IsRetryable() bool {
	return false
}

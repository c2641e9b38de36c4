package retry

import "github.com/dociq/ragforge/pkg/failure"

// Result carries the outcome of a Retry invocation: the produced value (on
// success), the terminal classified error (on failure), and the number of
// attempts actually made.
type Result[T any] struct {
	value    T
	err      failure.ClassifiedError
	attempts int
}

// NewSuccessResult wraps a successful value and the attempt count it took.
func NewSuccessResult[T any](value T, attempts int) Result[T] {
	return Result[T]{value: value, attempts: attempts}
}

// Value returns the produced value. It is the zero value of T on failure.
func (r Result[T]) Value() T {
	return r.value
}

// Err returns the terminal classified error, or nil on success.
func (r Result[T]) Err() failure.ClassifiedError {
	return r.err
}

// IsFailure reports whether the retry ultimately failed.
func (r Result[T]) IsFailure() bool {
	return r.err != nil
}

// IsSuccess reports whether the retry ultimately succeeded.
func (r Result[T]) IsSuccess() bool {
	return r.err == nil
}

// Attempts returns the number of invocations actually made.
func (r Result[T]) Attempts() int {
	return r.attempts
}

package resilience

import "time"

// Kind names one of the four composable resilience primitives.
type Kind int

const (
	KindRetry Kind = iota
	KindCircuitBreaker
	KindTimeout
	KindBulkhead
)

func (k Kind) String() string {
	switch k {
	case KindRetry:
		return "retry"
	case KindCircuitBreaker:
		return "circuit-breaker"
	case KindTimeout:
		return "timeout"
	case KindBulkhead:
		return "bulkhead"
	default:
		return "unknown"
	}
}

// TimeoutStrategy distinguishes Cooperative (cancel and await observance) from
// Pessimistic (abandon the wait unconditionally) timeout semantics.
type TimeoutStrategy int

const (
	TimeoutCooperative TimeoutStrategy = iota
	TimeoutPessimistic
)

func (t TimeoutStrategy) String() string {
	if t == TimeoutPessimistic {
		return "pessimistic"
	}
	return "cooperative"
}

// TimeoutParam configures the Timeout primitive.
type TimeoutParam struct {
	Duration time.Duration
	Strategy TimeoutStrategy
}

// EventType classifies one entry in the statistics ring buffer.
type EventType int

const (
	EventSuccess EventType = iota
	EventFailure
	EventRetry
	EventCBOpened
	EventTimeout
	EventBulkheadRejected
)

func (e EventType) String() string {
	switch e {
	case EventSuccess:
		return "success"
	case EventFailure:
		return "failure"
	case EventRetry:
		return "retry"
	case EventCBOpened:
		return "cb-opened"
	case EventTimeout:
		return "timeout"
	case EventBulkheadRejected:
		return "bulkhead-rejected"
	default:
		return "unknown"
	}
}

// StatEvent is one append-only entry in a Policy's statistics buffer.
type StatEvent struct {
	Type       EventType
	PolicyName string
	Elapsed    time.Duration
	Timestamp  time.Time
}

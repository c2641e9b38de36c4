package resilience

import "sync"

// statsCapacity and statsCompactTo implement a bounded append-only buffer:
// keep the most recent 10 000 events, compacting to 5 000 when exceeded.
const (
	statsCapacity  = 10000
	statsCompactTo = 5000
)

// StatsRecorder is an append-only, bounded ring of resilience events. It is
// safe for concurrent use; a mutex-guarded slice matches the concurrency
// idiom used elsewhere in this codebase's own shared state (e.g.
// pkg/limiter.ConcurrentRateLimiter) rather than lock-free atomics.
type StatsRecorder struct {
	mu     sync.Mutex
	events []StatEvent
}

// NewStatsRecorder constructs an empty recorder.
func NewStatsRecorder() *StatsRecorder {
	return &StatsRecorder{events: make([]StatEvent, 0, statsCapacity)}
}

// Record appends an event, compacting to the most recent statsCompactTo
// entries once the buffer exceeds statsCapacity.
func (s *StatsRecorder) Record(ev StatEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.events = append(s.events, ev)
	if len(s.events) > statsCapacity {
		keep := s.events[len(s.events)-statsCompactTo:]
		compacted := make([]StatEvent, statsCompactTo)
		copy(compacted, keep)
		s.events = compacted
	}
}

// Snapshot returns a copy of the current buffer contents.
func (s *StatsRecorder) Snapshot() []StatEvent {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]StatEvent, len(s.events))
	copy(out, s.events)
	return out
}

// Counts aggregates the buffer's current contents by event type, computed on
// demand.
func (s *StatsRecorder) Counts() map[EventType]int {
	s.mu.Lock()
	defer s.mu.Unlock()

	counts := make(map[EventType]int)
	for _, ev := range s.events {
		counts[ev.Type]++
	}
	return counts
}

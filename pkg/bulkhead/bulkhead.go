/*
Resilience Engine — Bulkhead primitive.

Responsibilities:
- Bound the number of concurrently running operations against a named
  resource to max_parallel
- Allow up to max_queued callers to wait for a slot
- Reject any caller beyond that immediately with BulkheadRejectedError

Built on golang.org/x/sync/semaphore, which bounds concurrency but has no
queue cap of its own; this package adds the queue-depth limit and the
dedicated rejection error.
*/
package bulkhead

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/semaphore"

	"github.com/dociq/ragforge/pkg/failure"
)

// Bulkhead limits concurrent execution of operations returning T against a
// single named resource.
type Bulkhead[T any] struct {
	name        string
	maxParallel int64
	maxQueued   int64
	sem         *semaphore.Weighted
	queued      atomic.Int64
	running     atomic.Int64
}

// New constructs a named Bulkhead with the given max_parallel/max_queued.
func New[T any](name string, maxParallel, maxQueued int) *Bulkhead[T] {
	if maxParallel < 1 {
		maxParallel = 1
	}
	return &Bulkhead[T]{
		name:        name,
		maxParallel: int64(maxParallel),
		maxQueued:   int64(maxQueued),
		sem:         semaphore.NewWeighted(int64(maxParallel)),
	}
}

// Execute runs op once a slot is available. If no slot is immediately free
// and the queue is already at max_queued, op is never invoked and a
// BulkheadRejectedError is returned right away.
func (b *Bulkhead[T]) Execute(ctx context.Context, op func(ctx context.Context) (T, failure.ClassifiedError)) (T, failure.ClassifiedError) {
	var zero T

	if b.sem.TryAcquire(1) {
		return b.run(ctx, op)
	}

	newQueued := b.queued.Add(1)
	if newQueued > b.maxQueued {
		b.queued.Add(-1)
		return zero, &BulkheadRejectedError{Name: b.name}
	}
	defer b.queued.Add(-1)

	if err := b.sem.Acquire(ctx, 1); err != nil {
		return zero, &WaitCancelledError{Name: b.name, Err: err}
	}
	return b.run(ctx, op)
}

func (b *Bulkhead[T]) run(ctx context.Context, op func(ctx context.Context) (T, failure.ClassifiedError)) (T, failure.ClassifiedError) {
	b.running.Add(1)
	defer func() {
		b.running.Add(-1)
		b.sem.Release(1)
	}()
	return op(ctx)
}

// Utilization returns running/max_parallel, a value in [0,1].
func (b *Bulkhead[T]) Utilization() float64 {
	return float64(b.running.Load()) / float64(b.maxParallel)
}

// Running returns the number of operations currently executing.
func (b *Bulkhead[T]) Running() int64 {
	return b.running.Load()
}

// Queued returns the number of callers currently waiting for a slot.
func (b *Bulkhead[T]) Queued() int64 {
	return b.queued.Load()
}

// Name returns the bulkhead's configured name.
func (b *Bulkhead[T]) Name() string {
	return b.name
}

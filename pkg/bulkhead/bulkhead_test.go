package bulkhead_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dociq/ragforge/pkg/bulkhead"
	"github.com/dociq/ragforge/pkg/failure"
)

func TestBulkhead_BoundsConcurrency(t *testing.T) {
	b := bulkhead.New[int]("test", 2, 10)

	var concurrent atomic.Int32
	var maxObserved atomic.Int32
	var wg sync.WaitGroup

	op := func(ctx context.Context) (int, failure.ClassifiedError) {
		cur := concurrent.Add(1)
		for {
			observed := maxObserved.Load()
			if cur <= observed || maxObserved.CompareAndSwap(observed, cur) {
				break
			}
		}
		time.Sleep(20 * time.Millisecond)
		concurrent.Add(-1)
		return 0, nil
	}

	for i := 0; i < 6; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = b.Execute(context.Background(), op)
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, maxObserved.Load(), int32(2))
}

func TestBulkhead_RejectsBeyondQueueDepth(t *testing.T) {
	b := bulkhead.New[int]("test2", 1, 1)

	release := make(chan struct{})
	block := func(ctx context.Context) (int, failure.ClassifiedError) {
		<-release
		return 0, nil
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() { defer wg.Done(); _, _ = b.Execute(context.Background(), block) }()
	time.Sleep(10 * time.Millisecond) // ensure the first caller holds the only slot
	go func() { defer wg.Done(); _, _ = b.Execute(context.Background(), block) }()
	time.Sleep(10 * time.Millisecond) // ensure the second caller occupies the one queued slot

	_, err := b.Execute(context.Background(), func(ctx context.Context) (int, failure.ClassifiedError) {
		t.Fatal("operation must not run when bulkhead is over capacity")
		return 0, nil
	})
	require.Error(t, err)
	var rejected *bulkhead.BulkheadRejectedError
	require.ErrorAs(t, err, &rejected)

	close(release)
	wg.Wait()
}

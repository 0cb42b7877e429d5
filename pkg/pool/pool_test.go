package pool_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/maelkum/storefront/pkg/pool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPool_Run(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	var count atomic.Int64

	workerFunc := func(ctx context.Context, item int) error {
		count.Add(1)
		time.Sleep(10 * time.Millisecond) // Simulate work
		return nil
	}

	errs := pool.Run(context.Background(), items, 3, workerFunc)

	assert.Empty(t, errs)
	assert.Equal(t, int64(len(items)), count.Load())
}

func TestPool_CollectsErrors(t *testing.T) {
	items := []int{1, 2, 3, 4}
	expectedErr := errors.New("worker failed")

	workerFunc := func(ctx context.Context, item int) error {
		if item%2 == 0 {
			return expectedErr
		}
		return nil
	}

	errs := pool.Run(context.Background(), items, 2, workerFunc)
	require.Len(t, errs, 2)
	assert.ErrorIs(t, errs[0], expectedErr)
	assert.ErrorIs(t, errs[1], expectedErr)
}

func TestPool_ContextCancellation(t *testing.T) {
	items := make([]int, 100)
	for i := range items {
		items[i] = i
	}

	ctx, cancel := context.WithCancel(context.Background())
	var count atomic.Int64

	workerFunc := func(ctx context.Context, item int) error {
		if count.Add(1) == 5 {
			cancel()
		}
		time.Sleep(5 * time.Millisecond)
		return nil
	}

	pool.Run(ctx, items, 2, workerFunc)

	assert.Less(t, count.Load(), int64(len(items)), "Cancellation should stop the feed early")
}

func TestPool_ClampsWorkerCount(t *testing.T) {
	items := []int{1, 2, 3}
	var count atomic.Int64

	errs := pool.Run(context.Background(), items, 0, func(ctx context.Context, item int) error {
		count.Add(1)
		return nil
	})

	assert.Empty(t, errs)
	assert.Equal(t, int64(3), count.Load())
}

func TestPool_EmptyItems(t *testing.T) {
	errs := pool.Run(context.Background(), nil, 4, func(ctx context.Context, item string) error {
		t.Fatal("worker should never run")
		return nil
	})
	assert.Empty(t, errs)
}

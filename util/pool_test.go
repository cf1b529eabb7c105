package util

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWorkerPoolExactlyOnce(t *testing.T) {
	require := require.New(t)

	const K = 10000
	pool := NewWorkerPool(0, 0)
	require.Greater(pool.Threads(), 0)

	var total int64
	counters := make([]int64, K)
	signals := make([]*CompletionSignal, K)
	items := make([]*WorkItem, K)
	for i := 0; i < K; i++ {
		i := i
		signals[i] = NewCompletionSignal()
		items[i] = NewWorkItem(func() error {
			atomic.AddInt64(&counters[i], 1)
			atomic.AddInt64(&total, 1)
			return nil
		}, signals[i])
		require.Nil(pool.Spawn(items[i]))
	}
	for i := 0; i < K; i++ {
		signals[i].Wait()
		require.Nil(items[i].Err())
	}
	require.Equal(int64(K), atomic.LoadInt64(&total))
	for i := range counters {
		require.Equal(int64(1), atomic.LoadInt64(&counters[i]))
	}

	pool.Shutdown()
	require.Equal(int64(K), atomic.LoadInt64(&total))
}

func TestWorkerPoolGroup(t *testing.T) {
	require := require.New(t)

	pool := NewWorkerPool(4, 0)
	defer pool.Shutdown()

	for round := 0; round < 8; round++ {
		var total int64
		group := NewCompletionGroup()
		group.Add(512)
		for i := 0; i < 512; i++ {
			err := pool.Spawn(NewWorkItem(func() error {
				atomic.AddInt64(&total, 1)
				return nil
			}, group))
			require.Nil(err)
		}
		group.Wait()
		require.Equal(int64(512), atomic.LoadInt64(&total))
	}
}

func TestWorkerPoolFailures(t *testing.T) {
	require := require.New(t)

	pool := NewWorkerPool(2, 0)
	failed := errors.New("failed")
	s1, s2 := NewCompletionSignal(), NewCompletionSignal()
	item1 := NewWorkItem(func() error { return failed }, s1)
	item2 := NewWorkItem(func() error { panic("boom") }, s2)
	require.Nil(pool.Spawn(item1))
	require.Nil(pool.Spawn(item2))
	s1.Wait()
	s2.Wait()
	require.Equal(failed, item1.Err())
	require.NotNil(item2.Err())
	require.Contains(item2.Err().Error(), "boom")

	pool.Shutdown()
	err := pool.Spawn(NewWorkItem(func() error { return nil }, NewCompletionSignal()))
	require.ErrorIs(err, ErrQueueClosed)
}

func TestWorkerPoolShutdownDrains(t *testing.T) {
	require := require.New(t)

	pool := NewWorkerPool(1, 0)
	gate := make(chan struct{})
	var done int64
	group := NewCompletionGroup()
	group.Add(100)
	require.Nil(pool.Spawn(NewWorkItem(func() error {
		<-gate
		atomic.AddInt64(&done, 1)
		return nil
	}, group)))
	for i := 0; i < 99; i++ {
		require.Nil(pool.Spawn(NewWorkItem(func() error {
			atomic.AddInt64(&done, 1)
			return nil
		}, group)))
	}

	go func() {
		time.Sleep(50 * time.Millisecond)
		close(gate)
	}()
	pool.Shutdown()
	require.Equal(int64(100), atomic.LoadInt64(&done))
	group.Wait()
}

func TestWorkerPoolQueueLimit(t *testing.T) {
	require := require.New(t)

	pool := NewWorkerPool(1, 2)
	gate, started := make(chan struct{}), make(chan struct{})
	group := NewCompletionGroup()
	group.Add(3)
	require.Nil(pool.Spawn(NewWorkItem(func() error {
		close(started)
		<-gate
		return nil
	}, group)))
	<-started

	noop := func() error { return nil }
	require.Nil(pool.Spawn(NewWorkItem(noop, group)))
	require.Nil(pool.Spawn(NewWorkItem(noop, group)))
	err := pool.Spawn(NewWorkItem(noop, group))
	require.ErrorIs(err, ErrAllocationFailed)

	close(gate)
	group.Wait()
	pool.Shutdown()
}

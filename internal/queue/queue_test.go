package queue

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverflowActionString(t *testing.T) {
	tests := []struct {
		action   OverflowAction
		expected string
	}{
		{OverflowDrop, "Drop"},
		{OverflowBlock, "Block"},
		{OverflowEvictOldest, "EvictOldest"},
		{OverflowAction(99), "Unknown"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.action.String())
	}
}

func TestParseOverflowAction(t *testing.T) {
	tests := []struct {
		in   string
		want OverflowAction
	}{
		{"drop", OverflowDrop},
		{"block", OverflowBlock},
		{"evict-oldest", OverflowEvictOldest},
		{"evictOldest", OverflowEvictOldest},
	}
	for _, tt := range tests {
		got, err := ParseOverflowAction(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	for _, bad := range []string{"", "Block", "wait"} {
		_, err := ParseOverflowAction(bad)
		assert.ErrorIs(t, err, ErrUnknownOverflow, bad)
	}
}

func TestDrainKeepsArrivalOrder(t *testing.T) {
	q := New[int]("test", 10, nil)
	for i := 1; i <= 3; i++ {
		require.True(t, q.Push(i))
	}
	assert.Equal(t, 3, q.Len())
	assert.Equal(t, []int{1, 2, 3}, q.Drain())
	assert.Empty(t, q.Drain())

	stats := q.Stats()
	assert.Equal(t, int64(3), stats.Pushed)
	assert.Equal(t, int64(3), stats.Drained)
}

func TestDropWhenFull(t *testing.T) {
	q := New[string]("drop", 1, FixedStrategy[string]{Action: OverflowDrop})
	assert.True(t, q.Push("a"))
	assert.False(t, q.Push("b"))
	assert.Equal(t, []string{"a"}, q.Drain())
	assert.Equal(t, int64(1), q.Stats().Dropped)
	assert.False(t, q.Stats().LastDropTime.IsZero())
}

func TestEvictOldestWhenFull(t *testing.T) {
	q := New[string]("evict", 2, FixedStrategy[string]{Action: OverflowEvictOldest})
	q.Push("a")
	q.Push("b")
	q.Push("c")
	assert.Equal(t, []string{"b", "c"}, q.Drain())
	assert.Equal(t, int64(1), q.Stats().Evicted)
}

func TestStrategyFunc(t *testing.T) {
	q := New[int]("func", 1, StrategyFunc[int](func(item int) OverflowAction {
		if item < 0 {
			return OverflowEvictOldest
		}
		return OverflowDrop
	}))
	q.Push(1)
	assert.False(t, q.Push(2))
	assert.True(t, q.Push(-1))
	assert.Equal(t, []int{-1}, q.Drain())
}

func TestBlockWaitsForConsumer(t *testing.T) {
	q := New[int]("block", 1, FixedStrategy[int]{Action: OverflowBlock})
	q.Push(1)

	done := make(chan struct{})
	go func() {
		q.Push(2)
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("push should block while the queue is full")
	case <-time.After(50 * time.Millisecond):
	}

	// The unblocked push can land before the first drain finishes, so the
	// second item may come out of either call.
	got := q.Drain()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("push did not resume after drain")
	}
	got = append(got, q.Drain()...)
	assert.Equal(t, []int{1, 2}, got)
	assert.Equal(t, int64(1), q.Stats().Blocked)
}

func TestOnPushNotifies(t *testing.T) {
	q := New[int]("notify", 4, nil)
	var woken atomic.Int32
	q.OnPush(func() { woken.Add(1) })

	q.Push(1)
	q.Push(2)
	assert.Equal(t, int32(2), woken.Load())
}

func TestConcurrentProducers(t *testing.T) {
	q := New[int]("concurrent", 1000, nil)
	var wg sync.WaitGroup
	for p := 0; p < 4; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				q.Push(i)
			}
		}()
	}
	wg.Wait()
	assert.Len(t, q.Drain(), 400)
}

func TestNameAndDefaults(t *testing.T) {
	q := New[int]("window", 0, nil)
	assert.Equal(t, "window", q.Name())
	assert.True(t, q.Push(1))
}

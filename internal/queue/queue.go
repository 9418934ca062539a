// Package queue provides the bounded event queues that sit between event
// producers (the host UI, engine connections, remote control) and the event
// pump. Producers may run on any goroutine; the pump drains without blocking.
package queue

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

// OverflowAction defines what to do when a queue is full.
type OverflowAction int

const (
	OverflowDrop OverflowAction = iota
	OverflowBlock
	OverflowEvictOldest
)

// String makes OverflowAction satisfy the fmt.Stringer interface
func (a OverflowAction) String() string {
	switch a {
	case OverflowDrop:
		return "Drop"
	case OverflowBlock:
		return "Block"
	case OverflowEvictOldest:
		return "EvictOldest"
	default:
		return "Unknown"
	}
}

// ErrUnknownOverflow is returned by ParseOverflowAction.
var ErrUnknownOverflow = errors.New("unknown overflow action")

// ParseOverflowAction maps a config value to an action.
func ParseOverflowAction(s string) (OverflowAction, error) {
	switch s {
	case "drop":
		return OverflowDrop, nil
	case "block":
		return OverflowBlock, nil
	case "evict-oldest", "evictOldest":
		return OverflowEvictOldest, nil
	default:
		return OverflowDrop, fmt.Errorf("%w: %q", ErrUnknownOverflow, s)
	}
}

// Strategy decides what happens to an item pushed onto a full queue.
type Strategy[T any] interface {
	OnFull(item T) OverflowAction
}

// FixedStrategy applies the same action to every item.
type FixedStrategy[T any] struct {
	Action OverflowAction
}

// OnFull returns the configured action.
func (s FixedStrategy[T]) OnFull(T) OverflowAction {
	return s.Action
}

// StrategyFunc adapts a function to Strategy.
type StrategyFunc[T any] func(item T) OverflowAction

// OnFull calls f.
func (f StrategyFunc[T]) OnFull(item T) OverflowAction {
	return f(item)
}

// Stats is a snapshot of queue counters.
type Stats struct {
	Pushed       int64     `json:"pushed"`
	Drained      int64     `json:"drained"`
	Dropped      int64     `json:"dropped"`
	Blocked      int64     `json:"blocked"`
	Evicted      int64     `json:"evicted"`
	LastDropTime time.Time `json:"last_drop_time"`
}

type metrics struct {
	mu sync.Mutex
	s  Stats
}

func (m *metrics) update(fn func(s *Stats)) {
	m.mu.Lock()
	fn(&m.s)
	m.mu.Unlock()
}

func (m *metrics) snapshot() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.s
}

// Queue is a bounded multi-producer queue drained by a single consumer.
type Queue[T any] struct {
	name     string
	ch       chan T
	strategy Strategy[T]
	metrics  metrics
	// serializes evict-and-push so two producers cannot interleave
	mu     sync.Mutex
	notify func()
}

// New creates a queue holding up to size items.
func New[T any](name string, size int, strategy Strategy[T]) *Queue[T] {
	if size <= 0 {
		size = 1
	}
	if strategy == nil {
		strategy = FixedStrategy[T]{Action: OverflowBlock}
	}
	return &Queue[T]{
		name:     name,
		ch:       make(chan T, size),
		strategy: strategy,
	}
}

// Name returns the queue's label.
func (q *Queue[T]) Name() string {
	return q.name
}

// OnPush registers fn to run after every successful push. The pump's host
// uses it to wake its run-loop. fn must not block.
func (q *Queue[T]) OnPush(fn func()) {
	q.mu.Lock()
	q.notify = fn
	q.mu.Unlock()
}

// Push enqueues item according to the overflow strategy and reports whether
// it was accepted.
func (q *Queue[T]) Push(item T) bool {
	q.mu.Lock()
	ok := q.push(item)
	notify := q.notify
	q.mu.Unlock()

	if ok && notify != nil {
		notify()
	}
	return ok
}

func (q *Queue[T]) push(item T) bool {
	select {
	case q.ch <- item:
		q.metrics.update(func(s *Stats) { s.Pushed++ })
		return true
	default:
	}

	switch q.strategy.OnFull(item) {
	case OverflowBlock:
		q.metrics.update(func(s *Stats) { s.Blocked++ })
		q.ch <- item
		q.metrics.update(func(s *Stats) { s.Pushed++ })
		return true
	case OverflowEvictOldest:
		select {
		case <-q.ch:
			q.metrics.update(func(s *Stats) { s.Evicted++ })
		default:
		}
		q.ch <- item
		q.metrics.update(func(s *Stats) { s.Pushed++ })
		return true
	default:
		q.metrics.update(func(s *Stats) {
			s.Dropped++
			s.LastDropTime = time.Now()
		})
		return false
	}
}

// Drain returns every item currently queued, oldest first, without waiting
// for more.
func (q *Queue[T]) Drain() []T {
	var out []T
	for {
		select {
		case item := <-q.ch:
			out = append(out, item)
		default:
			if n := len(out); n > 0 {
				q.metrics.update(func(s *Stats) { s.Drained += int64(n) })
			}
			return out
		}
	}
}

// Len returns the number of queued items.
func (q *Queue[T]) Len() int {
	return len(q.ch)
}

// Stats returns a copy of the queue counters.
func (q *Queue[T]) Stats() Stats {
	return q.metrics.snapshot()
}

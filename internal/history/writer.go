package history

import (
	"context"
	"errors"
	"sync"

	"browsershell/internal/queue"
	"browsershell/pkg/logging"
)

const subsystem = "History"

// DefaultWriterBacklog is how many writes may wait for the database.
const DefaultWriterBacklog = 256

// ErrBacklogFull is returned when a write cannot be queued.
var ErrBacklogFull = errors.New("history writer backlog full")

type backend interface {
	Record(ctx context.Context, url, title string) error
	Clear(ctx context.Context) error
}

type writeOp struct {
	clear bool
	url   string
	title string
}

// Writer applies visits and clears on its own goroutine, in the order they
// were handed over, so callers never wait on the database.
type Writer struct {
	ctx     context.Context
	backend backend
	ops     *queue.Queue[writeOp]

	wake      chan struct{}
	stop      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// NewWriter starts a writer in front of store. Writes still queued when ctx
// is done are applied with a cancelled context and fail.
func NewWriter(ctx context.Context, store *Store, backlog int) *Writer {
	return newWriter(ctx, store, backlog)
}

func newWriter(ctx context.Context, b backend, backlog int) *Writer {
	if backlog <= 0 {
		backlog = DefaultWriterBacklog
	}
	w := &Writer{
		ctx:     ctx,
		backend: b,
		ops:     queue.New[writeOp]("history", backlog, queue.FixedStrategy[writeOp]{Action: queue.OverflowDrop}),
		wake:    make(chan struct{}, 1),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	w.ops.OnPush(w.signal)
	go w.run()
	return w
}

// Record queues a visit. ctx is unused; the write happens later.
func (w *Writer) Record(_ context.Context, url, title string) error {
	if !w.ops.Push(writeOp{url: url, title: title}) {
		return ErrBacklogFull
	}
	return nil
}

// Clear queues deleting every visit recorded so far.
func (w *Writer) Clear(context.Context) error {
	if !w.ops.Push(writeOp{clear: true}) {
		return ErrBacklogFull
	}
	return nil
}

// Close applies the queued writes and stops the writer. It does not close
// the store.
func (w *Writer) Close() error {
	w.closeOnce.Do(func() { close(w.stop) })
	<-w.done
	return nil
}

// Name and Stats describe the backlog queue.
func (w *Writer) Name() string { return w.ops.Name() }

func (w *Writer) Stats() queue.Stats { return w.ops.Stats() }

func (w *Writer) signal() {
	select {
	case w.wake <- struct{}{}:
	default:
	}
}

func (w *Writer) run() {
	defer close(w.done)
	for {
		select {
		case <-w.wake:
			w.flush()
		case <-w.stop:
			w.flush()
			return
		}
	}
}

func (w *Writer) flush() {
	for _, op := range w.ops.Drain() {
		if op.clear {
			if err := w.backend.Clear(w.ctx); err != nil {
				logging.Error(subsystem, err, "Clearing history")
			}
			continue
		}
		if err := w.backend.Record(w.ctx, op.url, op.title); err != nil {
			logging.Error(subsystem, err, "Recording visit to %s", op.url)
		}
	}
}

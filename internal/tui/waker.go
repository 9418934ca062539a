package tui

import (
	"sync"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"

	"browsershell/internal/platform"
)

// awakenMsg is delivered to Update when another goroutine queued work for
// the pump.
type awakenMsg struct{}

// Waker wakes the bubbletea run-loop from other goroutines. Bursts of Wake
// calls collapse into a single awakenMsg until Update consumes it.
type Waker struct {
	pending atomic.Bool

	mu   sync.Mutex
	send func(tea.Msg)
}

// NewWaker returns an unbound waker. Wake calls before Bind are remembered
// and delivered once a program is bound.
func NewWaker() *Waker {
	return &Waker{}
}

// Bind sets the function used to deliver messages, normally
// (*tea.Program).Send.
func (w *Waker) Bind(send func(tea.Msg)) {
	w.mu.Lock()
	w.send = send
	w.mu.Unlock()
	if w.pending.Load() {
		go send(awakenMsg{})
	}
}

// Wake asks the run-loop to tick. It never blocks.
func (w *Waker) Wake() {
	if !w.pending.CompareAndSwap(false, true) {
		return
	}
	w.mu.Lock()
	send := w.send
	w.mu.Unlock()
	if send != nil {
		// Program.Send blocks until the loop reads it.
		go send(awakenMsg{})
	}
}

// consume clears the pending flag. Called by Update on awakenMsg.
func (w *Waker) consume() {
	w.pending.Store(false)
}

// Pending reports whether a wake has not been consumed yet.
func (w *Waker) Pending() bool {
	return w.pending.Load()
}

// Injector pushes window events from other goroutines and wakes the loop.
type Injector struct {
	host  *Host
	waker *Waker
}

func (i Injector) Push(ev platform.WindowEvent) bool {
	if !i.host.winQ.Push(ev) {
		return false
	}
	i.waker.Wake()
	return true
}

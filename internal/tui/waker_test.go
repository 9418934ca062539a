package tui

import (
	"sync/atomic"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSender struct {
	n atomic.Int32
}

func (c *countingSender) send(msg tea.Msg) {
	if _, ok := msg.(awakenMsg); ok {
		c.n.Add(1)
	}
}

func TestWakeCoalesces(t *testing.T) {
	w := NewWaker()
	s := &countingSender{}
	w.Bind(s.send)

	for i := 0; i < 50; i++ {
		w.Wake()
	}
	require.Eventually(t, func() bool { return s.n.Load() == 1 }, time.Second, time.Millisecond)
	// nothing more arrives until the loop consumes the first
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, int32(1), s.n.Load())

	w.consume()
	w.Wake()
	require.Eventually(t, func() bool { return s.n.Load() == 2 }, time.Second, time.Millisecond)
}

func TestWakeBeforeBindIsDelivered(t *testing.T) {
	w := NewWaker()
	w.Wake()
	assert.True(t, w.Pending())

	s := &countingSender{}
	w.Bind(s.send)
	require.Eventually(t, func() bool { return s.n.Load() == 1 }, time.Second, time.Millisecond)
}

func TestWakeUnboundDoesNotPanic(t *testing.T) {
	w := NewWaker()
	assert.NotPanics(t, func() {
		w.Wake()
		w.Wake()
	})
	assert.True(t, w.Pending())
}

package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"browsershell/internal/platform"
)

// Size of the virtual terminal reported to the engine without a screen.
const (
	headlessWidth  = 120
	headlessHeight = 40
)

// RunHeadless drives the pump without a terminal until ctx is done. Input
// only arrives from other goroutines, so the loop ticks once per wake.
func RunHeadless(ctx context.Context, shell Ticker, host *Host, w *Waker) error {
	wakes := make(chan struct{}, 1)
	w.Bind(func(tea.Msg) {
		select {
		case wakes <- struct{}{}:
		default:
		}
	})

	if host.resize(headlessWidth, headlessHeight) {
		host.pushWindow(platform.GeometryDidChange{})
	}
	for {
		if err := shell.Tick(); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			host.pushWindow(platform.WillClose{})
			return shell.Tick()
		case <-wakes:
			w.consume()
			host.pushWindow(platform.EventLoopAwaken{})
		}
	}
}

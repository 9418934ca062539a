package tui

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"browsershell/internal/engine/sim"
	"browsershell/internal/model"
	"browsershell/internal/platform"
	"browsershell/internal/pump"
	"browsershell/internal/state"
)

func TestRunHeadlessAppliesInjectedCommands(t *testing.T) {
	host := NewHost()
	waker := NewWaker()
	windows := &state.Store[model.WindowState]{}
	eng := sim.New(sim.WithWaker(waker.Wake))

	shell, err := pump.New(context.Background(), pump.Deps{
		App:         host.App(),
		Window:      host.Window(),
		Surface:     host.Surface(),
		Engine:      eng,
		WindowStore: windows,
	})
	require.NoError(t, err)
	require.NoError(t, shell.Start("https://example.org/"))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- RunHeadless(ctx, shell, host, waker) }()

	inj := host.Injector(waker)
	require.True(t, inj.Push(platform.DoCommand{Command: platform.NewTab{}}))

	require.Eventually(t, func() bool {
		w, ok := windows.Snapshot()
		return ok && w.Tabs.Len() == 2
	}, 2*time.Second, 5*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("RunHeadless did not stop")
	}
	g := eng.Geometry()
	assert.Equal(t, headlessWidth, g.Width)
}

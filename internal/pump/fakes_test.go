package pump

import (
	"context"
	"errors"
	"fmt"

	"browsershell/internal/input"
	"browsershell/internal/model"
	"browsershell/internal/platform"
	"browsershell/internal/tabs"
	"browsershell/internal/treediff"
)

type fakeApp struct {
	pending []platform.AppEvent
	renders []treediff.Patch
	last    model.AppState
}

func (a *fakeApp) Events() []platform.AppEvent {
	out := a.pending
	a.pending = nil
	return out
}

func (a *fakeApp) Render(patch treediff.Patch, state *model.AppState) {
	a.renders = append(a.renders, patch)
	a.last = *state
}

type fakeWindow struct {
	pending []platform.WindowEvent
	renders []treediff.Patch
	// tab count seen by each render
	tabCounts []int
	logs      []string
}

func (w *fakeWindow) push(evs ...platform.WindowEvent) {
	w.pending = append(w.pending, evs...)
}

func (w *fakeWindow) command(cmds ...platform.WindowCommand) {
	for _, c := range cmds {
		w.push(platform.DoCommand{Command: c})
	}
}

func (w *fakeWindow) Events() []platform.WindowEvent {
	out := w.pending
	w.pending = nil
	return out
}

func (w *fakeWindow) Render(patch treediff.Patch, state *model.WindowState) {
	w.renders = append(w.renders, patch)
	w.tabCounts = append(w.tabCounts, state.Tabs.Len())
}

func (w *fakeWindow) AppendLogs(lines []string) {
	w.logs = append(w.logs, lines...)
}

type fakeSurface struct {
	pending    []platform.SurfaceEvent
	geometry   input.Geometry
	drawables  int
	fullscreen bool
}

func (s *fakeSurface) Events() []platform.SurfaceEvent {
	out := s.pending
	s.pending = nil
	return out
}

func (s *fakeSurface) Geometry() input.Geometry { return s.geometry }
func (s *fakeSurface) UpdateDrawable()          { s.drawables++ }
func (s *fakeSurface) EnterFullscreen()         { s.fullscreen = true }
func (s *fakeSurface) ExitFullscreen()          { s.fullscreen = false }

type fakeOpener struct {
	opened []string
	copied []string
}

func (o *fakeOpener) OpenURL(url string) error {
	o.opened = append(o.opened, url)
	return nil
}

func (o *fakeOpener) CopyText(text string) error {
	o.copied = append(o.copied, text)
	return nil
}

type visit struct{ url, title string }

type fakeHistory struct {
	visits  []visit
	cleared int
}

func (h *fakeHistory) Record(_ context.Context, url, title string) error {
	h.visits = append(h.visits, visit{url, title})
	return nil
}

func (h *fakeHistory) Clear(context.Context) error {
	h.cleared++
	h.visits = nil
	return nil
}

type fakeExporter struct {
	fail  bool
	wrote map[string]string
}

func (e *fakeExporter) Write(data, dataType string) (string, error) {
	if e.fail {
		return "", errors.New("disk full")
	}
	if e.wrote == nil {
		e.wrote = make(map[string]string)
	}
	e.wrote[dataType] = data
	return "/tmp/microdata." + dataType, nil
}

// sequentialIDs yields b1, b2, ...
func sequentialIDs() func() tabs.BrowserID {
	n := 0
	return func() tabs.BrowserID {
		n++
		return tabs.BrowserID(fmt.Sprintf("b%d", n))
	}
}

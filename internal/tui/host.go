package tui

import (
	"browsershell/internal/input"
	"browsershell/internal/model"
	"browsershell/internal/platform"
	"browsershell/internal/queue"
	"browsershell/internal/treediff"
	"browsershell/pkg/logging"
)

const subsystem = "TUI"

const (
	eventQueueSize = 256
	// Log lines kept for the log panel.
	maxLogLines = 2000
)

// Host is the terminal side of the shell. It is the App, the Window and the
// Surface the pump drains and renders into. All methods except the injector
// returned by Injector run on the bubbletea goroutine.
type Host struct {
	appQ  *queue.Queue[platform.AppEvent]
	winQ  *queue.Queue[platform.WindowEvent]
	surfQ *queue.Queue[platform.SurfaceEvent]

	app model.AppState
	win model.WindowState

	geometry   input.Geometry
	fullscreen bool
	drawables  int

	logs        []string
	logsChanged bool
	winChanged  bool

	onDarkTheme func(dark bool)
}

// HostOption configures a Host.
type HostOption func(*Host)

// WithDarkThemeHook is called whenever a render changes the theme.
func WithDarkThemeHook(fn func(dark bool)) HostOption {
	return func(h *Host) { h.onDarkTheme = fn }
}

// NewHost returns a host with empty queues. Pushes never block: the loop
// that drains them is the one pushing, so a full queue drops the event.
func NewHost(opts ...HostOption) *Host {
	h := &Host{
		appQ:  queue.New[platform.AppEvent]("app", eventQueueSize, queue.FixedStrategy[platform.AppEvent]{Action: queue.OverflowDrop}),
		winQ:  queue.New[platform.WindowEvent]("window", eventQueueSize, queue.FixedStrategy[platform.WindowEvent]{Action: queue.OverflowDrop}),
		surfQ: queue.New[platform.SurfaceEvent]("surface", eventQueueSize, queue.FixedStrategy[platform.SurfaceEvent]{Action: queue.OverflowDrop}),
		app:   model.NewAppState(),
		win:   model.NewWindowState(),
		geometry: input.Geometry{
			HiDPIFactor: 1,
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// QueueReporter is a named queue with counters.
type QueueReporter interface {
	Name() string
	Stats() queue.Stats
}

// Injector returns a thread-safe way to queue window events that also wakes
// the run-loop.
func (h *Host) Injector(w *Waker) Injector {
	return Injector{host: h, waker: w}
}

// Queues lists the host queues for the inspector.
func (h *Host) Queues() []QueueReporter {
	return []QueueReporter{h.appQ, h.winQ, h.surfQ}
}

func (h *Host) pushApp(ev platform.AppEvent) {
	if !h.appQ.Push(ev) {
		logging.Warn(subsystem, "App queue full, dropped %T", ev)
	}
}

func (h *Host) pushWindow(ev platform.WindowEvent) {
	if !h.winQ.Push(ev) {
		logging.Warn(subsystem, "Window queue full, dropped %T", ev)
	}
}

func (h *Host) pushCommand(c platform.WindowCommand) {
	h.pushWindow(platform.DoCommand{Command: c})
}

func (h *Host) pushSurface(ev platform.SurfaceEvent) {
	if !h.surfQ.Push(ev) {
		logging.Warn(subsystem, "Surface queue full, dropped %T", ev)
	}
}

// hostApp, hostWindow and hostSurface split the three platform interfaces,
// which share method names, over the one Host.
type (
	hostApp     struct{ *Host }
	hostWindow  struct{ *Host }
	hostSurface struct{ *Host }
)

var (
	_ platform.App     = hostApp{}
	_ platform.Window  = hostWindow{}
	_ platform.Surface = hostSurface{}
)

// App returns the host as a platform.App.
func (h *Host) App() platform.App { return hostApp{h} }

// Window returns the host as a platform.Window.
func (h *Host) Window() platform.Window { return hostWindow{h} }

// Surface returns the host as a platform.Surface.
func (h *Host) Surface() platform.Surface { return hostSurface{h} }

func (a hostApp) Events() []platform.AppEvent {
	return a.appQ.Drain()
}

func (a hostApp) Render(patch treediff.Patch, s *model.AppState) {
	a.app = *s
	if patch.Touches(treediff.F("dark_theme")) {
		SetDarkTheme(s.DarkTheme)
		if a.onDarkTheme != nil {
			a.onDarkTheme(s.DarkTheme)
		}
	}
}

func (w hostWindow) Events() []platform.WindowEvent {
	return w.winQ.Drain()
}

// Render keeps a copy of the window state for View. The browsers slice is
// copied because the pump keeps mutating its own.
func (w hostWindow) Render(_ treediff.Patch, s *model.WindowState) {
	w.win = *s
	w.win.Tabs.Browsers = append(w.win.Tabs.Browsers[:0:0], s.Tabs.Browsers...)
	if s.Tabs.Current != nil {
		current := *s.Tabs.Current
		w.win.Tabs.Current = &current
	}
	w.winChanged = true
}

func (w hostWindow) AppendLogs(lines []string) {
	w.logs = append(w.logs, lines...)
	if over := len(w.logs) - maxLogLines; over > 0 {
		w.logs = append(w.logs[:0:0], w.logs[over:]...)
	}
	w.logsChanged = true
}

func (s hostSurface) Events() []platform.SurfaceEvent {
	return s.surfQ.Drain()
}

func (s hostSurface) Geometry() input.Geometry {
	return s.geometry
}

func (s hostSurface) UpdateDrawable() {
	s.drawables++
}

func (s hostSurface) EnterFullscreen() {
	s.fullscreen = true
}

func (s hostSurface) ExitFullscreen() {
	s.fullscreen = false
}

// resize records the page area for a terminal of width x height cells.
// It reports whether the geometry changed.
func (h *Host) resize(width, height int) bool {
	g := input.Geometry{
		X:           0,
		Y:           chromeTop,
		Width:       width,
		Height:      max(height-chromeTop-chromeBottom, 0),
		HiDPIFactor: 1,
	}
	if g == h.geometry {
		return false
	}
	h.geometry = g
	return true
}

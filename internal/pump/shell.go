// Package pump drives the shell: it drains the event sources of the host and
// the engine until they are all empty, routes every event to its handler,
// and then renders whatever state changed.
//
// A Shell is built once per process with New and started with Start. After
// that the host calls Tick on every wake of its run-loop, always from the
// same goroutine. Tick never blocks waiting for events.
package pump

import (
	"context"
	"errors"
	"fmt"

	"browsershell/internal/engine"
	"browsershell/internal/model"
	"browsershell/internal/platform"
	"browsershell/internal/state"
	"browsershell/internal/treediff"
	"browsershell/internal/urlbar"
	"browsershell/pkg/logging"
)

const subsystem = "Pump"

// DefaultZoomStep is the factor applied by one zoom in or out command.
const DefaultZoomStep = 1.1

var (
	// ErrNotStarted is returned by Tick before Start.
	ErrNotStarted = errors.New("shell not started")
	// ErrAlreadyStarted is returned by a second Start.
	ErrAlreadyStarted = errors.New("shell already started")
)

// History stores visited pages.
type History interface {
	Record(ctx context.Context, url, title string) error
	Clear(ctx context.Context) error
}

// Exporter saves microdata sent by the engine and returns where it went.
type Exporter interface {
	Write(data, dataType string) (string, error)
}

// Deps are the collaborators of a Shell. App, Window, Surface and Engine are
// required.
type Deps struct {
	App     platform.App
	Window  platform.Window
	Surface platform.Surface
	Engine  engine.Engine

	Opener   platform.Opener
	History  History
	Exporter Exporter
	Logs     *logging.Sink

	Resolver            urlbar.Resolver
	ZoomStep            float64
	FocusUrlbarOnNewTab bool

	// Published after every commit when set.
	AppStore    *state.Store[model.AppState]
	WindowStore *state.Store[model.WindowState]
}

// Shell owns the app and window state and the event loop that mutates it.
type Shell struct {
	ctx  context.Context
	deps Deps

	app *state.Container[model.AppState]
	win *state.Container[model.WindowState]

	logCursor int
	started   bool
	ticks     uint64
}

// New builds a shell. ctx bounds the calls the shell makes to storage.
func New(ctx context.Context, d Deps) (*Shell, error) {
	switch {
	case d.App == nil:
		return nil, errors.New("pump: app is required")
	case d.Window == nil:
		return nil, errors.New("pump: window is required")
	case d.Surface == nil:
		return nil, errors.New("pump: surface is required")
	case d.Engine == nil:
		return nil, errors.New("pump: engine is required")
	}
	if d.ZoomStep <= 0 {
		d.ZoomStep = DefaultZoomStep
	}
	d.Resolver = urlbar.NewResolver(d.Resolver.SearchURL, d.Resolver.BareDomainSuffixes)

	app, err := state.New(model.NewAppState())
	if err != nil {
		return nil, fmt.Errorf("creating app state: %w", err)
	}
	win, err := state.New(model.NewWindowState())
	if err != nil {
		return nil, fmt.Errorf("creating window state: %w", err)
	}
	// Mutated after the first snapshot so Start's initial render shows it.
	windowIndex := 0
	app.GetMut().CurrentWindowIndex = &windowIndex

	return &Shell{ctx: ctx, deps: d, app: app, win: win}, nil
}

// SetDarkTheme seeds the theme before Start, from saved preferences.
func (s *Shell) SetDarkTheme(dark bool) {
	s.app.GetMut().DarkTheme = dark
}

// Start renders the initial state, then opens the first tab on startURL and
// renders again.
func (s *Shell) Start(startURL string) error {
	if s.started {
		return ErrAlreadyStarted
	}
	// Both collaborators see the empty window before any tab exists.
	if err := s.commit(true); err != nil {
		return err
	}

	b, err := s.deps.Engine.NewBrowser(startURL)
	if err != nil {
		return fmt.Errorf("creating first browser: %w", err)
	}
	s.deps.Engine.SelectBrowser(b.ID)
	if err := s.win.GetMut().Tabs.AppendNew(b); err != nil {
		return fmt.Errorf("appending first browser: %w", err)
	}
	if err := s.commit(false); err != nil {
		return err
	}
	s.started = true
	logging.Info(subsystem, "Engine version: %s", s.deps.Engine.Version())
	return nil
}

// Tick drains every event source until all are empty, then renders and
// commits changed state, syncs the engine frame and flushes the log panel.
// A returned error means an invariant broke; the host should exit.
func (s *Shell) Tick() error {
	if !s.started {
		return ErrNotStarted
	}
	s.ticks++

	// Set by EventLoopAwaken, consumed by the engine sync below.
	forceSync := false

	for {
		appEvents := s.deps.App.Events()
		winEvents := s.deps.Window.Events()
		surfaceEvents := s.deps.Surface.Events()
		engineEvents := s.deps.Engine.Events()

		if len(appEvents) == 0 && len(winEvents) == 0 && len(surfaceEvents) == 0 && len(engineEvents) == 0 {
			break
		}

		for _, ev := range winEvents {
			force, err := s.handleWindowEvent(ev)
			if err != nil {
				return fmt.Errorf("window event %T: %w", ev, err)
			}
			if force {
				forceSync = true
			}
		}
		for _, ev := range appEvents {
			if err := s.handleAppEvent(ev); err != nil {
				return fmt.Errorf("app event %T: %w", ev, err)
			}
		}
		for _, ev := range surfaceEvents {
			if err := s.handleSurfaceEvent(ev); err != nil {
				return fmt.Errorf("surface event %T: %w", ev, err)
			}
		}
		for _, ev := range engineEvents {
			if err := s.handleEngineEvent(ev); err != nil {
				return fmt.Errorf("engine event %T: %w", ev, err)
			}
		}
	}

	if err := s.commit(false); err != nil {
		return err
	}

	s.deps.Engine.Sync(forceSync)

	s.flushLogs()
	return nil
}

// commit renders each container that changed, or all of them when force is
// set, and advances its snapshot. Stores are published when anything rendered.
func (s *Shell) commit(force bool) error {
	appRendered, err := render(s.app, s.deps.App.Render, force)
	if err != nil {
		return fmt.Errorf("committing app state: %w", err)
	}
	winRendered, err := render(s.win, s.deps.Window.Render, force)
	if err != nil {
		return fmt.Errorf("committing window state: %w", err)
	}
	if appRendered || winRendered {
		s.publish()
	}
	return nil
}

func render[V any](c *state.Container[V], draw func(treediff.Patch, *V), force bool) (bool, error) {
	if !force && !c.HasChanged() {
		return false, nil
	}
	patch, err := c.Diff()
	if err != nil {
		return false, err
	}
	draw(patch, c.Get())
	if err := c.Snapshot(); err != nil {
		return false, err
	}
	return true, nil
}

// publish shares the committed snapshots with readers on other goroutines.
func (s *Shell) publish() {
	if s.deps.AppStore != nil {
		app := s.app.Last()
		if err := s.deps.AppStore.Publish(&app); err != nil {
			logging.Error(subsystem, err, "Publishing app state")
		}
	}
	if s.deps.WindowStore != nil {
		win := s.win.Last()
		if err := s.deps.WindowStore.Publish(&win); err != nil {
			logging.Error(subsystem, err, "Publishing window state")
		}
	}
}

func (s *Shell) flushLogs() {
	if s.deps.Logs == nil || !s.win.Get().LogsVisible {
		return
	}
	lines, cursor := s.deps.Logs.Since(s.logCursor)
	s.logCursor = cursor
	if len(lines) > 0 {
		s.deps.Window.AppendLogs(lines)
	}
}

// AppState returns the current app state. Callers must not mutate it.
func (s *Shell) AppState() *model.AppState {
	return s.app.Get()
}

// WindowState returns the current window state. Callers must not mutate it.
func (s *Shell) WindowState() *model.WindowState {
	return s.win.Get()
}

// Ticks counts calls to Tick since Start.
func (s *Shell) Ticks() uint64 {
	return s.ticks
}

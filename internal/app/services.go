package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"browsershell/internal/config"
	"browsershell/internal/engine"
	"browsershell/internal/engine/remote"
	"browsershell/internal/engine/sim"
	"browsershell/internal/export"
	"browsershell/internal/history"
	"browsershell/internal/inspect"
	"browsershell/internal/model"
	"browsershell/internal/prefs"
	"browsershell/internal/pump"
	"browsershell/internal/queue"
	"browsershell/internal/state"
	"browsershell/internal/tui"
	"browsershell/internal/urlbar"
	"browsershell/pkg/logging"
)

// Services holds the collaborators of one shell run.
type Services struct {
	Logs  *logging.Sink
	Waker *tui.Waker
	Host  *tui.Host
	Shell *pump.Shell

	Engine engine.Engine
	// Set when the engine is a remote process.
	Remote *remote.Engine
	// Nil when history is disabled.
	History *history.Store
	// Applies visits off the pump goroutine. Nil with History.
	historyWriter *history.Writer

	AppStore    *state.Store[model.AppState]
	WindowStore *state.Store[model.WindowState]

	prefs     prefs.Prefs
	prefsPath string
}

// InitializeServices wires the shell for the given settings. The shell is
// built but not started.
func InitializeServices(ctx context.Context, s config.Config, logs *logging.Sink) (*Services, error) {
	svc := &Services{
		Logs:        logs,
		Waker:       tui.NewWaker(),
		AppStore:    &state.Store[model.AppState]{},
		WindowStore: &state.Store[model.WindowState]{},
		prefsPath:   s.PrefsPath,
	}

	p, err := prefs.Load(s.PrefsPath)
	if err != nil {
		logging.Warn("Bootstrap", "Ignoring preferences: %v", err)
	}
	svc.prefs = p
	tui.SetDarkTheme(p.DarkTheme)
	svc.Host = tui.NewHost(tui.WithDarkThemeHook(svc.saveDarkTheme))

	if err := svc.openEngine(ctx, s.Engine); err != nil {
		return nil, err
	}

	deps := pump.Deps{
		App:                 svc.Host.App(),
		Window:              svc.Host.Window(),
		Surface:             svc.Host.Surface(),
		Engine:              svc.Engine,
		Opener:              tui.SystemOpener{},
		Logs:                logs,
		Resolver:            urlbar.Resolver{SearchURL: s.SearchURL, BareDomainSuffixes: s.BareDomainSuffixes},
		ZoomStep:            s.ZoomStep,
		FocusUrlbarOnNewTab: s.FocusUrlbar(),
		AppStore:            svc.AppStore,
		WindowStore:         svc.WindowStore,
	}

	exportDir, err := config.ExpandHome(s.ExportDir)
	if err != nil {
		svc.Close()
		return nil, err
	}
	deps.Exporter = export.Writer{Dir: exportDir}

	if s.HistoryEnabled() {
		store, err := openHistory(s.History.Path)
		if err != nil {
			// The shell runs fine without history.
			logging.Error("Bootstrap", err, "History disabled")
		} else {
			svc.History = store
			svc.historyWriter = history.NewWriter(ctx, store, history.DefaultWriterBacklog)
			deps.History = svc.historyWriter
		}
	}

	shell, err := pump.New(ctx, deps)
	if err != nil {
		svc.Close()
		return nil, fmt.Errorf("failed to create shell: %w", err)
	}
	shell.SetDarkTheme(p.DarkTheme)
	svc.Shell = shell
	return svc, nil
}

func (s *Services) openEngine(ctx context.Context, cfg config.EngineConfig) error {
	switch cfg.Kind {
	case config.EngineRemote:
		overflow, err := queue.ParseOverflowAction(cfg.Overflow)
		if err != nil {
			return err
		}
		r, err := remote.Dial(ctx, cfg.URL,
			remote.WithWaker(s.Waker.Wake),
			remote.WithQueueSize(cfg.QueueSize),
			remote.WithOverflow(overflow),
		)
		if err != nil {
			return fmt.Errorf("failed to connect to engine: %w", err)
		}
		s.Engine, s.Remote = r, r
	default:
		s.Engine = sim.New(sim.WithWaker(s.Waker.Wake))
	}
	return nil
}

func openHistory(path string) (*history.Store, error) {
	resolved, err := config.ExpandHome(path)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}
	return history.Open(resolved)
}

// saveDarkTheme persists the theme whenever the app state changes it.
func (s *Services) saveDarkTheme(dark bool) {
	if s.prefs.DarkTheme == dark {
		return
	}
	s.prefs.DarkTheme = dark
	if err := prefs.Save(s.prefsPath, s.prefs); err != nil {
		logging.Warn("Bootstrap", "Saving preferences: %v", err)
	}
}

// Queues lists every queue the inspector reports on.
func (s *Services) Queues() []inspect.QueueReporter {
	var out []inspect.QueueReporter
	for _, q := range s.Host.Queues() {
		out = append(out, q)
	}
	if s.historyWriter != nil {
		out = append(out, s.historyWriter)
	}
	if s.Remote != nil {
		out = append(out, s.Remote)
	}
	return out
}

// Close releases the engine and the history database.
func (s *Services) Close() error {
	var errs []error
	if s.Engine != nil {
		if err := s.Engine.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing engine: %w", err))
		}
	}
	if s.historyWriter != nil {
		// pending visits land before the database closes
		_ = s.historyWriter.Close()
	}
	if s.History != nil {
		if err := s.History.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing history: %w", err))
		}
	}
	return errors.Join(errs...)
}

package pump

import (
	"fmt"

	"browsershell/internal/platform"
	"browsershell/pkg/logging"
)

func (s *Shell) handleAppEvent(ev platform.AppEvent) error {
	switch ev := ev.(type) {
	case platform.DidFinishLaunching:
		logging.Debug(subsystem, "Application finished launching")
	case platform.WillTerminate:
		logging.Debug(subsystem, "Application terminating")
	case platform.DidChangeScreenParameters:
		s.deps.Engine.UpdateGeometry(s.deps.Surface.Geometry())
		s.deps.Surface.UpdateDrawable()
	case platform.AppDoCommand:
		switch ev.Command {
		case platform.ClearHistory:
			s.clearHistory()
		case platform.ToggleOptionDarkTheme:
			a := s.app.GetMut()
			a.DarkTheme = !a.DarkTheme
		default:
			return fmt.Errorf("unhandled app command %s", ev.Command)
		}
	default:
		return fmt.Errorf("unhandled app event %T", ev)
	}
	return nil
}

func (s *Shell) clearHistory() {
	if s.deps.History == nil {
		logging.Debug(subsystem, "History disabled, nothing to clear")
		return
	}
	if err := s.deps.History.Clear(s.ctx); err != nil {
		logging.Error(subsystem, err, "Clearing history")
		return
	}
	logging.Info(subsystem, "History cleared")
}

func (s *Shell) handleSurfaceEvent(ev platform.SurfaceEvent) error {
	eng := s.deps.Engine

	switch ev := ev.(type) {
	case platform.SurfaceGeometryDidChange:
		eng.UpdateGeometry(s.deps.Surface.Geometry())
		s.deps.Surface.UpdateDrawable()
	case platform.MouseWheel:
		dx, dy := ev.Delta.Pixels()
		eng.PerformScroll(0, 0, dx, dy, ev.Phase)
	case platform.MouseMoved:
		eng.PerformMouseMove(ev.X, ev.Y)
	case platform.MouseInput:
		eng.PerformClick(ev.X, ev.Y, ev.State, ev.Button)
	case platform.KeyEvent:
		fg, err := s.win.Get().Tabs.RefFGBrowser()
		if err != nil {
			return err
		}
		eng.SendKey(fg.ID, ev.Char, ev.Key, ev.State, ev.Modifiers)
	default:
		return fmt.Errorf("unhandled surface event %T", ev)
	}
	return nil
}

package pump

import (
	"errors"
	"fmt"

	"browsershell/internal/engine"
	"browsershell/internal/platform"
	"browsershell/internal/tabs"
	"browsershell/pkg/logging"
)

// handleWindowEvent reports true when the event asks for a forced engine
// sync.
func (s *Shell) handleWindowEvent(ev platform.WindowEvent) (bool, error) {
	w := s.win.GetMut()

	switch ev := ev.(type) {
	case platform.EventLoopAwaken:
		return true, nil
	case platform.GeometryDidChange:
		s.deps.Engine.UpdateGeometry(s.deps.Surface.Geometry())
		s.deps.Surface.UpdateDrawable()
	case platform.DidEnterFullScreen, platform.DidExitFullScreen:
		logging.Debug(subsystem, "Fullscreen transition %T", ev)
	case platform.WillClose:
		logging.Info(subsystem, "Window closing")
	case platform.OptionsClosed:
		w.OptionsOpen = false
	case platform.UrlbarFocusChanged:
		fg, err := w.Tabs.MutFGBrowser()
		if err != nil {
			return false, err
		}
		fg.UrlbarFocused = ev.Focused
	case platform.DoCommand:
		return false, s.handleWindowCommand(ev.Command)
	default:
		return false, fmt.Errorf("unhandled window event %T", ev)
	}
	return false, nil
}

func (s *Shell) handleWindowCommand(cmd platform.WindowCommand) error {
	w := s.win.GetMut()
	eng := s.deps.Engine

	fg, err := w.Tabs.RefFGBrowser()
	if err != nil {
		return err
	}
	bid := fg.ID

	switch cmd := cmd.(type) {
	case platform.Stop:
		logging.Debug(subsystem, "Stop is not supported by the engine")
	case platform.Reload:
		eng.Reload(bid)
	case platform.NavigateBack:
		eng.GoBack(bid)
	case platform.NavigateForward:
		eng.GoForward(bid)
	case platform.OpenLocation:
		b, err := w.Tabs.MutFGBrowser()
		if err != nil {
			return err
		}
		b.UrlbarFocused = true
	case platform.OpenInDefaultBrowser:
		if fg.URL != nil {
			s.openExternally(*fg.URL)
		}
	case platform.CopyURL:
		if fg.URL != nil && s.deps.Opener != nil {
			if err := s.deps.Opener.CopyText(*fg.URL); err != nil {
				logging.Warn(subsystem, "Copying URL to clipboard: %v", err)
			}
		}
	case platform.ZoomIn:
		return s.setZoom(func(z float64) float64 { return z * s.deps.ZoomStep })
	case platform.ZoomOut:
		return s.setZoom(func(z float64) float64 { return z / s.deps.ZoomStep })
	case platform.ZoomToActualSize:
		b, err := w.Tabs.MutFGBrowser()
		if err != nil {
			return err
		}
		b.Zoom = 1.0
		eng.ResetZoom()
	case platform.ToggleSidebar:
		w.SidebarIsOpen = !w.SidebarIsOpen
	case platform.ShowOptions:
		w.OptionsOpen = !w.OptionsOpen
	case platform.Load:
		return s.load(cmd.Request)
	case platform.ToggleOptionShowLogs:
		w.LogsVisible = !w.LogsVisible
	case platform.NewTab:
		return s.newTab()
	case platform.CloseTab:
		if !w.Tabs.HasMoreThanOne() {
			return nil
		}
		old, err := w.Tabs.KillFG()
		if err != nil {
			return err
		}
		eng.CloseBrowser(old.ID)
		return s.selectForeground()
	case platform.PrevTab:
		if !w.Tabs.HasMoreThanOne() {
			return nil
		}
		ok, err := w.Tabs.CanSelectPrev()
		if err != nil {
			return err
		}
		if ok {
			err = w.Tabs.SelectPrev()
		} else {
			err = w.Tabs.SelectLast()
		}
		if err != nil {
			return err
		}
		return s.selectForeground()
	case platform.NextTab:
		if !w.Tabs.HasMoreThanOne() {
			return nil
		}
		ok, err := w.Tabs.CanSelectNext()
		if err != nil {
			return err
		}
		if ok {
			err = w.Tabs.SelectNext()
		} else {
			err = w.Tabs.SelectFirst()
		}
		if err != nil {
			return err
		}
		return s.selectForeground()
	case platform.SelectTab:
		if !w.Tabs.CanSelectNth(cmd.Index) {
			return nil
		}
		if err := w.Tabs.SelectNth(cmd.Index); err != nil {
			return err
		}
		return s.selectForeground()
	case platform.ToggleOptionFragmentBorders,
		platform.ToggleOptionParallelDisplayListBuilding,
		platform.ToggleOptionShowParallelLayout,
		platform.ToggleOptionConvertMouseToTouch,
		platform.ToggleOptionTileBorders:
		logging.Debug(subsystem, "Option %T has no effect", cmd)
	case platform.ToggleOptionWRProfiler:
		w.DebugOptions.WRProfiler = !w.DebugOptions.WRProfiler
		eng.ToggleDebugOption(engine.DebugProfiler)
	case platform.ToggleOptionWRTextureCacheDebug:
		w.DebugOptions.WRTextureCacheDebug = !w.DebugOptions.WRTextureCacheDebug
		eng.ToggleDebugOption(engine.DebugTextureCache)
	case platform.ToggleOptionWRTargetDebug:
		w.DebugOptions.WRRenderTargetDebug = !w.DebugOptions.WRRenderTargetDebug
		eng.ToggleDebugOption(engine.DebugRenderTarget)
	default:
		return fmt.Errorf("unhandled window command %T", cmd)
	}
	return nil
}

func (s *Shell) setZoom(next func(float64) float64) error {
	b, err := s.win.GetMut().Tabs.MutFGBrowser()
	if err != nil {
		return err
	}
	b.Zoom = next(b.Zoom)
	s.deps.Engine.Zoom(b.Zoom)
	return nil
}

// load resolves the urlbar input and navigates the foreground tab. Input no
// fallback can resolve is logged and leaves the urlbar focused.
func (s *Shell) load(request string) error {
	b, err := s.win.GetMut().Tabs.MutFGBrowser()
	if err != nil {
		return err
	}
	b.UserInput = tabs.StringPtr(request)

	target, err := s.deps.Resolver.Resolve(request)
	if err != nil {
		logging.Warn(subsystem, "Can't parse url: %v", err)
		return nil
	}
	b.UrlbarFocused = false
	s.deps.Engine.LoadURL(b.ID, target)
	return nil
}

func (s *Shell) newTab() error {
	w := s.win.GetMut()
	b, err := s.deps.Engine.NewBrowser("about:blank")
	if err != nil {
		if errors.Is(err, engine.ErrClosed) {
			return err
		}
		logging.Error(subsystem, err, "Engine could not open a new tab")
		w.Status = tabs.StringPtr("Could not open a new tab")
		return nil
	}
	b.IsBackground = false
	b.UrlbarFocused = s.deps.FocusUrlbarOnNewTab
	if err := w.Tabs.AppendNew(b); err != nil {
		return err
	}
	if err := s.selectForeground(); err != nil {
		return err
	}
	s.deps.Engine.UpdateGeometry(s.deps.Surface.Geometry())
	return nil
}

// selectForeground tells the engine which session is now in front.
func (s *Shell) selectForeground() error {
	fg, err := s.win.Get().Tabs.RefFGBrowser()
	if err != nil {
		return err
	}
	s.deps.Engine.SelectBrowser(fg.ID)
	return nil
}

func (s *Shell) openExternally(url string) {
	if s.deps.Opener == nil {
		logging.Warn(subsystem, "No opener configured for %s", url)
		return
	}
	if err := s.deps.Opener.OpenURL(url); err != nil {
		logging.Warn(subsystem, "Opening %s in the default browser: %v", url, err)
	}
}

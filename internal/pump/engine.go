package pump

import (
	"fmt"

	"browsershell/internal/engine"
	"browsershell/internal/tabs"
	"browsershell/pkg/logging"
)

func (s *Shell) handleEngineEvent(ev engine.Event) error {
	w := s.win.GetMut()

	switch ev := ev.(type) {
	case engine.SetWindowInnerSize, engine.SetWindowPosition:
		// the terminal decides its own size
	case engine.SetFullScreenState:
		if ev.Fullscreen {
			s.deps.Surface.EnterFullscreen()
		} else {
			s.deps.Surface.ExitFullscreen()
		}
	case engine.TitleChanged:
		if b := s.browser(ev.Browser); b != nil {
			b.Title = ev.Title
		}
	case engine.StatusChanged:
		w.Status = ev.Status
	case engine.LoadStart:
		if b := s.browser(ev.Browser); b != nil {
			b.IsLoading = true
		}
	case engine.LoadEnd:
		if b := s.browser(ev.Browser); b != nil {
			b.IsLoading = false
		}
	case engine.HeadParsed, engine.FaviconChanged, engine.Key:
		logging.Debug(subsystem, "Ignoring %T", ev)
	case engine.HistoryChanged:
		s.historyChanged(ev)
	case engine.CursorChanged:
		if ev.Cursor != s.app.Get().Cursor {
			s.app.GetMut().Cursor = ev.Cursor
		}
	case engine.OpenInDefaultBrowser:
		s.openExternally(ev.URL)
	case engine.WriteMicrodata:
		return s.writeMicrodata(ev)
	default:
		return fmt.Errorf("unhandled engine event %T", ev)
	}
	return nil
}

// browser resolves an engine session to its tab. Events for sessions that
// are already gone are expected after a tab closes and are dropped.
func (s *Shell) browser(id tabs.BrowserID) *tabs.Browser {
	b := s.win.GetMut().Tabs.FindBrowser(id)
	if b == nil {
		logging.Warn(subsystem, "Got message for unknown browser: %s", id)
	}
	return b
}

func (s *Shell) historyChanged(ev engine.HistoryChanged) {
	if ev.Current < 0 || ev.Current >= len(ev.Entries) {
		logging.Warn(subsystem, "History for %s has current %d of %d entries", ev.Browser, ev.Current, len(ev.Entries))
		return
	}
	b := s.browser(ev.Browser)
	if b == nil {
		return
	}
	entry := ev.Entries[ev.Current]
	b.URL = tabs.StringPtr(entry.URL)
	b.CanGoBack = ev.Current > 0
	b.CanGoForward = ev.Current < len(ev.Entries)-1

	if s.deps.History != nil {
		if err := s.deps.History.Record(s.ctx, entry.URL, entry.Title); err != nil {
			logging.Error(subsystem, err, "Recording visit to %s", entry.URL)
		}
	}
}

func (s *Shell) writeMicrodata(ev engine.WriteMicrodata) error {
	w := s.win.GetMut()
	if s.deps.Exporter == nil {
		logging.Warn(subsystem, "Microdata export is not configured")
		return nil
	}
	path, err := s.deps.Exporter.Write(ev.Data, ev.Type)
	if err != nil {
		logging.Error(subsystem, err, "Exporting %s microdata", ev.Type)
		w.Status = tabs.StringPtr(fmt.Sprintf("Export failed: %v", err))
		return nil
	}
	logging.Info(subsystem, "Successfully wrote microdata to %s", path)

	fg, err := w.Tabs.MutFGBrowser()
	if err != nil {
		return err
	}
	fg.Title = tabs.StringPtr("Exported " + ev.Type)
	return nil
}

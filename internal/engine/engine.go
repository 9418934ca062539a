// Package engine defines the contract between the shell and the browser
// engine that renders pages.
//
// Commands take effect asynchronously; their results come back later as
// Events tagged with the session they concern. Implementations live in the
// sim (in-process, deterministic) and remote (websocket) subpackages.
package engine

import (
	"errors"

	"browsershell/internal/input"
	"browsershell/internal/tabs"
)

// ErrClosed is returned by engines that have been shut down.
var ErrClosed = errors.New("engine closed")

// DebugOption identifies a renderer debug overlay.
type DebugOption int

const (
	DebugProfiler DebugOption = iota
	DebugTextureCache
	DebugRenderTarget
)

func (o DebugOption) String() string {
	switch o {
	case DebugProfiler:
		return "profiler"
	case DebugTextureCache:
		return "texture_cache_debug"
	case DebugRenderTarget:
		return "render_target_debug"
	default:
		return "unknown"
	}
}

// ParseDebugOption is the inverse of DebugOption.String.
func ParseDebugOption(s string) (DebugOption, bool) {
	for _, o := range []DebugOption{DebugProfiler, DebugTextureCache, DebugRenderTarget} {
		if o.String() == s {
			return o, true
		}
	}
	return 0, false
}

// Engine is the browser engine as seen from the shell.
type Engine interface {
	// Events returns and clears the events produced since the last call.
	// It never blocks.
	Events() []Event

	// NewBrowser allocates a session that starts loading url.
	NewBrowser(url string) (tabs.Browser, error)
	SelectBrowser(id tabs.BrowserID)
	CloseBrowser(id tabs.BrowserID)

	LoadURL(id tabs.BrowserID, url string)
	Reload(id tabs.BrowserID)
	GoBack(id tabs.BrowserID)
	GoForward(id tabs.BrowserID)

	// Zoom and ResetZoom apply to the selected session.
	Zoom(factor float64)
	ResetZoom()

	UpdateGeometry(g input.Geometry)
	PerformScroll(x, y int, dx, dy float64, phase input.TouchPhase)
	PerformMouseMove(x, y int)
	PerformClick(x, y int, state input.ElementState, button input.MouseButton)
	SendKey(id tabs.BrowserID, ch rune, key input.Key, state input.ElementState, mods input.Modifiers)

	ToggleDebugOption(opt DebugOption)

	// Sync lets the engine present its frame. force requests a sync even if
	// the engine believes nothing changed.
	Sync(force bool)

	Version() string
	Close() error
}

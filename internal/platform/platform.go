// Package platform describes the host collaborators the event pump talks to:
// the application, its window chrome and the surface the engine draws into.
// Each exposes a non-blocking drain of pending events; the first two also
// render diffs of the state they own.
package platform

import (
	"browsershell/internal/input"
	"browsershell/internal/model"
	"browsershell/internal/treediff"
)

// App is the host application.
type App interface {
	// Events returns and clears the pending application events.
	Events() []AppEvent
	Render(patch treediff.Patch, state *model.AppState)
}

// Window is the chrome around the browser surface.
type Window interface {
	// Events returns and clears the pending window events.
	Events() []WindowEvent
	Render(patch treediff.Patch, state *model.WindowState)
	// AppendLogs adds lines to the log panel.
	AppendLogs(lines []string)
}

// Surface is the area the engine draws into.
type Surface interface {
	// Events returns and clears the pending surface events.
	Events() []SurfaceEvent
	Geometry() input.Geometry
	UpdateDrawable()
	EnterFullscreen()
	ExitFullscreen()
}

// Opener hands URLs to the desktop and text to the clipboard.
type Opener interface {
	OpenURL(url string) error
	CopyText(text string) error
}

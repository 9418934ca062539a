package platform

import (
	"fmt"

	"browsershell/internal/input"
)

// WindowEvent is one of the events a window can report. The set is closed:
// only types in this file implement it.
type WindowEvent interface {
	windowEvent()
}

type (
	// EventLoopAwaken is sent when the host run-loop was woken from another
	// goroutine. It forces an engine frame sync at the end of the tick.
	EventLoopAwaken   struct{}
	GeometryDidChange struct{}
	DidEnterFullScreen struct{}
	DidExitFullScreen  struct{}
	WillClose          struct{}
	OptionsClosed      struct{}
	UrlbarFocusChanged struct{ Focused bool }
	// DoCommand carries a user command from the window chrome.
	DoCommand struct{ Command WindowCommand }
)

func (EventLoopAwaken) windowEvent()    {}
func (GeometryDidChange) windowEvent()  {}
func (DidEnterFullScreen) windowEvent() {}
func (DidExitFullScreen) windowEvent()  {}
func (WillClose) windowEvent()          {}
func (OptionsClosed) windowEvent()      {}
func (UrlbarFocusChanged) windowEvent() {}
func (DoCommand) windowEvent()          {}

// WindowCommand is a command issued from menus, key bindings or remote
// control.
type WindowCommand interface {
	windowCommand()
}

type (
	Stop                                    struct{}
	Reload                                  struct{}
	NavigateBack                            struct{}
	NavigateForward                         struct{}
	OpenLocation                            struct{}
	OpenInDefaultBrowser                    struct{}
	ZoomIn                                  struct{}
	ZoomOut                                 struct{}
	ZoomToActualSize                        struct{}
	ToggleSidebar                           struct{}
	ShowOptions                             struct{}
	Load                                    struct{ Request string }
	ToggleOptionShowLogs                    struct{}
	NewTab                                  struct{}
	CloseTab                                struct{}
	PrevTab                                 struct{}
	NextTab                                 struct{}
	SelectTab                               struct{ Index int }
	ToggleOptionFragmentBorders             struct{}
	ToggleOptionParallelDisplayListBuilding struct{}
	ToggleOptionShowParallelLayout          struct{}
	ToggleOptionConvertMouseToTouch         struct{}
	ToggleOptionTileBorders                 struct{}
	ToggleOptionWRProfiler                  struct{}
	ToggleOptionWRTextureCacheDebug         struct{}
	ToggleOptionWRTargetDebug               struct{}
	CopyURL                                 struct{}
)

func (Stop) windowCommand()                                    {}
func (Reload) windowCommand()                                  {}
func (NavigateBack) windowCommand()                            {}
func (NavigateForward) windowCommand()                         {}
func (OpenLocation) windowCommand()                            {}
func (OpenInDefaultBrowser) windowCommand()                    {}
func (ZoomIn) windowCommand()                                  {}
func (ZoomOut) windowCommand()                                 {}
func (ZoomToActualSize) windowCommand()                        {}
func (ToggleSidebar) windowCommand()                           {}
func (ShowOptions) windowCommand()                             {}
func (Load) windowCommand()                                    {}
func (ToggleOptionShowLogs) windowCommand()                    {}
func (NewTab) windowCommand()                                  {}
func (CloseTab) windowCommand()                                {}
func (PrevTab) windowCommand()                                 {}
func (NextTab) windowCommand()                                 {}
func (SelectTab) windowCommand()                               {}
func (ToggleOptionFragmentBorders) windowCommand()             {}
func (ToggleOptionParallelDisplayListBuilding) windowCommand() {}
func (ToggleOptionShowParallelLayout) windowCommand()          {}
func (ToggleOptionConvertMouseToTouch) windowCommand()         {}
func (ToggleOptionTileBorders) windowCommand()                 {}
func (ToggleOptionWRProfiler) windowCommand()                  {}
func (ToggleOptionWRTextureCacheDebug) windowCommand()         {}
func (ToggleOptionWRTargetDebug) windowCommand()               {}
func (CopyURL) windowCommand()                                 {}

// AppEvent is one of the events the host application can report.
type AppEvent interface {
	appEvent()
}

type (
	DidFinishLaunching        struct{}
	WillTerminate             struct{}
	DidChangeScreenParameters struct{}
	AppDoCommand              struct{ Command AppCommand }
)

func (DidFinishLaunching) appEvent()        {}
func (WillTerminate) appEvent()             {}
func (DidChangeScreenParameters) appEvent() {}
func (AppDoCommand) appEvent()              {}

// AppCommand is an application level command.
type AppCommand int

const (
	ClearHistory AppCommand = iota
	ToggleOptionDarkTheme
)

func (c AppCommand) String() string {
	switch c {
	case ClearHistory:
		return "ClearHistory"
	case ToggleOptionDarkTheme:
		return "ToggleOptionDarkTheme"
	default:
		return fmt.Sprintf("AppCommand(%d)", int(c))
	}
}

// SurfaceEvent is one of the events the rendering surface can report.
type SurfaceEvent interface {
	surfaceEvent()
}

type (
	SurfaceGeometryDidChange struct{}
	MouseWheel               struct {
		Delta input.ScrollDelta
		Phase input.TouchPhase
	}
	MouseMoved struct{ X, Y int }
	MouseInput struct {
		State  input.ElementState
		Button input.MouseButton
		X, Y   int
	}
	KeyEvent struct {
		Char      rune
		Key       input.Key
		State     input.ElementState
		Modifiers input.Modifiers
	}
)

func (SurfaceGeometryDidChange) surfaceEvent() {}
func (MouseWheel) surfaceEvent()               {}
func (MouseMoved) surfaceEvent()               {}
func (MouseInput) surfaceEvent()               {}
func (KeyEvent) surfaceEvent()                 {}

// Package model defines the UI state trees rendered by the shell.
//
// AppState exists once per process and WindowState once per window. Each is
// wrapped in a state.Container by the pump; the JSON field names below are
// the paths renderers see in diffs.
package model

import "browsershell/internal/tabs"

// Cursor is the pointer shape requested by the page.
type Cursor string

const (
	CursorDefault  Cursor = "default"
	CursorPointer  Cursor = "pointer"
	CursorText     Cursor = "text"
	CursorWait     Cursor = "wait"
	CursorProgress Cursor = "progress"
	CursorMove     Cursor = "move"
	CursorNone     Cursor = "none"
)

// AppState is process-wide UI state.
type AppState struct {
	DarkTheme          bool   `json:"dark_theme"`
	Cursor             Cursor `json:"cursor"`
	CurrentWindowIndex *int   `json:"current_window_index"`
}

// NewAppState returns the startup app state.
func NewAppState() AppState {
	return AppState{Cursor: CursorDefault}
}

// DebugOptions mirrors the renderer debug overlays toggled from the options
// panel.
type DebugOptions struct {
	WRProfiler          bool `json:"wr_profiler"`
	WRTextureCacheDebug bool `json:"wr_texture_cache_debug"`
	WRRenderTargetDebug bool `json:"wr_render_target_debug"`
}

// WindowState is the state of one browser window.
type WindowState struct {
	Tabs          tabs.Collection `json:"tabs"`
	SidebarIsOpen bool            `json:"sidebar_is_open"`
	OptionsOpen   bool            `json:"options_open"`
	LogsVisible   bool            `json:"logs_visible"`
	Status        *string         `json:"status"`
	DebugOptions  DebugOptions    `json:"debug_options"`
}

// NewWindowState returns an empty window with no tabs.
func NewWindowState() WindowState {
	return WindowState{Tabs: tabs.Collection{Browsers: []tabs.Browser{}}}
}

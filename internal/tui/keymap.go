package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the shell's keybindings. Keys not bound here go to the page.
type KeyMap struct {
	// Tabs
	NewTab    key.Binding
	CloseTab  key.Binding
	NextTab   key.Binding
	PrevTab   key.Binding
	SelectTab key.Binding

	// Navigation
	OpenLocation key.Binding
	Reload       key.Binding
	Stop         key.Binding
	Back         key.Binding
	Forward      key.Binding

	// Zoom
	ZoomIn     key.Binding
	ZoomOut    key.Binding
	ZoomActual key.Binding

	// Panels and options
	ToggleSidebar key.Binding
	ShowOptions   key.Binding
	ToggleLogs    key.Binding
	ToggleDark    key.Binding
	ToggleBorders key.Binding
	ToggleProfile key.Binding

	CopyURL       key.Binding
	OpenExternal  key.Binding
	ClearHistory  key.Binding
	ToggleHelp    key.Binding
	Quit          key.Binding
	LogScrollUp   key.Binding
	LogScrollDown key.Binding
}

// UrlbarKeyMap applies while the location bar has focus.
type UrlbarKeyMap struct {
	Submit   key.Binding
	Cancel   key.Binding
	Complete key.Binding
}

// DefaultKeyMap returns a KeyMap with default bindings. Plain letters are
// left to the page, so shell bindings use ctrl or alt.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		NewTab: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "new tab"),
		),
		CloseTab: key.NewBinding(
			key.WithKeys("ctrl+w"),
			key.WithHelp("ctrl+w", "close tab"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("ctrl+pgdown", "alt+]"),
			key.WithHelp("alt+]", "next tab"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("ctrl+pgup", "alt+["),
			key.WithHelp("alt+[", "previous tab"),
		),
		SelectTab: key.NewBinding(
			key.WithKeys("alt+1", "alt+2", "alt+3", "alt+4", "alt+5", "alt+6", "alt+7", "alt+8", "alt+9"),
			key.WithHelp("alt+1-9", "go to tab"),
		),
		OpenLocation: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "open location"),
		),
		Reload: key.NewBinding(
			key.WithKeys("ctrl+r", "f5"),
			key.WithHelp("ctrl+r", "reload"),
		),
		Stop: key.NewBinding(
			key.WithKeys("alt+."),
			key.WithHelp("alt+.", "stop"),
		),
		Back: key.NewBinding(
			key.WithKeys("alt+left"),
			key.WithHelp("alt+←", "back"),
		),
		Forward: key.NewBinding(
			key.WithKeys("alt+right"),
			key.WithHelp("alt+→", "forward"),
		),
		ZoomIn: key.NewBinding(
			key.WithKeys("alt+=", "alt++"),
			key.WithHelp("alt+=", "zoom in"),
		),
		ZoomOut: key.NewBinding(
			key.WithKeys("alt+-"),
			key.WithHelp("alt+-", "zoom out"),
		),
		ZoomActual: key.NewBinding(
			key.WithKeys("alt+0"),
			key.WithHelp("alt+0", "actual size"),
		),
		ToggleSidebar: key.NewBinding(
			key.WithKeys("alt+s"),
			key.WithHelp("alt+s", "toggle sidebar"),
		),
		ShowOptions: key.NewBinding(
			key.WithKeys("alt+o"),
			key.WithHelp("alt+o", "options"),
		),
		ToggleLogs: key.NewBinding(
			key.WithKeys("alt+l"),
			key.WithHelp("alt+l", "toggle logs"),
		),
		ToggleDark: key.NewBinding(
			key.WithKeys("alt+d"),
			key.WithHelp("alt+d", "toggle dark/light mode"),
		),
		ToggleBorders: key.NewBinding(
			key.WithKeys("alt+b"),
			key.WithHelp("alt+b", "fragment borders"),
		),
		ToggleProfile: key.NewBinding(
			key.WithKeys("alt+p"),
			key.WithHelp("alt+p", "profiler overlay"),
		),
		CopyURL: key.NewBinding(
			key.WithKeys("alt+y"),
			key.WithHelp("alt+y", "copy url"),
		),
		OpenExternal: key.NewBinding(
			key.WithKeys("alt+x"),
			key.WithHelp("alt+x", "open in system browser"),
		),
		ClearHistory: key.NewBinding(
			key.WithKeys("alt+h"),
			key.WithHelp("alt+h", "clear history"),
		),
		ToggleHelp: key.NewBinding(
			key.WithKeys("alt+?", "f1"),
			key.WithHelp("f1", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+q", "ctrl+c"),
			key.WithHelp("ctrl+q", "quit"),
		),
		LogScrollUp: key.NewBinding(
			key.WithKeys("shift+up"),
			key.WithHelp("shift+↑", "scroll logs up"),
		),
		LogScrollDown: key.NewBinding(
			key.WithKeys("shift+down"),
			key.WithHelp("shift+↓", "scroll logs down"),
		),
	}
}

// DefaultUrlbarKeyMap returns the location bar bindings.
func DefaultUrlbarKeyMap() UrlbarKeyMap {
	return UrlbarKeyMap{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "go"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		Complete: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "accept suggestion"),
		),
	}
}

// FullHelp returns bindings for the main help view.
// Each inner slice is a column in the help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NewTab, k.CloseTab, k.NextTab, k.PrevTab, k.SelectTab},
		{k.OpenLocation, k.Reload, k.Stop, k.Back, k.Forward},
		{k.ZoomIn, k.ZoomOut, k.ZoomActual, k.CopyURL, k.OpenExternal},
		{k.ToggleSidebar, k.ShowOptions, k.ToggleLogs, k.ToggleDark, k.ClearHistory},
		{k.ToggleBorders, k.ToggleProfile, k.LogScrollUp, k.LogScrollDown, k.ToggleHelp, k.Quit},
	}
}

// ShortHelp returns the bindings shown in the status bar.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.OpenLocation, k.NewTab, k.CloseTab, k.ToggleHelp, k.Quit}
}

func (k UrlbarKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func (k UrlbarKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Complete, k.Cancel}
}

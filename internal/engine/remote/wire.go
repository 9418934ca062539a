package remote

import (
	"fmt"

	"browsershell/internal/engine"
	"browsershell/internal/input"
	"browsershell/internal/model"
	"browsershell/internal/tabs"
)

// command is the envelope written for every call on the engine. Only the
// fields the command type needs are set.
type command struct {
	Type      string             `json:"type"`
	Browser   tabs.BrowserID     `json:"browser,omitempty"`
	URL       string             `json:"url,omitempty"`
	Factor    float64            `json:"factor,omitempty"`
	Geometry  *input.Geometry    `json:"geometry,omitempty"`
	X         int                `json:"x,omitempty"`
	Y         int                `json:"y,omitempty"`
	DX        float64            `json:"dx,omitempty"`
	DY        float64            `json:"dy,omitempty"`
	Phase     input.TouchPhase   `json:"phase,omitempty"`
	State     input.ElementState `json:"state,omitempty"`
	Button    input.MouseButton  `json:"button,omitempty"`
	Char      string             `json:"char,omitempty"`
	Key       input.Key          `json:"key,omitempty"`
	Modifiers input.Modifiers    `json:"modifiers,omitempty"`
	Option    string             `json:"option,omitempty"`
	Force     bool               `json:"force,omitempty"`
}

// message is the envelope read from the engine.
type message struct {
	Type       string                `json:"type"`
	Version    string                `json:"version,omitempty"`
	Browser    tabs.BrowserID        `json:"browser,omitempty"`
	Title      *string               `json:"title,omitempty"`
	Status     *string               `json:"status,omitempty"`
	URL        string                `json:"url,omitempty"`
	Entries    []engine.HistoryEntry `json:"entries,omitempty"`
	Current    int                   `json:"current,omitempty"`
	Cursor     model.Cursor          `json:"cursor,omitempty"`
	Fullscreen bool                  `json:"fullscreen,omitempty"`
	Width      int                   `json:"width,omitempty"`
	Height     int                   `json:"height,omitempty"`
	X          int                   `json:"x,omitempty"`
	Y          int                   `json:"y,omitempty"`
	Data       string                `json:"data,omitempty"`
	DataType   string                `json:"data_type,omitempty"`
	Char       string                `json:"char,omitempty"`
	Key        input.Key             `json:"key,omitempty"`
	State      input.ElementState    `json:"state,omitempty"`
	Modifiers  input.Modifiers       `json:"modifiers,omitempty"`
}

func (m message) event() (engine.Event, error) {
	switch m.Type {
	case "set_window_inner_size":
		return engine.SetWindowInnerSize{Width: m.Width, Height: m.Height}, nil
	case "set_window_position":
		return engine.SetWindowPosition{X: m.X, Y: m.Y}, nil
	case "set_fullscreen_state":
		return engine.SetFullScreenState{Fullscreen: m.Fullscreen}, nil
	case "title_changed":
		return engine.TitleChanged{Browser: m.Browser, Title: m.Title}, nil
	case "status_changed":
		return engine.StatusChanged{Status: m.Status}, nil
	case "load_start":
		return engine.LoadStart{Browser: m.Browser}, nil
	case "load_end":
		return engine.LoadEnd{Browser: m.Browser}, nil
	case "head_parsed":
		return engine.HeadParsed{Browser: m.Browser}, nil
	case "history_changed":
		return engine.HistoryChanged{Browser: m.Browser, Entries: m.Entries, Current: m.Current}, nil
	case "cursor_changed":
		return engine.CursorChanged{Cursor: m.Cursor}, nil
	case "favicon_changed":
		return engine.FaviconChanged{Browser: m.Browser, URL: m.URL}, nil
	case "key":
		return engine.Key{Char: firstRune(m.Char), Key: m.Key, State: m.State, Modifiers: m.Modifiers}, nil
	case "open_in_default_browser":
		return engine.OpenInDefaultBrowser{URL: m.URL}, nil
	case "write_microdata":
		return engine.WriteMicrodata{Data: m.Data, Type: m.DataType}, nil
	default:
		return nil, fmt.Errorf("unknown engine message %q", m.Type)
	}
}

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return 0
}

package engine

import (
	"browsershell/internal/input"
	"browsershell/internal/model"
	"browsershell/internal/tabs"
)

// Event is one of the notifications an engine can emit. The set is closed:
// only types in this file implement it.
type Event interface {
	engineEvent()
}

// HistoryEntry is one page in a session's history.
type HistoryEntry struct {
	URL   string `json:"url"`
	Title string `json:"title,omitempty"`
}

type (
	SetWindowInnerSize struct{ Width, Height int }
	SetWindowPosition  struct{ X, Y int }
	SetFullScreenState struct{ Fullscreen bool }
	TitleChanged       struct {
		Browser tabs.BrowserID
		Title   *string
	}
	StatusChanged struct{ Status *string }
	LoadStart     struct{ Browser tabs.BrowserID }
	LoadEnd       struct{ Browser tabs.BrowserID }
	HeadParsed    struct{ Browser tabs.BrowserID }
	// HistoryChanged reports the full history of a session and the position
	// of the page now shown.
	HistoryChanged struct {
		Browser tabs.BrowserID
		Entries []HistoryEntry
		Current int
	}
	CursorChanged  struct{ Cursor model.Cursor }
	FaviconChanged struct {
		Browser tabs.BrowserID
		URL     string
	}
	Key struct {
		Char      rune
		Key       input.Key
		State     input.ElementState
		Modifiers input.Modifiers
	}
	OpenInDefaultBrowser struct{ URL string }
	// WriteMicrodata asks the shell to save extracted page metadata. Type
	// is "vcard" or "json".
	WriteMicrodata struct {
		Data string
		Type string
	}
)

func (SetWindowInnerSize) engineEvent()   {}
func (SetWindowPosition) engineEvent()    {}
func (SetFullScreenState) engineEvent()   {}
func (TitleChanged) engineEvent()         {}
func (StatusChanged) engineEvent()        {}
func (LoadStart) engineEvent()            {}
func (LoadEnd) engineEvent()              {}
func (HeadParsed) engineEvent()           {}
func (HistoryChanged) engineEvent()       {}
func (CursorChanged) engineEvent()        {}
func (FaviconChanged) engineEvent()       {}
func (Key) engineEvent()                  {}
func (OpenInDefaultBrowser) engineEvent() {}
func (WriteMicrodata) engineEvent()       {}

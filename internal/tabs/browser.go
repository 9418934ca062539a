package tabs

// BrowserID is the engine's handle for a browsing session. It is unique for
// the lifetime of the session.
type BrowserID string

// Browser is the shell's record of one tab.
type Browser struct {
	ID            BrowserID `json:"id"`
	URL           *string   `json:"url"`
	Title         *string   `json:"title"`
	Zoom          float64   `json:"zoom"`
	IsLoading     bool      `json:"is_loading"`
	CanGoBack     bool      `json:"can_go_back"`
	CanGoForward  bool      `json:"can_go_forward"`
	IsBackground  bool      `json:"is_background"`
	UrlbarFocused bool      `json:"urlbar_focused"`
	UserInput     *string   `json:"user_input"`
}

// NewBrowser wraps a freshly created engine session.
func NewBrowser(id BrowserID) Browser {
	return Browser{ID: id, Zoom: 1.0}
}

// DisplayTitle returns the title, falling back to the URL and then to a
// placeholder.
func (b Browser) DisplayTitle() string {
	if b.Title != nil && *b.Title != "" {
		return *b.Title
	}
	if b.URL != nil && *b.URL != "" {
		return *b.URL
	}
	return "New Tab"
}

// StringPtr is a convenience for optional string fields.
func StringPtr(s string) *string {
	return &s
}

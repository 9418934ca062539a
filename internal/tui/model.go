package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"browsershell/internal/platform"
	"browsershell/internal/tabs"
	"browsershell/pkg/logging"
)

// Suggester completes location bar input from visited pages.
type Suggester interface {
	Suggest(ctx context.Context, input string) (string, bool, error)
}

// Ticker runs one pass of the event pump.
type Ticker interface {
	Tick() error
}

// Option configures a Model.
type Option func(*Model)

// WithSuggester enables location bar completion.
func WithSuggester(s Suggester) Option {
	return func(m *Model) { m.suggester = s }
}

// WithKeyMap replaces the default bindings.
func WithKeyMap(k KeyMap) Option {
	return func(m *Model) { m.keys = k }
}

// Model is the bubbletea model of the shell. Every message is translated
// into host events and followed by one pump tick, so the pump always runs on
// the bubbletea goroutine.
type Model struct {
	ctx   context.Context
	shell Ticker
	host  *Host
	waker *Waker

	keys       KeyMap
	urlbarKeys UrlbarKeyMap
	help       help.Model
	urlbar     textinput.Model
	logs       viewport.Model

	suggester  Suggester
	suggestion string
	// browser the urlbar text belongs to
	urlbarFor tabs.BrowserID

	width, height int
	quitting      bool
	err           error
}

// NewModel returns the model for a started shell.
func NewModel(ctx context.Context, shell Ticker, host *Host, waker *Waker, opts ...Option) *Model {
	ti := textinput.New()
	ti.Prompt = IconSearch + " "
	ti.Placeholder = "Search or enter address"
	ti.CharLimit = 2048

	m := &Model{
		ctx:        ctx,
		shell:      shell,
		host:       host,
		waker:      waker,
		keys:       DefaultKeyMap(),
		urlbarKeys: DefaultUrlbarKeyMap(),
		help:       help.New(),
		urlbar:     ti,
		logs:       viewport.New(0, logPanelRows),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Err returns the error that stopped the pump, if any.
func (m *Model) Err() error {
	return m.err
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(tea.SetWindowTitle("browsershell"), m.afterTick())
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.logs.Width = msg.Width
		m.urlbar.Width = max(msg.Width/2, 10)
		if m.host.resize(msg.Width, msg.Height) {
			m.host.pushWindow(platform.GeometryDidChange{})
		}
		m.host.logsChanged = true
	case awakenMsg:
		m.waker.consume()
		m.host.pushWindow(platform.EventLoopAwaken{})
	case tea.KeyMsg:
		cmds = append(cmds, m.handleKey(msg))
	case tea.MouseMsg:
		for _, ev := range pageMouse(msg, m.host.geometry) {
			m.host.pushSurface(ev)
		}
	}

	if err := m.shell.Tick(); err != nil {
		m.err = err
		logging.Error(subsystem, err, "Event pump stopped")
		return m, tea.Quit
	}
	cmds = append(cmds, m.afterTick())
	if m.quitting {
		cmds = append(cmds, tea.Quit)
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keys.Quit) {
		m.host.pushWindow(platform.WillClose{})
		m.quitting = true
		return nil
	}
	if fg := m.host.foreground(); fg != nil && fg.UrlbarFocused {
		return m.handleUrlbarKey(msg)
	}

	k := m.keys
	switch {
	case key.Matches(msg, k.NewTab):
		m.host.pushCommand(platform.NewTab{})
	case key.Matches(msg, k.CloseTab):
		m.host.pushCommand(platform.CloseTab{})
	case key.Matches(msg, k.NextTab):
		m.host.pushCommand(platform.NextTab{})
	case key.Matches(msg, k.PrevTab):
		m.host.pushCommand(platform.PrevTab{})
	case key.Matches(msg, k.SelectTab):
		s := msg.String()
		m.host.pushCommand(platform.SelectTab{Index: int(s[len(s)-1] - '1')})
	case key.Matches(msg, k.OpenLocation):
		m.host.pushCommand(platform.OpenLocation{})
	case key.Matches(msg, k.Reload):
		m.host.pushCommand(platform.Reload{})
	case key.Matches(msg, k.Stop):
		m.host.pushCommand(platform.Stop{})
	case key.Matches(msg, k.Back):
		m.host.pushCommand(platform.NavigateBack{})
	case key.Matches(msg, k.Forward):
		m.host.pushCommand(platform.NavigateForward{})
	case key.Matches(msg, k.ZoomIn):
		m.host.pushCommand(platform.ZoomIn{})
	case key.Matches(msg, k.ZoomOut):
		m.host.pushCommand(platform.ZoomOut{})
	case key.Matches(msg, k.ZoomActual):
		m.host.pushCommand(platform.ZoomToActualSize{})
	case key.Matches(msg, k.ToggleSidebar):
		m.host.pushCommand(platform.ToggleSidebar{})
	case key.Matches(msg, k.ShowOptions):
		m.host.pushCommand(platform.ShowOptions{})
	case key.Matches(msg, k.ToggleLogs):
		m.host.pushCommand(platform.ToggleOptionShowLogs{})
	case key.Matches(msg, k.ToggleBorders):
		m.host.pushCommand(platform.ToggleOptionFragmentBorders{})
	case key.Matches(msg, k.ToggleProfile):
		m.host.pushCommand(platform.ToggleOptionWRProfiler{})
	case key.Matches(msg, k.CopyURL):
		m.host.pushCommand(platform.CopyURL{})
	case key.Matches(msg, k.OpenExternal):
		m.host.pushCommand(platform.OpenInDefaultBrowser{})
	case key.Matches(msg, k.ToggleDark):
		m.host.pushApp(platform.AppDoCommand{Command: platform.ToggleOptionDarkTheme})
	case key.Matches(msg, k.ClearHistory):
		m.host.pushApp(platform.AppDoCommand{Command: platform.ClearHistory})
	case key.Matches(msg, k.ToggleHelp):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, k.LogScrollUp):
		m.logs.LineUp(1)
	case key.Matches(msg, k.LogScrollDown):
		m.logs.LineDown(1)
	case msg.Type == tea.KeyEsc && m.host.win.OptionsOpen:
		m.host.pushWindow(platform.OptionsClosed{})
	default:
		for _, ev := range pageKeys(msg) {
			m.host.pushSurface(ev)
		}
	}
	return nil
}

func (m *Model) handleUrlbarKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.urlbarKeys.Submit):
		m.host.pushCommand(platform.Load{Request: m.urlbar.Value()})
		m.suggestion = ""
		return nil
	case key.Matches(msg, m.urlbarKeys.Cancel):
		m.host.pushWindow(platform.UrlbarFocusChanged{Focused: false})
		m.suggestion = ""
		return nil
	case key.Matches(msg, m.urlbarKeys.Complete):
		if m.suggestion != "" {
			m.urlbar.SetValue(m.suggestion)
			m.urlbar.CursorEnd()
			m.suggestion = ""
		}
		return nil
	}

	before := m.urlbar.Value()
	var cmd tea.Cmd
	m.urlbar, cmd = m.urlbar.Update(msg)
	if m.urlbar.Value() != before {
		m.refreshSuggestion()
	}
	return cmd
}

func (m *Model) refreshSuggestion() {
	m.suggestion = ""
	text := strings.TrimSpace(m.urlbar.Value())
	if m.suggester == nil || text == "" {
		return
	}
	url, ok, err := m.suggester.Suggest(m.ctx, text)
	if err != nil {
		logging.Debug(subsystem, "History suggestion failed: %v", err)
		return
	}
	if ok && url != text {
		m.suggestion = url
	}
}

// afterTick brings the widgets in line with what the pump rendered.
func (m *Model) afterTick() tea.Cmd {
	if m.host.logsChanged {
		m.logs.SetContent(prepareLogContent(m.host.logs, m.width))
		m.logs.GotoBottom()
		m.host.logsChanged = false
	}
	if !m.host.winChanged {
		return nil
	}
	m.host.winChanged = false
	return m.syncUrlbar()
}

// syncUrlbar follows the foreground tab. While the bar is focused the text
// belongs to the user and is only replaced when another tab comes forward.
func (m *Model) syncUrlbar() tea.Cmd {
	fg := m.host.foreground()
	if fg == nil {
		return nil
	}
	switched := fg.ID != m.urlbarFor
	m.urlbarFor = fg.ID

	switch {
	case fg.UrlbarFocused && (!m.urlbar.Focused() || switched):
		m.urlbar.SetValue(urlbarText(*fg))
		m.urlbar.CursorEnd()
		m.suggestion = ""
		return m.urlbar.Focus()
	case !fg.UrlbarFocused:
		if m.urlbar.Focused() {
			m.urlbar.Blur()
		}
		m.urlbar.SetValue(derefOr(fg.URL, ""))
	}
	return nil
}

// urlbarText is what the bar shows when it takes focus: the last thing typed
// into it, or the page address.
func urlbarText(b tabs.Browser) string {
	if b.UserInput != nil {
		return *b.UserInput
	}
	return derefOr(b.URL, "")
}

func derefOr(s *string, def string) string {
	if s == nil {
		return def
	}
	return *s
}

// foreground returns the rendered foreground tab.
func (h *Host) foreground() *tabs.Browser {
	c := h.win.Tabs.Current
	if c == nil || *c < 0 || *c >= len(h.win.Tabs.Browsers) {
		return nil
	}
	return &h.win.Tabs.Browsers[*c]
}

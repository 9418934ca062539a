// Package sim is an in-process engine that fakes page loads. Navigation
// completes immediately: every command queues the events a real engine would
// send, and the next Events call returns them. It backs the terminal host
// when no external engine is configured and the pump tests.
package sim

import (
	"net/url"
	"sync"

	"github.com/google/uuid"

	"browsershell/internal/engine"
	"browsershell/internal/input"
	"browsershell/internal/tabs"
)

const version = "browsershell-sim/1.0"

type session struct {
	history []engine.HistoryEntry
	current int
	zoom    float64
}

// Engine is a deterministic engine.Engine.
type Engine struct {
	mu       sync.Mutex
	pending  []engine.Event
	sessions map[tabs.BrowserID]*session
	selected tabs.BrowserID
	geometry input.Geometry
	debug    map[engine.DebugOption]bool
	syncs    int
	forced   int
	closed   bool
	newID    func() tabs.BrowserID
	wake     func()
}

// Option configures an Engine.
type Option func(*Engine)

// WithIDs replaces the uuid generator, for tests that need stable ids.
func WithIDs(next func() tabs.BrowserID) Option {
	return func(e *Engine) { e.newID = next }
}

// WithWaker sets a function called after Emit queues an event from outside
// the pump.
func WithWaker(wake func()) Option {
	return func(e *Engine) { e.wake = wake }
}

// New returns an engine with no sessions.
func New(opts ...Option) *Engine {
	e := &Engine{
		sessions: make(map[tabs.BrowserID]*session),
		debug:    make(map[engine.DebugOption]bool),
		newID:    func() tabs.BrowserID { return tabs.BrowserID(uuid.New().String()) },
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

var _ engine.Engine = (*Engine)(nil)

func (e *Engine) Events() []engine.Event {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := e.pending
	e.pending = nil
	return out
}

// Emit queues an arbitrary event, as if the page had produced it.
func (e *Engine) Emit(ev engine.Event) {
	e.mu.Lock()
	e.pending = append(e.pending, ev)
	wake := e.wake
	e.mu.Unlock()
	if wake != nil {
		wake()
	}
}

func (e *Engine) NewBrowser(rawURL string) (tabs.Browser, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return tabs.Browser{}, engine.ErrClosed
	}
	id := e.newID()
	e.sessions[id] = &session{zoom: 1.0}
	e.navigate(id, rawURL)
	return tabs.NewBrowser(id), nil
}

func (e *Engine) SelectBrowser(id tabs.BrowserID) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.sessions[id]; ok {
		e.selected = id
	}
}

func (e *Engine) CloseBrowser(id tabs.BrowserID) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.sessions, id)
	if e.selected == id {
		e.selected = ""
	}
}

func (e *Engine) LoadURL(id tabs.BrowserID, rawURL string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.navigate(id, rawURL)
}

func (e *Engine) Reload(id tabs.BrowserID) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.sessions[id]; !ok {
		return
	}
	e.pending = append(e.pending, engine.LoadStart{Browser: id}, engine.LoadEnd{Browser: id})
}

func (e *Engine) GoBack(id tabs.BrowserID) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.traverse(id, -1)
}

func (e *Engine) GoForward(id tabs.BrowserID) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.traverse(id, 1)
}

func (e *Engine) Zoom(factor float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if s, ok := e.sessions[e.selected]; ok {
		s.zoom = factor
	}
}

func (e *Engine) ResetZoom() {
	e.Zoom(1.0)
}

func (e *Engine) UpdateGeometry(g input.Geometry) {
	e.mu.Lock()
	e.geometry = g
	e.mu.Unlock()
}

func (e *Engine) PerformScroll(x, y int, dx, dy float64, phase input.TouchPhase) {}

func (e *Engine) PerformMouseMove(x, y int) {}

func (e *Engine) PerformClick(x, y int, state input.ElementState, button input.MouseButton) {}

// SendKey echoes the key back as an engine Key event, the way a page that
// does not consume it would.
func (e *Engine) SendKey(id tabs.BrowserID, ch rune, key input.Key, state input.ElementState, mods input.Modifiers) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.sessions[id]; !ok {
		return
	}
	e.pending = append(e.pending, engine.Key{Char: ch, Key: key, State: state, Modifiers: mods})
}

func (e *Engine) ToggleDebugOption(opt engine.DebugOption) {
	e.mu.Lock()
	e.debug[opt] = !e.debug[opt]
	e.mu.Unlock()
}

func (e *Engine) Sync(force bool) {
	e.mu.Lock()
	e.syncs++
	if force {
		e.forced++
	}
	e.mu.Unlock()
}

func (e *Engine) Version() string {
	return version
}

func (e *Engine) Close() error {
	e.mu.Lock()
	e.closed = true
	e.sessions = make(map[tabs.BrowserID]*session)
	e.mu.Unlock()
	return nil
}

// Inspection helpers for tests and diagnostics.

// Selected returns the selected session.
func (e *Engine) Selected() tabs.BrowserID {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.selected
}

// SessionZoom returns the zoom recorded for id.
func (e *Engine) SessionZoom(id tabs.BrowserID) float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	if s, ok := e.sessions[id]; ok {
		return s.zoom
	}
	return 0
}

// HasSession reports whether id is open.
func (e *Engine) HasSession(id tabs.BrowserID) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, ok := e.sessions[id]
	return ok
}

// DebugEnabled reports whether opt is toggled on.
func (e *Engine) DebugEnabled(opt engine.DebugOption) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.debug[opt]
}

// Syncs returns how many times Sync was called, and how many of those
// were forced.
func (e *Engine) Syncs() (total, forced int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.syncs, e.forced
}

// Geometry returns the last geometry sent by the shell.
func (e *Engine) Geometry() input.Geometry {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.geometry
}

func (e *Engine) navigate(id tabs.BrowserID, rawURL string) {
	s, ok := e.sessions[id]
	if !ok {
		return
	}
	entry := engine.HistoryEntry{URL: rawURL, Title: titleFor(rawURL)}
	if len(s.history) > 0 {
		s.history = s.history[:s.current+1]
	}
	s.history = append(s.history, entry)
	s.current = len(s.history) - 1
	e.emitPage(id, s)
}

func (e *Engine) traverse(id tabs.BrowserID, delta int) {
	s, ok := e.sessions[id]
	if !ok {
		return
	}
	next := s.current + delta
	if next < 0 || next >= len(s.history) {
		return
	}
	s.current = next
	e.emitPage(id, s)
}

func (e *Engine) emitPage(id tabs.BrowserID, s *session) {
	entries := make([]engine.HistoryEntry, len(s.history))
	copy(entries, s.history)
	title := s.history[s.current].Title
	e.pending = append(e.pending,
		engine.LoadStart{Browser: id},
		engine.HistoryChanged{Browser: id, Entries: entries, Current: s.current},
		engine.TitleChanged{Browser: id, Title: &title},
		engine.LoadEnd{Browser: id},
	)
}

func titleFor(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return rawURL
	}
	return u.Host
}

// Package remote drives an engine running in another process over a
// websocket. Commands are written as JSON envelopes tagged by "type"; a reader
// goroutine decodes the engine's envelopes into engine events and queues them
// for the pump.
//
// The engine greets every connection with {"type":"hello","version":...}
// before anything else.
package remote

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"browsershell/internal/engine"
	"browsershell/internal/input"
	"browsershell/internal/queue"
	"browsershell/internal/tabs"
	"browsershell/pkg/logging"
)

const subsystem = "RemoteEngine"

const (
	defaultQueueSize = 1024
	helloTimeout     = 10 * time.Second
	writeTimeout     = 5 * time.Second
)

// ErrHandshake is returned by Dial when the engine does not say hello.
var ErrHandshake = errors.New("remote engine handshake failed")

// Option configures Dial.
type Option func(*Engine)

// WithWaker sets the function called whenever an event is queued.
func WithWaker(wake func()) Option {
	return func(e *Engine) { e.wake = wake }
}

// WithQueueSize bounds the number of undrained events.
func WithQueueSize(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.queueSize = n
		}
	}
}

// WithOverflow sets what happens to an event arriving while the queue is
// full. The default evicts the oldest event.
func WithOverflow(action queue.OverflowAction) Option {
	return func(e *Engine) { e.overflow = action }
}

// eventStrategy applies action to a full queue, except that status and
// cursor updates are dropped: a later one supersedes them anyway.
func eventStrategy(action queue.OverflowAction) queue.Strategy[engine.Event] {
	return queue.StrategyFunc[engine.Event](func(ev engine.Event) queue.OverflowAction {
		switch ev.(type) {
		case engine.StatusChanged, engine.CursorChanged:
			return queue.OverflowDrop
		}
		return action
	})
}

// Engine is an engine.Engine backed by a websocket connection.
type Engine struct {
	conn    *websocket.Conn
	version string

	writeMu sync.Mutex
	closed  bool

	events    *queue.Queue[engine.Event]
	queueSize int
	overflow  queue.OverflowAction
	wake      func()

	done    chan struct{}
	readErr error
}

var _ engine.Engine = (*Engine)(nil)

// Dial connects to the engine at url and waits for its hello.
func Dial(ctx context.Context, url string, opts ...Option) (*Engine, error) {
	e := &Engine{queueSize: defaultQueueSize, overflow: queue.OverflowEvictOldest, done: make(chan struct{})}
	for _, opt := range opts {
		opt(e)
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("connecting to engine at %s: %w", url, err)
	}
	e.conn = conn

	if err := conn.SetReadDeadline(time.Now().Add(helloTimeout)); err != nil {
		conn.Close()
		return nil, err
	}
	var hello message
	if err := conn.ReadJSON(&hello); err != nil {
		conn.Close()
		return nil, fmt.Errorf("%w: %v", ErrHandshake, err)
	}
	if hello.Type != "hello" {
		conn.Close()
		return nil, fmt.Errorf("%w: got %q first", ErrHandshake, hello.Type)
	}
	_ = conn.SetReadDeadline(time.Time{})
	e.version = hello.Version

	e.events = queue.New[engine.Event]("engine", e.queueSize, eventStrategy(e.overflow))
	if e.wake != nil {
		e.events.OnPush(e.wake)
	}

	go e.readLoop()
	logging.Info(subsystem, "Connected to engine %s at %s", e.version, url)
	return e, nil
}

func (e *Engine) readLoop() {
	defer close(e.done)
	for {
		var m message
		if err := e.conn.ReadJSON(&m); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logging.Error(subsystem, err, "Engine connection lost")
			}
			e.readErr = err
			return
		}
		ev, err := m.event()
		if err != nil {
			logging.Warn(subsystem, "Dropping message: %v", err)
			continue
		}
		e.events.Push(ev)
	}
}

// Done is closed when the connection to the engine ends.
func (e *Engine) Done() <-chan struct{} {
	return e.done
}

// Err returns why the connection ended. Only valid after Done is closed.
func (e *Engine) Err() error {
	return e.readErr
}

// Name and Stats describe the event queue.
func (e *Engine) Name() string {
	return e.events.Name()
}

func (e *Engine) Stats() queue.Stats {
	return e.events.Stats()
}

func (e *Engine) Events() []engine.Event {
	return e.events.Drain()
}

func (e *Engine) send(c command) error {
	e.writeMu.Lock()
	defer e.writeMu.Unlock()
	if e.closed {
		return engine.ErrClosed
	}
	_ = e.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err := e.conn.WriteJSON(c); err != nil {
		return fmt.Errorf("sending %s: %w", c.Type, err)
	}
	return nil
}

// post sends a command whose failure the pump cannot act on.
func (e *Engine) post(c command) {
	if err := e.send(c); err != nil {
		logging.Warn(subsystem, "%v", err)
	}
}

// NewBrowser picks the session id itself so the call never waits for a
// reply.
func (e *Engine) NewBrowser(url string) (tabs.Browser, error) {
	id := tabs.BrowserID(uuid.New().String())
	if err := e.send(command{Type: "new_browser", Browser: id, URL: url}); err != nil {
		return tabs.Browser{}, err
	}
	return tabs.NewBrowser(id), nil
}

func (e *Engine) SelectBrowser(id tabs.BrowserID) {
	e.post(command{Type: "select_browser", Browser: id})
}

func (e *Engine) CloseBrowser(id tabs.BrowserID) {
	e.post(command{Type: "close_browser", Browser: id})
}

func (e *Engine) LoadURL(id tabs.BrowserID, url string) {
	e.post(command{Type: "load_url", Browser: id, URL: url})
}

func (e *Engine) Reload(id tabs.BrowserID) {
	e.post(command{Type: "reload", Browser: id})
}

func (e *Engine) GoBack(id tabs.BrowserID) {
	e.post(command{Type: "go_back", Browser: id})
}

func (e *Engine) GoForward(id tabs.BrowserID) {
	e.post(command{Type: "go_forward", Browser: id})
}

func (e *Engine) Zoom(factor float64) {
	e.post(command{Type: "zoom", Factor: factor})
}

func (e *Engine) ResetZoom() {
	e.post(command{Type: "reset_zoom"})
}

func (e *Engine) UpdateGeometry(g input.Geometry) {
	e.post(command{Type: "update_geometry", Geometry: &g})
}

func (e *Engine) PerformScroll(x, y int, dx, dy float64, phase input.TouchPhase) {
	e.post(command{Type: "scroll", X: x, Y: y, DX: dx, DY: dy, Phase: phase})
}

func (e *Engine) PerformMouseMove(x, y int) {
	e.post(command{Type: "mouse_move", X: x, Y: y})
}

func (e *Engine) PerformClick(x, y int, state input.ElementState, button input.MouseButton) {
	e.post(command{Type: "click", X: x, Y: y, State: state, Button: button})
}

func (e *Engine) SendKey(id tabs.BrowserID, ch rune, key input.Key, state input.ElementState, mods input.Modifiers) {
	c := command{Type: "key", Browser: id, Key: key, State: state, Modifiers: mods}
	if ch != 0 {
		c.Char = string(ch)
	}
	e.post(c)
}

func (e *Engine) ToggleDebugOption(opt engine.DebugOption) {
	e.post(command{Type: "toggle_debug_option", Option: opt.String()})
}

func (e *Engine) Sync(force bool) {
	e.post(command{Type: "sync", Force: force})
}

func (e *Engine) Version() string {
	return e.version
}

// Close says goodbye to the engine and waits for the reader to stop.
func (e *Engine) Close() error {
	e.writeMu.Lock()
	if e.closed {
		e.writeMu.Unlock()
		return nil
	}
	e.closed = true
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	err := e.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeTimeout))
	e.writeMu.Unlock()

	select {
	case <-e.done:
	case <-time.After(writeTimeout):
	}
	if cerr := e.conn.Close(); err == nil {
		err = cerr
	}
	if errors.Is(err, websocket.ErrCloseSent) {
		err = nil
	}
	return err
}

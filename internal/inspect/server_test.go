package inspect

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"browsershell/internal/model"
	"browsershell/internal/queue"
	"browsershell/internal/state"
	"browsershell/internal/tabs"
	"browsershell/pkg/logging"
)

func newTestServer(t *testing.T) (*Server, *state.Store[model.AppState], *state.Store[model.WindowState], *logging.Sink) {
	t.Helper()
	app := &state.Store[model.AppState]{}
	win := &state.Store[model.WindowState]{}
	sink := logging.NewSink()
	q := queue.New[int]("window", 4, nil)
	q.Push(1)
	return NewServer(app, win, sink, q), app, win, sink
}

func get(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func publishWindow(t *testing.T, win *state.Store[model.WindowState]) {
	t.Helper()
	w := model.NewWindowState()
	b := tabs.NewBrowser("b1")
	b.URL = tabs.StringPtr("https://example.org/")
	require.NoError(t, w.Tabs.AppendNew(b))
	require.NoError(t, win.Publish(&w))
}

func TestStateBeforeCommit(t *testing.T) {
	s, _, _, _ := newTestServer(t)
	assert.Equal(t, http.StatusServiceUnavailable, get(t, s, "/state/app").Code)
	assert.Equal(t, http.StatusServiceUnavailable, get(t, s, "/state/window").Code)
	assert.Equal(t, http.StatusServiceUnavailable, get(t, s, "/state/window/tabs/0").Code)
}

func TestStateAfterCommit(t *testing.T) {
	s, app, win, _ := newTestServer(t)
	a := model.NewAppState()
	a.DarkTheme = true
	require.NoError(t, app.Publish(&a))
	publishWindow(t, win)

	rec := get(t, s, "/state/app")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"dark_theme":true,"cursor":"default","current_window_index":null}`, rec.Body.String())

	rec = get(t, s, "/state/window")
	require.Equal(t, http.StatusOK, rec.Code)
	var got model.WindowState
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, 1, got.Tabs.Len())

	rec = get(t, s, "/state/window/tabs/0")
	require.Equal(t, http.StatusOK, rec.Code)
	var b tabs.Browser
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &b))
	assert.Equal(t, tabs.BrowserID("b1"), b.ID)

	assert.Equal(t, http.StatusNotFound, get(t, s, "/state/window/tabs/3").Code)
	assert.Equal(t, http.StatusNotFound, get(t, s, "/state/window/tabs/x").Code)
}

func TestLogs(t *testing.T) {
	s, _, _, sink := newTestServer(t)
	sink.Append(logging.LogEntry{Timestamp: time.Now(), Level: logging.LevelInfo, Subsystem: "Pump", Message: "one"})
	sink.Append(logging.LogEntry{Timestamp: time.Now(), Level: logging.LevelWarn, Subsystem: "Pump", Message: "two"})

	var resp logsResponse
	rec := get(t, s, "/logs")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Lines, 2)
	assert.Equal(t, 2, resp.Next)

	rec = get(t, s, "/logs?since=1")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Lines, 1)
	assert.Contains(t, resp.Lines[0], "two")

	rec = get(t, s, "/logs?since=5")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.Lines)

	assert.Equal(t, http.StatusBadRequest, get(t, s, "/logs?since=-1").Code)
}

func TestHealth(t *testing.T) {
	s, _, win, _ := newTestServer(t)

	var resp healthResponse
	require.NoError(t, json.Unmarshal(get(t, s, "/healthz").Body.Bytes(), &resp))
	assert.Equal(t, "starting", resp.Status)
	require.Len(t, resp.Queues, 1)
	assert.Equal(t, "window", resp.Queues[0].Name)
	assert.EqualValues(t, 1, resp.Queues[0].Stats.Pushed)

	publishWindow(t, win)
	require.NoError(t, json.Unmarshal(get(t, s, "/healthz").Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.EqualValues(t, 1, resp.WindowVersion)
}

func TestMethodNotAllowed(t *testing.T) {
	s, _, _, _ := newTestServer(t)
	rec := httptest.NewRecorder()
	s.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/state/app", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestServeStopsWithContext(t *testing.T) {
	s, _, _, _ := newTestServer(t)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.serve(ctx, ln) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop")
	}
}

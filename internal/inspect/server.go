// Package inspect serves a read-only HTTP view of the shell: the last
// committed app and window state, the log buffer and queue health. It reads
// only published snapshots, never the pump's live state.
package inspect

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"browsershell/internal/model"
	"browsershell/internal/queue"
	"browsershell/internal/state"
	"browsershell/pkg/logging"
)

const subsystem = "Inspector"

// QueueReporter is a queue whose counters show up in /healthz.
type QueueReporter interface {
	Name() string
	Stats() queue.Stats
}

// Server holds the sources the handlers read from.
type Server struct {
	app     *state.Store[model.AppState]
	window  *state.Store[model.WindowState]
	logs    *logging.Sink
	queues  []QueueReporter
	started time.Time
}

// NewServer creates the inspector. logs may be nil.
func NewServer(app *state.Store[model.AppState], window *state.Store[model.WindowState], logs *logging.Sink, queues ...QueueReporter) *Server {
	return &Server{
		app:     app,
		window:  window,
		logs:    logs,
		queues:  queues,
		started: time.Now(),
	}
}

// Routes configures all HTTP routes.
func (s *Server) Routes() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/state/app", s.GetAppState).Methods("GET")
	r.HandleFunc("/state/window", s.GetWindowState).Methods("GET")
	r.HandleFunc("/state/window/tabs/{index:[0-9]+}", s.GetTab).Methods("GET")
	r.HandleFunc("/logs", s.GetLogs).Methods("GET")
	r.HandleFunc("/healthz", s.Health).Methods("GET")

	return r
}

// Serve listens on addr until ctx is done.
func (s *Server) Serve(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.serve(ctx, ln)
}

func (s *Server) serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logging.Info(subsystem, "Listening on http://%s", ln.Addr())
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// GetAppState handles GET /state/app
func (s *Server) GetAppState(w http.ResponseWriter, r *http.Request) {
	writeRaw(w, s.app.Raw())
}

// GetWindowState handles GET /state/window
func (s *Server) GetWindowState(w http.ResponseWriter, r *http.Request) {
	writeRaw(w, s.window.Raw())
}

// GetTab handles GET /state/window/tabs/{index}
func (s *Server) GetTab(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil {
		http.Error(w, "Invalid tab index", http.StatusBadRequest)
		return
	}
	win, ok := s.window.Snapshot()
	if !ok {
		http.Error(w, "No state committed yet", http.StatusServiceUnavailable)
		return
	}
	if index >= win.Tabs.Len() {
		http.Error(w, "Tab not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, win.Tabs.Browsers[index])
}

type logsResponse struct {
	Lines []string `json:"lines"`
	Next  int      `json:"next"`
}

// GetLogs handles GET /logs?since=N
func (s *Server) GetLogs(w http.ResponseWriter, r *http.Request) {
	since := 0
	if v := r.URL.Query().Get("since"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			http.Error(w, "Invalid since parameter", http.StatusBadRequest)
			return
		}
		since = n
	}
	resp := logsResponse{Lines: []string{}}
	if s.logs != nil {
		lines, next := s.logs.Since(since)
		if lines != nil {
			resp.Lines = lines
		}
		resp.Next = next
	}
	writeJSON(w, http.StatusOK, resp)
}

type queueHealth struct {
	Name  string      `json:"name"`
	Stats queue.Stats `json:"stats"`
}

type healthResponse struct {
	Status        string        `json:"status"`
	Uptime        string        `json:"uptime"`
	AppVersion    uint64        `json:"app_version"`
	WindowVersion uint64        `json:"window_version"`
	UpdatedAt     time.Time     `json:"updated_at"`
	Queues        []queueHealth `json:"queues"`
}

// Health handles GET /healthz. The status is "starting" until the first
// commit.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status:        "ok",
		Uptime:        time.Since(s.started).Round(time.Second).String(),
		AppVersion:    s.app.Version(),
		WindowVersion: s.window.Version(),
		UpdatedAt:     s.window.UpdatedAt(),
		Queues:        make([]queueHealth, 0, len(s.queues)),
	}
	if resp.WindowVersion == 0 {
		resp.Status = "starting"
	}
	for _, q := range s.queues {
		resp.Queues = append(resp.Queues, queueHealth{Name: q.Name(), Stats: q.Stats()})
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeRaw(w http.ResponseWriter, data []byte) {
	if data == nil {
		http.Error(w, "No state committed yet", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(data)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

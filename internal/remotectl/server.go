// Package remotectl lets MCP clients drive the shell's tabs. Reads come from
// the last committed window state; changes are injected as window commands
// and applied by the pump on its next tick, exactly as if typed.
package remotectl

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/mark3labs/mcp-go/server"

	"browsershell/internal/model"
	"browsershell/internal/platform"
	"browsershell/internal/state"
	"browsershell/pkg/logging"
)

const subsystem = "RemoteControl"

// Injector accepts window events from outside the pump goroutine.
type Injector interface {
	Push(ev platform.WindowEvent) bool
}

// Server exposes the tab tools over SSE.
type Server struct {
	mcp    *server.MCPServer
	inject Injector
	window *state.Store[model.WindowState]
}

// New creates the server and registers its tools.
func New(inject Injector, window *state.Store[model.WindowState], version string) *Server {
	s := &Server{
		mcp: server.NewMCPServer(
			"browsershell",
			version,
			server.WithToolCapabilities(false),
		),
		inject: inject,
		window: window,
	}
	s.mcp.AddTools(s.tools()...)
	return s
}

// MCP returns the underlying MCP server.
func (s *Server) MCP() *server.MCPServer {
	return s.mcp
}

// Serve runs the SSE transport on host:port until ctx is done.
func (s *Server) Serve(ctx context.Context, host string, port int) error {
	addr := fmt.Sprintf("%s:%d", host, port)
	sse := server.NewSSEServer(
		s.mcp,
		server.WithBaseURL("http://"+addr),
		server.WithSSEEndpoint("/sse"),
		server.WithMessageEndpoint("/message"),
		server.WithKeepAlive(true),
		server.WithKeepAliveInterval(30*time.Second),
	)

	errCh := make(chan error, 1)
	go func() {
		logging.Info(subsystem, "Starting MCP server on %s", addr)
		errCh <- sse.Start(addr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := sse.Shutdown(shutdownCtx); err != nil {
			logging.Warn(subsystem, "Shutting down MCP server: %v", err)
		}
		return nil
	}
}

// push injects commands in order. They are applied in the same tick.
func (s *Server) push(cmds ...platform.WindowCommand) error {
	for _, c := range cmds {
		if !s.inject.Push(platform.DoCommand{Command: c}) {
			return fmt.Errorf("window queue is full, dropped %T", c)
		}
	}
	return nil
}

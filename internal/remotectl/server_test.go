package remotectl

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"browsershell/internal/model"
	"browsershell/internal/platform"
	"browsershell/internal/state"
	"browsershell/internal/tabs"
)

type recordingInjector struct {
	events []platform.WindowEvent
	full   bool
}

func (r *recordingInjector) Push(ev platform.WindowEvent) bool {
	if r.full {
		return false
	}
	r.events = append(r.events, ev)
	return true
}

func (r *recordingInjector) commands() []platform.WindowCommand {
	var out []platform.WindowCommand
	for _, ev := range r.events {
		if dc, ok := ev.(platform.DoCommand); ok {
			out = append(out, dc.Command)
		}
	}
	return out
}

func newTestServer(t *testing.T, n int) (*Server, *recordingInjector) {
	t.Helper()
	store := &state.Store[model.WindowState]{}
	if n > 0 {
		w := model.NewWindowState()
		for i := 0; i < n; i++ {
			b := tabs.NewBrowser(tabs.BrowserID("b" + string(rune('1'+i))))
			b.URL = tabs.StringPtr("https://example.org/")
			require.NoError(t, w.Tabs.AppendNew(b))
		}
		require.NoError(t, store.Publish(&w))
	}
	inj := &recordingInjector{}
	return New(inj, store, "test"), inj
}

func call(t *testing.T, s *Server, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	var req mcp.CallToolRequest
	req.Params.Name = name
	req.Params.Arguments = args

	handlers := map[string]func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error){
		"tabs_list":  s.handleTabsList,
		"tab_open":   s.handleTabOpen,
		"tab_close":  s.handleTabClose,
		"tab_select": s.handleTabSelect,
		"navigate":   s.handleNavigate,
	}
	h, ok := handlers[name]
	require.True(t, ok, name)
	res, err := h(context.Background(), req)
	require.NoError(t, err)
	return res
}

func text(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	tc, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return tc.Text
}

func TestToolsRegistered(t *testing.T) {
	s, _ := newTestServer(t, 1)
	var names []string
	for _, tool := range s.tools() {
		names = append(names, tool.Tool.Name)
	}
	assert.ElementsMatch(t, []string{"tabs_list", "tab_open", "tab_close", "tab_select", "navigate"}, names)
}

func TestTabsList(t *testing.T) {
	s, _ := newTestServer(t, 2)
	res := call(t, s, "tabs_list", nil)
	require.False(t, res.IsError)

	var list []tabInfo
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &list))
	require.Len(t, list, 2)
	assert.False(t, list[0].Foreground)
	assert.True(t, list[1].Foreground)
	assert.Equal(t, "b2", list[1].ID)
	assert.Equal(t, "https://example.org/", list[0].URL)
}

func TestTabsListBeforeRender(t *testing.T) {
	s, _ := newTestServer(t, 0)
	assert.True(t, call(t, s, "tabs_list", nil).IsError)
}

func TestTabOpen(t *testing.T) {
	s, inj := newTestServer(t, 1)
	require.False(t, call(t, s, "tab_open", nil).IsError)
	require.False(t, call(t, s, "tab_open", map[string]any{"url": "example.com"}).IsError)

	assert.Equal(t, []platform.WindowCommand{
		platform.NewTab{},
		platform.NewTab{},
		platform.Load{Request: "example.com"},
	}, inj.commands())
}

func TestTabClose(t *testing.T) {
	s, inj := newTestServer(t, 3)
	require.False(t, call(t, s, "tab_close", nil).IsError)
	require.False(t, call(t, s, "tab_close", map[string]any{"index": float64(0)}).IsError)
	assert.True(t, call(t, s, "tab_close", map[string]any{"index": float64(9)}).IsError)

	assert.Equal(t, []platform.WindowCommand{
		platform.CloseTab{},
		platform.SelectTab{Index: 0},
		platform.CloseTab{},
	}, inj.commands())
}

func TestTabCloseLastTab(t *testing.T) {
	s, inj := newTestServer(t, 1)
	res := call(t, s, "tab_close", nil)
	assert.True(t, res.IsError)
	assert.Contains(t, text(t, res), "last tab")
	assert.Empty(t, inj.events)
}

func TestTabSelect(t *testing.T) {
	s, inj := newTestServer(t, 2)
	require.False(t, call(t, s, "tab_select", map[string]any{"index": float64(0)}).IsError)
	assert.True(t, call(t, s, "tab_select", map[string]any{"index": float64(2)}).IsError)
	assert.True(t, call(t, s, "tab_select", nil).IsError)
	assert.Equal(t, []platform.WindowCommand{platform.SelectTab{Index: 0}}, inj.commands())
}

func TestTabSelectAndCloseByID(t *testing.T) {
	s, inj := newTestServer(t, 3)
	require.False(t, call(t, s, "tab_select", map[string]any{"id": "b2"}).IsError)
	// id wins over index
	require.False(t, call(t, s, "tab_close", map[string]any{"id": "b1", "index": float64(2)}).IsError)

	res := call(t, s, "tab_select", map[string]any{"id": "b9"})
	assert.True(t, res.IsError)
	assert.Contains(t, text(t, res), `no tab with id "b9"`)

	assert.Equal(t, []platform.WindowCommand{
		platform.SelectTab{Index: 1},
		platform.SelectTab{Index: 0},
		platform.CloseTab{},
	}, inj.commands())
}

func TestNavigate(t *testing.T) {
	s, inj := newTestServer(t, 1)
	assert.True(t, call(t, s, "navigate", nil).IsError)

	res := call(t, s, "navigate", map[string]any{"url": "https://go.dev/"})
	require.False(t, res.IsError)
	assert.Equal(t, "Loading https://go.dev/", text(t, res))
	assert.Equal(t, []platform.WindowCommand{platform.Load{Request: "https://go.dev/"}}, inj.commands())

	inj.full = true
	assert.True(t, call(t, s, "navigate", map[string]any{"url": "x"}).IsError)
}

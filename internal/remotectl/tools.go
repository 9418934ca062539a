package remotectl

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"browsershell/internal/platform"
	"browsershell/internal/tabs"
)

func (s *Server) tools() []server.ServerTool {
	return []server.ServerTool{
		{
			Tool: mcp.NewTool("tabs_list",
				mcp.WithDescription("List open tabs with their URL, title and loading state"),
			),
			Handler: s.handleTabsList,
		},
		{
			Tool: mcp.NewTool("tab_open",
				mcp.WithDescription("Open a new tab and bring it to the front"),
				mcp.WithString("url",
					mcp.Description("URL or search text to load in the new tab"),
				),
			),
			Handler: s.handleTabOpen,
		},
		{
			Tool: mcp.NewTool("tab_close",
				mcp.WithDescription("Close a tab. The last tab cannot be closed"),
				mcp.WithString("id",
					mcp.Description("Tab id from tabs_list"),
				),
				mcp.WithNumber("index",
					mcp.Description("Tab index, used when no id is given. Defaults to the foreground tab"),
				),
			),
			Handler: s.handleTabClose,
		},
		{
			Tool: mcp.NewTool("tab_select",
				mcp.WithDescription("Bring a tab to the front, named by id or index"),
				mcp.WithString("id",
					mcp.Description("Tab id from tabs_list"),
				),
				mcp.WithNumber("index",
					mcp.Description("Tab index, used when no id is given"),
				),
			),
			Handler: s.handleTabSelect,
		},
		{
			Tool: mcp.NewTool("navigate",
				mcp.WithDescription("Load a URL or search text in the foreground tab"),
				mcp.WithString("url",
					mcp.Required(),
					mcp.Description("URL or search text"),
				),
			),
			Handler: s.handleNavigate,
		},
	}
}

type tabInfo struct {
	Index      int    `json:"index"`
	ID         string `json:"id"`
	URL        string `json:"url,omitempty"`
	Title      string `json:"title"`
	Loading    bool   `json:"loading"`
	Foreground bool   `json:"foreground"`
}

func (s *Server) handleTabsList(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	win, ok := s.window.Snapshot()
	if !ok {
		return mcp.NewToolResultError("Shell has not rendered yet"), nil
	}

	list := make([]tabInfo, 0, win.Tabs.Len())
	for i, b := range win.Tabs.Browsers {
		info := tabInfo{
			Index:      i,
			ID:         string(b.ID),
			Title:      b.DisplayTitle(),
			Loading:    b.IsLoading,
			Foreground: win.Tabs.Current != nil && *win.Tabs.Current == i,
		}
		if b.URL != nil {
			info.URL = *b.URL
		}
		list = append(list, info)
	}

	jsonData, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to format tabs: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (s *Server) handleTabOpen(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cmds := []platform.WindowCommand{platform.NewTab{}}
	if url := request.GetString("url", ""); url != "" {
		cmds = append(cmds, platform.Load{Request: url})
	}
	if err := s.push(cmds...); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText("Tab opened"), nil
}

func (s *Server) handleTabClose(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	win, ok := s.window.Snapshot()
	if !ok {
		return mcp.NewToolResultError("Shell has not rendered yet"), nil
	}
	if !win.Tabs.HasMoreThanOne() {
		return mcp.NewToolResultError("Cannot close the last tab"), nil
	}

	var cmds []platform.WindowCommand
	index, given, err := tabIndex(&win.Tabs, request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if given {
		cmds = append(cmds, platform.SelectTab{Index: index})
	}
	cmds = append(cmds, platform.CloseTab{})

	if err := s.push(cmds...); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText("Tab closed"), nil
}

func (s *Server) handleTabSelect(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	win, ok := s.window.Snapshot()
	if !ok {
		return mcp.NewToolResultError("Shell has not rendered yet"), nil
	}
	index, given, err := tabIndex(&win.Tabs, request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if !given {
		return mcp.NewToolResultError("an id or index is required"), nil
	}
	if err := s.push(platform.SelectTab{Index: index}); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Selected tab %d", index)), nil
}

// tabIndex resolves the tab named by the "id" or "index" argument. given is
// false when the request names no tab.
func tabIndex(c *tabs.Collection, request mcp.CallToolRequest) (index int, given bool, err error) {
	args := request.GetArguments()
	if _, ok := args["id"]; ok {
		id, err := request.RequireString("id")
		if err != nil {
			return 0, true, err
		}
		i := c.IndexOf(tabs.BrowserID(id))
		if i < 0 {
			return 0, true, fmt.Errorf("no tab with id %q", id)
		}
		return i, true, nil
	}
	if _, ok := args["index"]; ok {
		i, err := request.RequireInt("index")
		if err != nil {
			return 0, true, err
		}
		if !c.CanSelectNth(i) {
			return 0, true, fmt.Errorf("no tab at index %d", i)
		}
		return i, true, nil
	}
	return 0, false, nil
}

func (s *Server) handleNavigate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	url, err := request.RequireString("url")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.push(platform.Load{Request: url}); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText("Loading " + url), nil
}

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"browsershell/internal/model"
	"browsershell/internal/tabs"
)

func (m *Model) View() string {
	if m.err != nil {
		return errorStyle.Render("Error: "+m.err.Error()) + "\n"
	}
	if m.quitting {
		return ""
	}
	if m.width == 0 {
		return "Initializing..."
	}

	top := lipgloss.JoinVertical(lipgloss.Left,
		renderTabBar(m.host.win.Tabs, m.width),
		m.renderUrlbar(),
	)
	bottom := lipgloss.JoinVertical(lipgloss.Left,
		renderStatus(m.host.win, m.width),
		m.renderHelp(),
	)

	pageHeight := m.height - lipgloss.Height(top) - lipgloss.Height(bottom)
	var logs string
	if m.host.win.LogsVisible {
		logs = m.renderLogPanel()
		pageHeight -= lipgloss.Height(logs)
	}

	parts := []string{top, m.renderPage(max(pageHeight, 0))}
	if logs != "" {
		parts = append(parts, logs)
	}
	parts = append(parts, bottom)
	return appStyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

// renderTabBar draws one cell per tab. Titles shrink to fit the width, down
// to minTabWidth; tabs that still do not fit are summarized.
func renderTabBar(c tabs.Collection, width int) string {
	n := len(c.Browsers)
	if n == 0 || width <= 0 {
		return tabBarStyle.Width(max(width, 0)).Render("")
	}
	// padding on both sides of each cell
	cell := min(max(width/n-2, minTabWidth), maxTabWidth)

	var b strings.Builder
	used := 0
	for i, br := range c.Browsers {
		label := tabLabel(i, br, cell)
		style := tabStyle
		if !br.IsBackground {
			style = activeTabStyle
		}
		rendered := style.Render(label)
		w := lipgloss.Width(rendered)
		rest := fmt.Sprintf(" +%d", n-i)
		reserve := 0
		if i < n-1 {
			reserve = runewidth.StringWidth(rest)
		}
		if used+w > width-reserve {
			if used+runewidth.StringWidth(rest) <= width {
				b.WriteString(rest)
			}
			break
		}
		b.WriteString(rendered)
		used += w
	}
	return tabBarStyle.Width(width).MaxWidth(width).Render(b.String())
}

func tabLabel(i int, br tabs.Browser, width int) string {
	prefix := fmt.Sprintf("%d ", i+1)
	if br.IsLoading {
		prefix = IconLoading + " "
	}
	return truncate(prefix+br.DisplayTitle(), width)
}

// truncate cuts s to width terminal cells, marking the cut with an ellipsis.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width-1, "") + "…"
}

func (m *Model) renderUrlbar() string {
	fg := m.host.foreground()
	if fg == nil {
		return urlbarStyle.Render("")
	}
	nav := func(icon string, enabled bool) string {
		if enabled {
			return navEnabledStyle.Render(icon)
		}
		return navDisabledStyle.Render(icon)
	}
	buttons := nav(IconBack, fg.CanGoBack) + " " + nav(IconForward, fg.CanGoForward) + " "

	if fg.UrlbarFocused {
		line := buttons + m.urlbar.View()
		if m.suggestion != "" {
			line += " " + suggestionStyle.Render("→ "+truncate(m.suggestion, m.width/3))
		}
		return focusedUrlbarStyle.MaxWidth(m.width).Render(line)
	}

	addr := derefOr(fg.URL, "")
	if fg.Zoom != 1.0 {
		addr += fmt.Sprintf("  %d%%", int(fg.Zoom*100+0.5))
	}
	return urlbarStyle.MaxWidth(m.width).Render(buttons + truncate(addr, m.width-8))
}

// renderPage stands in for the engine surface: the terminal cannot show the
// page, so it shows what the shell knows about it.
func (m *Model) renderPage(height int) string {
	if height <= 0 {
		return ""
	}
	w := m.host.win
	width := m.width

	var sidebar string
	if w.SidebarIsOpen {
		sidebar = renderSidebar(w.Tabs, height)
		width -= lipgloss.Width(sidebar)
	}

	var body string
	switch {
	case w.OptionsOpen:
		body = renderOptions(w)
	default:
		body = m.renderPageInfo(width - pageStyle.GetHorizontalFrameSize())
	}

	frame := pageStyle.
		Width(max(width-pageStyle.GetHorizontalBorderSize(), 0)).
		Height(max(height-pageStyle.GetVerticalFrameSize(), 0)).
		MaxHeight(height)
	page := frame.Render(body)
	if sidebar == "" {
		return page
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, sidebar, page)
}

func (m *Model) renderPageInfo(width int) string {
	fg := m.host.foreground()
	if fg == nil {
		return ""
	}
	lines := []string{
		pageTitleStyle.Render(truncate(fg.DisplayTitle(), width)),
		pageURLStyle.Render(truncate(derefOr(fg.URL, "about:blank"), width)),
		"",
	}
	if fg.IsLoading {
		lines = append(lines, pageInfoStyle.Render(IconLoading+" Loading…"))
	}
	g := m.host.geometry
	lines = append(lines, pageInfoStyle.Render(fmt.Sprintf("Zoom %d%%  •  %dx%d  •  cursor %s",
		int(fg.Zoom*100+0.5), g.Width, g.Height, m.host.app.Cursor)))
	if m.host.fullscreen {
		lines = append(lines, pageInfoStyle.Render("Fullscreen"))
	}
	return strings.Join(lines, "\n")
}

func renderSidebar(c tabs.Collection, height int) string {
	inner := sidebarWidth - sidebarStyle.GetHorizontalFrameSize()
	lines := make([]string, 0, len(c.Browsers))
	for i, br := range c.Browsers {
		label := tabLabel(i, br, inner)
		if !br.IsBackground {
			label = pageTitleStyle.Render(label)
		}
		lines = append(lines, label)
	}
	return sidebarStyle.Width(sidebarWidth - sidebarStyle.GetHorizontalBorderSize()).
		Height(height).
		MaxHeight(height).
		Render(strings.Join(lines, "\n"))
}

func renderOptions(w model.WindowState) string {
	tick := func(on bool) string {
		if on {
			return IconCheck
		}
		return IconUnticked
	}
	d := w.DebugOptions
	rows := []string{
		optionsTitleStyle.Render("Options  (esc to close)"),
		fmt.Sprintf("%s Show logs", tick(w.LogsVisible)),
		fmt.Sprintf("%s Sidebar", tick(w.SidebarIsOpen)),
		fmt.Sprintf("%s WebRender profiler", tick(d.WRProfiler)),
		fmt.Sprintf("%s Texture cache debug", tick(d.WRTextureCacheDebug)),
		fmt.Sprintf("%s Render target debug", tick(d.WRRenderTargetDebug)),
	}
	return optionsStyle.Render(strings.Join(rows, "\n"))
}

func renderStatus(w model.WindowState, width int) string {
	text := ""
	if w.Status != nil {
		text = *w.Status
	}
	inner := width - statusBarStyle.GetHorizontalFrameSize()
	return statusBarStyle.Width(max(width, 0)).MaxWidth(max(width, 0)).Render(truncate(text, inner))
}

func (m *Model) renderHelp() string {
	if fg := m.host.foreground(); fg != nil && fg.UrlbarFocused {
		return m.help.View(m.urlbarKeys)
	}
	return m.help.View(m.keys)
}

func (m *Model) renderLogPanel() string {
	title := logPanelTitleStyle.Render("Log")
	return logPanelStyle.Width(m.width).Render(lipgloss.JoinVertical(lipgloss.Left, title, m.logs.View()))
}

// prepareLogContent truncates long lines to avoid viewport wrapping and
// colors them by level.
func prepareLogContent(lines []string, maxWidth int) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		if maxWidth > 0 {
			line = truncate(line, maxWidth)
		}
		out[i] = styleLogLine(line)
	}
	return strings.Join(out, "\n")
}

// styleLogLine colors a sink line by the level column that follows the
// timestamp.
func styleLogLine(l string) string {
	fields := strings.Fields(l)
	if len(fields) < 2 {
		return logInfoStyle.Render(l)
	}
	switch fields[1] {
	case "ERROR":
		return logErrorStyle.Render(l)
	case "WARN":
		return logWarnStyle.Render(l)
	case "DEBUG":
		return logDebugStyle.Render(l)
	default:
		return logInfoStyle.Render(l)
	}
}

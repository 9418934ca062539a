package tui

import (
	"fmt"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"

	"browsershell/internal/model"
	"browsershell/internal/tabs"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcd…", truncate("abcdefgh", 5))
	assert.Equal(t, "", truncate("abc", 0))

	// wide runes count double
	got := truncate("日本語のタイトル", 7)
	assert.LessOrEqual(t, runewidth.StringWidth(got), 7)
	assert.True(t, strings.HasSuffix(got, "…"))
}

func collection(n int) tabs.Collection {
	c := tabs.Collection{}
	for i := 0; i < n; i++ {
		b := tabs.NewBrowser(tabs.BrowserID(fmt.Sprintf("b%d", i)))
		b.Title = tabs.StringPtr(fmt.Sprintf("Page %d", i+1))
		_ = c.AppendNew(b)
	}
	return c
}

func TestTabBarFitsWidth(t *testing.T) {
	bar := renderTabBar(collection(3), 80)
	assert.Contains(t, bar, "1 Page 1")
	assert.Contains(t, bar, "3 Page 3")
	assert.LessOrEqual(t, lipgloss.Width(bar), 80)
}

func TestTabBarSummarizesOverflow(t *testing.T) {
	bar := renderTabBar(collection(30), 60)
	assert.Contains(t, bar, "+")
	assert.NotContains(t, bar, "Page 30")
	assert.LessOrEqual(t, lipgloss.Width(bar), 60)
}

func TestTabLabelShowsLoading(t *testing.T) {
	b := tabs.NewBrowser("b1")
	b.IsLoading = true
	assert.True(t, strings.HasPrefix(tabLabel(0, b, 20), IconLoading))
	assert.Equal(t, "2 New Tab", tabLabel(1, tabs.NewBrowser("b2"), 20))
}

func TestPrepareLogContentTruncates(t *testing.T) {
	lines := []string{
		"12:00:00.000 INFO  [Pump] " + strings.Repeat("x", 100),
		"12:00:00.001 ERROR [Pump] failed",
	}
	out := strings.Split(prepareLogContent(lines, 40), "\n")
	assert.Len(t, out, 2)
	for _, l := range out {
		assert.LessOrEqual(t, lipgloss.Width(l), 40)
	}
	assert.Contains(t, out[1], "failed")
}

func TestOptionsListDebugState(t *testing.T) {
	w := model.NewWindowState()
	w.DebugOptions.WRProfiler = true
	out := renderOptions(w)
	assert.Contains(t, out, IconCheck+" WebRender profiler")
	assert.Contains(t, out, IconUnticked+" Show logs")
}

func TestStatusShowsText(t *testing.T) {
	w := model.NewWindowState()
	w.Status = tabs.StringPtr("Export failed: disk full")
	assert.Contains(t, renderStatus(w, 80), "Export failed: disk full")
}

package tui

import "github.com/charmbracelet/lipgloss"

// Layout of the chrome around the page, in terminal rows.
const (
	// tab bar and location bar
	chromeTop = 2
	// status line and help line
	chromeBottom = 2

	maxTabWidth  = 24
	minTabWidth  = 8
	sidebarWidth = 28
	logPanelRows = 8
)

// Icons used in the chrome.
const (
	IconLoading  = "⟳"
	IconBack     = "◀"
	IconForward  = "▶"
	IconClose    = "×"
	IconSearch   = "⌕"
	IconCheck    = "✔"
	IconUnticked = "·"
)

// Styles for the chrome, defined using the lipgloss library. Colors adapt to
// the background set from the dark theme flag.
var (
	appStyle = lipgloss.NewStyle().Margin(0, 0)

	tabStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.AdaptiveColor{Light: "#404040", Dark: "#A0A0A0"}).
			Background(lipgloss.AdaptiveColor{Light: "#D0D0D0", Dark: "#303030"})

	activeTabStyle = tabStyle.
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#FFFFFF"}).
			Background(lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#1E293B"})

	tabBarStyle = lipgloss.NewStyle().
			Background(lipgloss.AdaptiveColor{Light: "#D0D0D0", Dark: "#303030"})

	urlbarStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#FFFFFF"})

	// focusedUrlbarStyle underlines the bar while it takes input.
	focusedUrlbarStyle = urlbarStyle.
				Foreground(lipgloss.AdaptiveColor{Light: "#0000CC", Dark: "#58A6FF"})

	navEnabledStyle  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#FFFFFF"})
	navDisabledStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#B0B0B0", Dark: "#505050"})

	suggestionStyle = lipgloss.NewStyle().
			Faint(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#606060", Dark: "#8B949E"})

	pageStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.AdaptiveColor{Light: "#A0A0A0", Dark: "#505050"}).
			Padding(0, 1)

	pageTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#FFFFFF"})
	pageURLStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#0000CC", Dark: "#58A6FF"})
	pageInfoStyle  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#606060", Dark: "#8B949E"})

	sidebarStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, true, false, false).
			BorderForeground(lipgloss.AdaptiveColor{Light: "#A0A0A0", Dark: "#505050"}).
			Padding(0, 1)

	optionsStyle = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(lipgloss.AdaptiveColor{Light: "#0000CC", Dark: "#58A6FF"}).
			Padding(0, 1)

	optionsTitleStyle = lipgloss.NewStyle().Bold(true).MarginBottom(1)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#FFFFFF"}).
			Background(lipgloss.AdaptiveColor{Light: "#E0E0E0", Dark: "#2A2A3A"}).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#D32F2F", Dark: "#FF6B6B"})

	logPanelStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), true, false, false, false).
			BorderForeground(lipgloss.AdaptiveColor{Light: "#606060", Dark: "#A0A0A0"})

	logPanelTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#404040", Dark: "#C0C0C0"})

	logInfoStyle  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#E0E0E0"})
	logWarnStyle  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#E65100", Dark: "#FFB74D"})
	logErrorStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#D32F2F", Dark: "#FF6B6B"})
	logDebugStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#757575", Dark: "#9E9E9E"})
)

// SetDarkTheme picks the adaptive color variants for a dark or light
// terminal background.
func SetDarkTheme(dark bool) {
	lipgloss.SetHasDarkBackground(dark)
}

package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#5A56E0")).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))

	rowStyle = lipgloss.NewStyle().
			PaddingLeft(2)

	focusedRowStyle = lipgloss.NewStyle().
			PaddingLeft(1).
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("#5A56E0"))

	readyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575"))
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#E0A526"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F87")).Bold(true)
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575"))
	hintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#626262"))
)

package tui

import "github.com/charmbracelet/lipgloss"

// Palette echoes the caption colors of the rendered videos: amber accent
// on a dark background.
const (
	colorAccent  = "#FFDF00"
	colorSuccess = "#04B575"
	colorError   = "#FF5555"
	colorMuted   = "#8A8A8A"
)

var (
	TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colorAccent)).
		MarginTop(1).
		MarginBottom(1)

	StatusStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colorSuccess))

	ErrorStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colorError))

	InfoStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colorMuted))

	BoxStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(colorAccent)).
		Padding(1, 2)

	HighlightStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#1A1A1A")).
		Background(lipgloss.Color(colorAccent)).
		Padding(0, 1)
)

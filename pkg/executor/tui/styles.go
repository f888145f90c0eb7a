package tui

import "github.com/charmbracelet/lipgloss"

// Color Palette
// This is the single source of truth for all TUI colors.
var (
	accentBlue  = lipgloss.Color("#7AA2F7") // primary accent
	mintGreen   = lipgloss.Color("#A8E6CF") // success states
	softRed     = lipgloss.Color("#F7768E") // error states
	amberYellow = lipgloss.Color("#E0AF68") // busy/progress states
	mutedGray   = lipgloss.Color("#6B7280") // secondary text
	brightWhite = lipgloss.Color("#F9FAFB") // primary text
)

// Common Styles
var (
	headerStyle = lipgloss.NewStyle().
			Foreground(accentBlue).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(amberYellow)

	successStyle = lipgloss.NewStyle().
			Foreground(mintGreen)

	errorStyle = lipgloss.NewStyle().
			Foreground(softRed)

	logStyle = lipgloss.NewStyle().
			Foreground(brightWhite)

	helpStyle = lipgloss.NewStyle().
			Foreground(mutedGray)

	labelStyle = lipgloss.NewStyle().
			Foreground(accentBlue)

	inputBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accentBlue).
			Padding(0, 1)
)

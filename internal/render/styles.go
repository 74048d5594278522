package render

import "github.com/charmbracelet/lipgloss"

// cellW is the visual width of one operation column.
const cellW = 9

// Lipgloss styles for the terminal circuit view.
var (
	qubitLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7dcfff"))

	wireStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#565f89"))

	gateStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#73daca"))

	measureStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#e0af68"))

	sliceStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ff9e64"))

	legendStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#c0caf5"))
)

package tequila

import "github.com/charmbracelet/lipgloss"

// Layout constants
const (
	labelVisualW = 7 // visual width of the qubit label area
)

// Lipgloss styles used by the circuit renderer.
var (
	qubitLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7dcfff"))

	gateStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#73daca"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#565f89"))
)

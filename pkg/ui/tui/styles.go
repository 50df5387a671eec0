package tui

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	// Desert palette
	sky   = lipgloss.Color("#7FB3D5")
	sage  = lipgloss.Color("#9CBF8A")
	amber = lipgloss.Color("#E0A458")
	red   = lipgloss.Color("#D9534F")
	sand  = lipgloss.Color("#E8D8B0")
	slate = lipgloss.Color("#A0A4AB")
	dusk  = lipgloss.Color("#3B3A4A")

	headerStyle = lipgloss.NewStyle().
			Foreground(sand).
			Bold(true).
			Padding(1, 0)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(amber).
			Padding(1, 2)

	titleStyle = lipgloss.NewStyle().
			Background(amber).
			Foreground(dusk).
			Bold(true).
			Padding(0, 1)

	statsLabelStyle = lipgloss.NewStyle().
			Foreground(sky).
			Bold(true)

	statsValueStyle = lipgloss.NewStyle().
			Foreground(sand)

	successStyle = lipgloss.NewStyle().
			Foreground(sage).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(red).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(amber).
			Bold(true)

	logTimestampStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#666666"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262")).
			Padding(1, 0, 0, 2)
)

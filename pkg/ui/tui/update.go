package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"srer/pkg/report"
)

// StartedMsg is sent when a pipeline run begins
type StartedMsg struct {
	Pipeline string
	Total    int
}

// OutcomeMsg carries one recorded outcome
type OutcomeMsg struct {
	Outcome report.Outcome
}

// FinishedMsg is sent when the run is over
type FinishedMsg struct{}

// Init starts the spinner
func (m *Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update handles all messages and updates the model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if w := msg.Width/2 - 8; w > 10 {
			m.progress.Width = w
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case StartedMsg:
		m.Start(msg.Pipeline, msg.Total)
		return m, nil

	case OutcomeMsg:
		m.Record(msg.Outcome)
		return m, nil

	case FinishedMsg:
		m.finished = true
		return m, tea.Quit
	}

	return m, nil
}

// handleKeyPress handles keyboard input
func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "Q", "ctrl+c":
		if !m.finished && m.onQuit != nil {
			m.onQuit()
		}
		return m, tea.Quit

	case "?":
		m.showHelp = !m.showHelp
		return m, nil

	case "ctrl+l":
		m.logMessages = []LogMessage{}
		return m, nil
	}

	return m, nil
}

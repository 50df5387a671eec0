package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"srer/pkg/report"
)

// TUI shows live pipeline progress in the terminal. It implements
// report.Observer so a Scraper or Downloader can feed it directly.
type TUI struct {
	program *tea.Program
	model   *Model
}

// NewTUI creates a TUI. onQuit is called when the user quits before the
// pipeline finishes and may be nil.
func NewTUI(onQuit func()) *TUI {
	model := NewModel(onQuit)
	program := tea.NewProgram(&model, tea.WithAltScreen())

	return &TUI{
		program: program,
		model:   &model,
	}
}

// Run blocks until the pipeline finishes or the user quits
func (t *TUI) Run() error {
	_, err := t.program.Run()
	return err
}

// Stop stops the TUI
func (t *TUI) Stop() {
	t.program.Quit()
}

// Send sends a message to the TUI
func (t *TUI) Send(msg tea.Msg) {
	if t.program != nil {
		t.program.Send(msg)
	}
}

func (t *TUI) Started(pipeline string, total int) {
	t.Send(StartedMsg{Pipeline: pipeline, Total: total})
}

func (t *TUI) Recorded(o report.Outcome) {
	t.Send(OutcomeMsg{Outcome: o})
}

func (t *TUI) Finished(*report.Report) {
	t.Send(FinishedMsg{})
}

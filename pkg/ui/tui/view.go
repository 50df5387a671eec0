package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"srer/pkg/report"
)

// View renders the TUI
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	width := (m.width - 4) / 2

	main := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.renderProgressPanel(width),
		"  ",
		m.renderLogsPanel(width),
	)

	sections := []string{m.renderHeader(), main}
	if m.showHelp {
		sections = append(sections, m.renderHelp())
	} else {
		sections = append(sections, helpStyle.Render("Press ? for help"))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) renderHeader() string {
	name := m.pipeline
	if name == "" {
		name = "waiting"
	}
	status := m.spinner.View()
	if m.finished {
		status = successStyle.Render("done")
	}
	return headerStyle.Render(fmt.Sprintf("SRER repeat photography  %s  %s", name, status))
}

func (m *Model) renderProgressPanel(width int) string {
	title := titleStyle.Render(" PROGRESS ")

	lines := []string{
		m.progress.ViewAs(m.Percent()),
		"",
		stat("Handled:", fmt.Sprintf("%d / %d", m.done, m.total)),
		stat("Current station:", m.current),
		stat("Elapsed:", formatDuration(time.Since(m.startTime))),
		"",
		successStyle.Render(fmt.Sprintf("success %d", m.Count(report.StatusSuccess))) + "  " +
			warningStyle.Render(fmt.Sprintf("skipped %d", m.Count(report.StatusSkipped))) + "  " +
			errorStyle.Render(fmt.Sprintf("failed %d", m.Count(report.StatusFailed))),
	}
	if m.bytes > 0 {
		lines = append(lines, stat("Written:", FormatBytes(m.bytes)))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return panelStyle.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, title, "", content))
}

func (m *Model) renderLogsPanel(width int) string {
	title := titleStyle.Render(" ACTIVITY ")

	visible := m.height - 14
	if visible < 3 {
		visible = 3
	}

	msgs := m.logMessages
	if len(msgs) > visible {
		msgs = msgs[len(msgs)-visible:]
	}

	var lines []string
	for _, msg := range msgs {
		text := msg.Message
		if limit := width - 16; limit > 3 && len(text) > limit {
			text = text[:limit-3] + "..."
		}
		lines = append(lines, fmt.Sprintf("%s %s",
			logTimestampStyle.Render(msg.Time.Format("15:04:05")),
			lipgloss.NewStyle().Foreground(msg.Color).Render(text),
		))
	}
	if len(lines) == 0 {
		lines = append(lines, logTimestampStyle.Render("no activity yet"))
	}

	content := strings.Join(lines, "\n")
	return panelStyle.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, title, "", content))
}

func (m *Model) renderHelp() string {
	return helpStyle.Render(strings.Join([]string{
		"q / ctrl+c  stop after the current item",
		"ctrl+l      clear activity",
		"?           toggle help",
	}, "\n"))
}

func stat(label, value string) string {
	return fmt.Sprintf("%s %s", statsLabelStyle.Render(label), statsValueStyle.Render(value))
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second
	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}

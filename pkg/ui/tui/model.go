package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
	"srer/pkg/report"
)

// LogMessage is one line of the activity panel
type LogMessage struct {
	Time    time.Time
	Level   string
	Message string
	Color   lipgloss.Color
}

// Model is the bubbletea model of a pipeline run
type Model struct {
	spinner  spinner.Model
	progress progress.Model

	pipeline  string
	total     int
	done      int
	counts    map[report.Status]int
	bytes     int64
	current   string
	startTime time.Time
	finished  bool

	width          int
	height         int
	showHelp       bool
	logMessages    []LogMessage
	maxLogMessages int

	onQuit func()
}

// NewModel creates a new model
func NewModel(onQuit func()) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(sky)

	p := progress.New(progress.WithDefaultGradient())
	p.Width = 40

	return Model{
		spinner:        s,
		progress:       p,
		counts:         make(map[report.Status]int),
		startTime:      time.Now(),
		logMessages:    []LogMessage{},
		maxLogMessages: 50,
		onQuit:         onQuit,
	}
}

// Start resets the counters for a run of total items
func (m *Model) Start(pipeline string, total int) {
	m.pipeline = pipeline
	m.total = total
	m.done = 0
	m.bytes = 0
	m.counts = make(map[report.Status]int)
	m.startTime = time.Now()
	m.AddLogMessage("INFO", fmt.Sprintf("%s: %d items", pipeline, total))
}

// Record counts one outcome and logs it
func (m *Model) Record(o report.Outcome) {
	m.done++
	m.counts[o.Status]++
	m.current = o.StationID.String()

	switch o.Status {
	case report.StatusSuccess:
		if o.Operation == report.OperationDownloadImage {
			m.bytes += o.Records
			m.AddLogMessage("SUCCESS", fmt.Sprintf("%s  %s (%s)", o.StationID, o.Target, FormatBytes(o.Records)))
		} else {
			m.AddLogMessage("SUCCESS", fmt.Sprintf("%s  %d records", o.StationID, o.Records))
		}
	case report.StatusSkipped:
		m.AddLogMessage("WARN", fmt.Sprintf("%s  skipped: %s", o.StationID, o.Reason))
	case report.StatusFailed:
		msg := o.Reason
		if o.Err != nil {
			msg = o.Err.Error()
		}
		m.AddLogMessage("ERROR", fmt.Sprintf("%s  failed: %s", o.StationID, msg))
	}
}

// Percent returns the fraction of items handled, between 0 and 1
func (m *Model) Percent() float64 {
	if m.total == 0 {
		return 0
	}
	return float64(m.done) / float64(m.total)
}

// Count returns how many outcomes had the given status
func (m *Model) Count(status report.Status) int {
	return m.counts[status]
}

// AddLogMessage adds a log message
func (m *Model) AddLogMessage(level, message string) {
	color := slate
	switch level {
	case "ERROR":
		color = red
	case "WARN":
		color = amber
	case "SUCCESS":
		color = sage
	case "INFO":
		color = sky
	}

	m.logMessages = append(m.logMessages, LogMessage{
		Time:    time.Now(),
		Level:   level,
		Message: message,
		Color:   color,
	})

	// Keep only the last N messages
	if len(m.logMessages) > m.maxLogMessages {
		m.logMessages = m.logMessages[len(m.logMessages)-m.maxLogMessages:]
	}
}

// FormatBytes formats bytes to human readable format
func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

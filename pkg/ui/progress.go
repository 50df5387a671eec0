package ui

import (
	"fmt"
	"io"

	"srer/pkg/report"
)

// ProgressPrinter prints one status line per outcome. It implements
// report.Observer and is the plain-terminal alternative to the TUI.
type ProgressPrinter struct {
	w     io.Writer
	total int
	done  int
}

// NewProgressPrinter creates a printer writing to the ui output
func NewProgressPrinter() *ProgressPrinter {
	return &ProgressPrinter{w: output}
}

func (p *ProgressPrinter) Started(pipeline string, total int) {
	p.total = total
	p.done = 0
	fmt.Fprintf(p.w, "%s %s\n", Magenta("["+pipeline+"]"), Dim(fmt.Sprintf("%d items", total)))
}

func (p *ProgressPrinter) Recorded(o report.Outcome) {
	p.done++
	counter := Dim(fmt.Sprintf("[%*d/%d]", len(fmt.Sprint(p.total)), p.done, p.total))

	var status string
	switch o.Status {
	case report.StatusSuccess:
		if o.Operation == report.OperationDownloadImage {
			status = Green(fmt.Sprintf("saved %d bytes", o.Records))
		} else {
			status = Green(fmt.Sprintf("%d records", o.Records))
		}
	case report.StatusSkipped:
		status = Yellow("skipped: " + o.Reason)
	default:
		reason := o.Reason
		if o.Err != nil {
			reason = o.Err.Error()
		}
		status = Red("failed: " + reason)
	}

	fmt.Fprintf(p.w, "%s %s %s\n", counter, Cyan(o.StationID.String()), status)
}

func (p *ProgressPrinter) Finished(rep *report.Report) {
	fmt.Fprintln(p.w)
}

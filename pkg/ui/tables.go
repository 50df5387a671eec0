package ui

import (
	"fmt"
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"srer/pkg/gages"
	"srer/pkg/report"
)

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	if colorEnabled {
		t.SetStyle(table.StyleRounded)
	} else {
		t.SetStyle(table.StyleLight)
	}
	t.Style().Format.Header = text.FormatDefault
	t.Style().Format.Footer = text.FormatDefault
	return t
}

// RenderSummary writes a one-row status summary of rep
func RenderSummary(w io.Writer, rep *report.Report) {
	t := newTable(w)
	t.SetTitle(rep.Pipeline)
	t.AppendHeader(table.Row{"Attempts", "Success", "Skipped", "Failed", "Total", "Elapsed"})
	t.AppendRow(table.Row{
		len(rep.Outcomes),
		rep.Count(report.StatusSuccess),
		rep.Count(report.StatusSkipped),
		rep.Count(report.StatusFailed),
		totalLabel(rep),
		rep.Elapsed().Round(time.Millisecond),
	})
	t.Render()
}

func totalLabel(rep *report.Report) string {
	for _, o := range rep.Outcomes {
		if o.Operation == report.OperationDownloadImage {
			return fmt.Sprintf("%d bytes", rep.Total())
		}
	}
	return fmt.Sprintf("%d records", rep.Total())
}

// RenderProblems lists every skipped and failed outcome of rep. It writes
// nothing when there are none.
func RenderProblems(w io.Writer, rep *report.Report) {
	if rep.Count(report.StatusSkipped)+rep.Count(report.StatusFailed) == 0 {
		return
	}

	t := newTable(w)
	t.AppendHeader(table.Row{"Station", "Status", "Target", "Reason"})
	for _, o := range rep.Outcomes {
		if o.Status == report.StatusSuccess {
			continue
		}
		reason := o.Reason
		if o.Err != nil {
			reason = o.Err.Error()
		}
		t.AppendRow(table.Row{o.StationID, o.Status, o.Target, reason})
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, WidthMax: 60},
		{Number: 4, WidthMax: 60},
	})
	t.Render()
}

// RenderGages writes one row per rain gage
func RenderGages(w io.Writer, list []gages.Gage) {
	t := newTable(w)
	t.AppendHeader(table.Row{"Name", "Code", "Latitude", "Longitude"})
	for _, g := range list {
		t.AppendRow(table.Row{g.Name, g.Code, g.Latitude.String(), g.Longitude.String()})
	}
	t.AppendFooter(table.Row{"", "", "Total", len(list)})
	t.Render()
}

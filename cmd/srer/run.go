package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"srer/pkg/logger"
	"srer/pkg/report"
	"srer/pkg/ui"
	"srer/pkg/ui/tui"
)

// observable is a pipeline that reports progress to observers
type observable interface {
	Observe(o report.Observer)
}

// runPipeline runs fn with Ctrl-C cancellation and the progress display
// selected by the flags, then prints the run summary.
func runPipeline(cmd *cobra.Command, useTUI bool, target observable, fn func(context.Context) (*report.Report, error)) error {
	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if notify {
		target.Observe(ui.NewNotifier())
	}

	var (
		rep *report.Report
		err error
	)
	if useTUI {
		rep, err = runWithTUI(ctx, cancel, target, fn)
	} else {
		if !quiet {
			target.Observe(ui.NewProgressPrinter())
		}
		rep, err = fn(ctx)
	}

	if rep != nil {
		ui.RenderSummary(ui.Output(), rep)
		if !quiet {
			ui.RenderProblems(ui.Output(), rep)
		}
	}

	return err
}

func runWithTUI(ctx context.Context, cancel context.CancelFunc, target observable, fn func(context.Context) (*report.Report, error)) (*report.Report, error) {
	terminal := tui.NewTUI(cancel)
	target.Observe(terminal)

	type result struct {
		rep *report.Report
		err error
	}
	done := make(chan result, 1)
	go func() {
		rep, err := fn(ctx)
		terminal.Stop()
		done <- result{rep, err}
	}()

	if err := terminal.Run(); err != nil {
		logger.WithError(err).Error("Terminal UI failed")
		cancel()
		<-done
		return nil, fmt.Errorf("terminal UI failed: %w", err)
	}

	res := <-done
	return res.rep, res.err
}

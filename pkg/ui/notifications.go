package ui

import (
	"fmt"
	"os/exec"
	"runtime"

	"srer/pkg/report"
)

// NotificationSender delivers a desktop notification
type NotificationSender interface {
	Send(title, message string) error
}

// LinuxNotificationSender sends notifications on Linux using notify-send
type LinuxNotificationSender struct{}

func (LinuxNotificationSender) Send(title, message string) error {
	return exec.Command("notify-send", title, message).Run()
}

// MacOSNotificationSender sends notifications on macOS using osascript
type MacOSNotificationSender struct{}

func (MacOSNotificationSender) Send(title, message string) error {
	script := fmt.Sprintf(`display notification %q with title %q`, message, title)
	return exec.Command("osascript", "-e", script).Run()
}

// Notifier reports finished runs on the desktop. It is a report.Observer
// that only acts on Finished.
type Notifier struct {
	sender NotificationSender
}

// NewNotifier picks the sender for the current platform. Platforms without
// a sender get a Notifier that does nothing.
func NewNotifier() *Notifier {
	switch runtime.GOOS {
	case "linux":
		return &Notifier{sender: LinuxNotificationSender{}}
	case "darwin":
		return &Notifier{sender: MacOSNotificationSender{}}
	default:
		return &Notifier{}
	}
}

// NewNotifierWithSender creates a Notifier with an explicit sender
func NewNotifierWithSender(sender NotificationSender) *Notifier {
	return &Notifier{sender: sender}
}

func (n *Notifier) Started(string, int) {}

func (n *Notifier) Recorded(report.Outcome) {}

// Finished sends a summary of rep. Delivery errors are ignored.
func (n *Notifier) Finished(rep *report.Report) {
	if n.sender == nil {
		return
	}
	message := fmt.Sprintf("%d succeeded, %d skipped, %d failed",
		rep.Count(report.StatusSuccess),
		rep.Count(report.StatusSkipped),
		rep.Count(report.StatusFailed))
	_ = n.sender.Send("srer "+rep.Pipeline+" finished", message)
}

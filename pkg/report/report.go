// Package report records what happened to every item a pipeline touched.
//
// Pipelines never abort on a single bad station or image; instead each
// attempt lands in a Report as an Outcome that callers can count, filter
// or render.
package report

import (
	"time"

	"srer/pkg/models"
)

// Status is the result of a single attempt
type Status string

const (
	StatusSuccess Status = "success"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
)

// Operation names the kind of attempt an Outcome describes
type Operation string

const (
	OperationFetchPage     Operation = "fetch_page"
	OperationDownloadImage Operation = "download_image"
)

// Outcome describes one attempt on one item.
// Records is the number of records extracted for fetch_page and the
// number of bytes written for download_image.
type Outcome struct {
	Operation Operation
	StationID models.StationID
	Target    string
	Status    Status
	Reason    string
	Err       error
	Records   int64
	Duration  time.Duration
}

// Observer is notified as a report fills up
type Observer interface {
	Started(pipeline string, total int)
	Recorded(o Outcome)
	Finished(r *Report)
}

// Report is the ordered list of outcomes of one pipeline run
type Report struct {
	Pipeline   string
	Outcomes   []Outcome
	StartedAt  time.Time
	FinishedAt time.Time

	observers []Observer
}

// New starts a report for the named pipeline
func New(pipeline string) *Report {
	return &Report{
		Pipeline:  pipeline,
		Outcomes:  make([]Outcome, 0),
		StartedAt: time.Now(),
	}
}

// Observe registers o for the rest of the run
func (r *Report) Observe(o Observer) {
	if o != nil {
		r.observers = append(r.observers, o)
	}
}

// Start tells observers how many items the run will attempt
func (r *Report) Start(total int) {
	for _, o := range r.observers {
		o.Started(r.Pipeline, total)
	}
}

// Add appends an outcome
func (r *Report) Add(o Outcome) {
	r.Outcomes = append(r.Outcomes, o)
	for _, obs := range r.observers {
		obs.Recorded(o)
	}
}

// Count returns how many outcomes have the given status
func (r *Report) Count(status Status) int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Status == status {
			n++
		}
	}
	return n
}

// Filter returns the outcomes with the given status, in order
func (r *Report) Filter(status Status) []Outcome {
	var out []Outcome
	for _, o := range r.Outcomes {
		if o.Status == status {
			out = append(out, o)
		}
	}
	return out
}

// Total sums Records over successful outcomes
func (r *Report) Total() int64 {
	var total int64
	for _, o := range r.Outcomes {
		if o.Status == StatusSuccess {
			total += o.Records
		}
	}
	return total
}

// Finish stamps the end time
func (r *Report) Finish() {
	r.FinishedAt = time.Now()
	for _, o := range r.observers {
		o.Finished(r)
	}
}

// Elapsed returns the run duration, or the time since start if the run
// has not finished yet.
func (r *Report) Elapsed() time.Duration {
	if r.FinishedAt.IsZero() {
		return time.Since(r.StartedAt)
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

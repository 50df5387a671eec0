package report

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportCounts(t *testing.T) {
	r := New("scrape")
	r.Add(Outcome{Operation: OperationFetchPage, StationID: "101", Status: StatusSuccess, Records: 2})
	r.Add(Outcome{Operation: OperationFetchPage, StationID: "205", Status: StatusFailed, Err: errors.New("timeout")})
	r.Add(Outcome{Operation: OperationFetchPage, StationID: "101", Status: StatusSuccess, Records: 3})
	r.Add(Outcome{Operation: OperationFetchPage, StationID: "", Status: StatusSkipped, Reason: "empty id"})

	assert.Equal(t, 2, r.Count(StatusSuccess))
	assert.Equal(t, 1, r.Count(StatusFailed))
	assert.Equal(t, 1, r.Count(StatusSkipped))
	assert.Equal(t, int64(5), r.Total())

	failed := r.Filter(StatusFailed)
	require.Len(t, failed, 1)
	assert.Equal(t, "205", failed[0].StationID.String())
	assert.Empty(t, New("empty").Filter(StatusSuccess))
}

func TestReportFinish(t *testing.T) {
	r := New("download")
	assert.True(t, r.FinishedAt.IsZero())
	assert.GreaterOrEqual(t, r.Elapsed(), time.Duration(0))

	r.Finish()
	assert.False(t, r.FinishedAt.Before(r.StartedAt))
	assert.Equal(t, r.FinishedAt.Sub(r.StartedAt), r.Elapsed())
}

type recorder struct {
	pipeline string
	total    int
	seen     []Status
	finished bool
}

func (r *recorder) Started(pipeline string, total int) {
	r.pipeline = pipeline
	r.total = total
}

func (r *recorder) Recorded(o Outcome) { r.seen = append(r.seen, o.Status) }

func (r *recorder) Finished(*Report) { r.finished = true }

func TestReportObservers(t *testing.T) {
	obs := &recorder{}
	r := New("download")
	r.Observe(obs)
	r.Observe(nil)

	r.Start(2)
	r.Add(Outcome{Status: StatusSuccess})
	r.Add(Outcome{Status: StatusSkipped})
	r.Finish()

	assert.Equal(t, "download", obs.pipeline)
	assert.Equal(t, 2, obs.total)
	assert.Equal(t, []Status{StatusSuccess, StatusSkipped}, obs.seen)
	assert.True(t, obs.finished)
}

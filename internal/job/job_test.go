package job

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creamcroissant/trailerboard/internal/orderstatus"
	"github.com/creamcroissant/trailerboard/internal/service"
	"github.com/creamcroissant/trailerboard/internal/support/logging"
)

type fakeBoard struct {
	service.OrderBoardService
	summary service.StatusSummary
	err     error
	calls   int
}

func (f *fakeBoard) RefreshSummary(context.Context) (service.StatusSummary, error) {
	f.calls++
	return f.summary, f.err
}

type fakeSchedule struct {
	service.ScheduleService
	plan service.BuildSchedule
}

func (f *fakeSchedule) BuildSchedule(context.Context, *time.Time, *time.Time) (service.BuildSchedule, error) {
	return f.plan, nil
}

type countingJob struct {
	runs     atomic.Int32
	deadline bool
}

func (c *countingJob) Name() string { return "counting" }

func (c *countingJob) Run(ctx context.Context) error {
	c.runs.Add(1)
	_, c.deadline = ctx.Deadline()
	return nil
}

func TestStatusSnapshotSetsGauge(t *testing.T) {
	reg := prometheus.NewRegistry()
	board := &fakeBoard{summary: service.StatusSummary{
		Total: 5,
		Counts: []service.StatusCount{
			{Status: orderstatus.StatusSchedule, Count: 3},
			{Status: orderstatus.StatusShipped, Count: 2},
		},
	}}
	job, err := NewStatusSnapshotJob(board, reg, logging.Discard())
	require.NoError(t, err)

	require.NoError(t, job.Run(context.Background()))
	assert.Equal(t, 1, board.calls)
	assert.Equal(t, float64(3), testutil.ToFloat64(job.Gauge.WithLabelValues("schedule")))
	assert.Equal(t, float64(2), testutil.ToFloat64(job.Gauge.WithLabelValues("shipped")))

	_, err = NewStatusSnapshotJob(board, reg, nil)
	assert.Error(t, err, "duplicate registration")
}

func TestStatusSnapshotPropagatesError(t *testing.T) {
	job, err := NewStatusSnapshotJob(&fakeBoard{err: errors.New("db down")}, nil, logging.Discard())
	require.NoError(t, err)
	assert.ErrorContains(t, job.Run(context.Background()), "db down")

	var empty *StatusSnapshotJob
	assert.Error(t, empty.Run(context.Background()))
}

func TestBuildDigestSetsGauge(t *testing.T) {
	schedule := &fakeSchedule{plan: service.BuildSchedule{
		From: "2024-03-01", To: "2024-03-15", Total: 4,
		Days: []service.BuildDay{{Date: "2024-03-04"}},
	}}
	job, err := NewBuildDigestJob(schedule, prometheus.NewRegistry(), logging.Discard())
	require.NoError(t, err)
	require.NoError(t, job.Run(context.Background()))
	assert.Equal(t, float64(4), testutil.ToFloat64(job.Gauge))
}

func TestSchedulerRunNow(t *testing.T) {
	s := NewScheduler(logging.Discard(), WithJobTimeout(time.Second))
	job := &countingJob{}
	_, err := s.Register("@every 1h", job)
	require.NoError(t, err)

	require.NoError(t, s.RunNow(context.Background(), "counting"))
	assert.EqualValues(t, 1, job.runs.Load())
	assert.True(t, job.deadline)

	assert.Error(t, s.RunNow(context.Background(), "missing"))
}

func TestSchedulerRejectsBadSpec(t *testing.T) {
	s := NewScheduler(nil)
	_, err := s.Register("not a spec", &countingJob{})
	assert.Error(t, err)
	_, err = s.Register("", &countingJob{})
	assert.Error(t, err)
	_, err = s.Register("@every 1s", nil)
	assert.Error(t, err)
}

func TestSchedulerFiresOnSchedule(t *testing.T) {
	s := NewScheduler(logging.Discard())
	job := &countingJob{}
	_, err := s.Register("@every 1s", job)
	require.NoError(t, err)
	s.Start()
	defer s.Stop()

	assert.Eventually(t, func() bool { return job.runs.Load() > 0 }, 3*time.Second, 50*time.Millisecond)
}

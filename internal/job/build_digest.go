package job

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/creamcroissant/trailerboard/internal/service"
)

// BuildDigestJob logs the upcoming build plan and exports how many unshipped
// orders are due in the default schedule window.
type BuildDigestJob struct {
	Schedule service.ScheduleService
	Gauge    prometheus.Gauge
	Logger   *slog.Logger
}

// NewBuildDigestJob registers the gauge on reg when reg is non-nil.
func NewBuildDigestJob(schedule service.ScheduleService, reg prometheus.Registerer, logger *slog.Logger) (*BuildDigestJob, error) {
	if logger == nil {
		logger = slog.Default()
	}
	gauge := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "trailerboard",
		Name:      "orders_due_for_build",
		Help:      "Unshipped orders with a build date inside the schedule window.",
	})
	if reg != nil {
		if err := reg.Register(gauge); err != nil {
			return nil, fmt.Errorf("register orders_due_for_build: %w", err)
		}
	}
	return &BuildDigestJob{Schedule: schedule, Gauge: gauge, Logger: logger}, nil
}

// Name implements Runnable interface.
func (j *BuildDigestJob) Name() string {
	return "schedule.build_digest"
}

// Run implements Runnable interface.
func (j *BuildDigestJob) Run(ctx context.Context) error {
	if j == nil || j.Schedule == nil {
		return fmt.Errorf("build digest job dependencies not configured / 排产摘要任务依赖未配置")
	}
	plan, err := j.Schedule.BuildSchedule(ctx, nil, nil)
	if err != nil {
		return fmt.Errorf("build digest job: %w", err)
	}
	if j.Gauge != nil {
		j.Gauge.Set(float64(plan.Total))
	}
	if len(plan.Days) > 0 {
		j.Logger.Info("build schedule digest", "from", plan.From, "to", plan.To, "orders", plan.Total, "next_day", plan.Days[0].Date)
	}
	return nil
}

package job

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/creamcroissant/trailerboard/internal/service"
)

// StatusSnapshotJob recomputes the per-status order counts, refreshing the
// cached summary and the orders_by_status gauge.
type StatusSnapshotJob struct {
	Board  service.OrderBoardService
	Gauge  *prometheus.GaugeVec
	Logger *slog.Logger
}

// NewStatusSnapshotJob registers the gauge on reg when reg is non-nil.
func NewStatusSnapshotJob(board service.OrderBoardService, reg prometheus.Registerer, logger *slog.Logger) (*StatusSnapshotJob, error) {
	if logger == nil {
		logger = slog.Default()
	}
	gauge := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "trailerboard",
		Name:      "orders_by_status",
		Help:      "Number of orders currently classified into each status.",
	}, []string{"status"})
	if reg != nil {
		if err := reg.Register(gauge); err != nil {
			return nil, fmt.Errorf("register orders_by_status: %w", err)
		}
	}
	return &StatusSnapshotJob{Board: board, Gauge: gauge, Logger: logger}, nil
}

// Name implements Runnable interface.
func (j *StatusSnapshotJob) Name() string {
	return "orders.status_snapshot"
}

// Run implements Runnable interface.
func (j *StatusSnapshotJob) Run(ctx context.Context) error {
	if j == nil || j.Board == nil {
		return fmt.Errorf("status snapshot job dependencies not configured / 状态快照任务依赖未配置")
	}
	summary, err := j.Board.RefreshSummary(ctx)
	if err != nil {
		return fmt.Errorf("status snapshot job: %w", err)
	}
	if j.Gauge != nil {
		for _, bucket := range summary.Counts {
			j.Gauge.WithLabelValues(bucket.Status.String()).Set(float64(bucket.Count))
		}
	}
	j.Logger.Debug("status snapshot refreshed", "total", summary.Total)
	return nil
}

// 文件路径: internal/security/audit.go
// 模块说明: 审计记录。订单录入、编辑与发运都会留下一条事件。
package security

import (
	"context"
	"io"
	"log/slog"
	"time"
)

// Event 表示一次需要留痕的写操作。
type Event struct {
	Kind     string
	Actor    string
	Subject  string
	Metadata map[string]any
	Occurred time.Time
}

// Recorder 记录审计事件，供后续分析。
type Recorder interface {
	Record(ctx context.Context, event Event)
}

// LoggerRecorder 将审计事件写入 slog.Logger。
type LoggerRecorder struct {
	logger *slog.Logger
	now    func() time.Time
}

// NewLoggerRecorder 返回记录器，写入指定 logger（为空时丢弃）。
func NewLoggerRecorder(logger *slog.Logger) *LoggerRecorder {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &LoggerRecorder{logger: logger.With("component", "audit"), now: time.Now}
}

// Record 实现 Recorder。Actor 为空时取 ctx 中的请求方。
func (r *LoggerRecorder) Record(ctx context.Context, event Event) {
	if r == nil || r.logger == nil {
		return
	}
	if event.Occurred.IsZero() {
		event.Occurred = r.now().UTC()
	}
	if event.Actor == "" {
		event.Actor = ActorFrom(ctx)
	}
	r.logger.InfoContext(ctx, "audit event",
		"kind", event.Kind,
		"actor", event.Actor,
		"subject", event.Subject,
		"metadata", event.Metadata,
		"occurred", event.Occurred.Format(time.RFC3339Nano),
	)
}

// NopRecorder drops every event.
type NopRecorder struct{}

// Record implements Recorder.
func (NopRecorder) Record(context.Context, Event) {}

type actorKey struct{}

// WithActor tags ctx with who is performing the request.
func WithActor(ctx context.Context, actor string) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// ActorFrom returns the actor set by WithActor, or "system".
func ActorFrom(ctx context.Context) string {
	if actor, ok := ctx.Value(actorKey{}).(string); ok && actor != "" {
		return actor
	}
	return "system"
}

package scheduler

import (
	"context"
	"io"
	"log/slog"
	"time"
)

// RunEvent captures lightweight execution telemetry for one
// CollectAllOptimalSchedules call.
type RunEvent struct {
	Solver    string
	Duration  time.Duration
	Solutions int
	Optimal   bool
	Err       error
}

// RunObserver receives scheduler run events.
type RunObserver interface {
	ObserveRun(ctx context.Context, event RunEvent)
}

// NoopRunObserver ignores all events.
type NoopRunObserver struct{}

func (NoopRunObserver) ObserveRun(context.Context, RunEvent) {}

type logRunObserver struct {
	logger *slog.Logger
}

// NewLogRunObserver writes run events to w as structured log lines.
func NewLogRunObserver(w io.Writer) RunObserver {
	if w == nil {
		return NoopRunObserver{}
	}
	return &logRunObserver{logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))}
}

func (o *logRunObserver) ObserveRun(ctx context.Context, event RunEvent) {
	attrs := []any{
		"solver", event.Solver,
		"duration_ms", event.Duration.Milliseconds(),
		"solutions", event.Solutions,
		"optimal", event.Optimal,
	}
	if event.Err != nil {
		attrs = append(attrs, "error", event.Err.Error())
		o.logger.ErrorContext(ctx, "scheduler_run", attrs...)
		return
	}
	o.logger.InfoContext(ctx, "scheduler_run", attrs...)
}

func runObserverOrNoop(observers []RunObserver) RunObserver {
	for _, obs := range observers {
		if obs != nil {
			return obs
		}
	}
	return NoopRunObserver{}
}

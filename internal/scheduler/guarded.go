package scheduler

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/pintowar/bellum-sub001/internal/domain"
	"github.com/pintowar/bellum-sub001/internal/estimator"
)

const (
	stateIdle uint32 = iota
	stateRunning
)

// Guarded wraps an Engine with the re-entrancy guard and SolutionHistory
// bookkeeping every scheduler needs: a single atomic state word CAS-gates
// concurrent invocations, and on_progress calls are forwarded both to the
// caller and appended to the returned history.
//
// A Guarded is safe to reuse: on any return path (success, error, panic
// recovery is not attempted) the state is released back to idle.
type Guarded struct {
	engine   Engine
	observer RunObserver
	state    atomic.Uint32
}

// NewGuarded wraps engine. Pass observers to receive run telemetry; the
// first non-nil observer wins, defaulting to NoopRunObserver.
func NewGuarded(engine Engine, observers ...RunObserver) *Guarded {
	return &Guarded{engine: engine, observer: runObserverOrNoop(observers)}
}

// Name returns the wrapped engine's name.
func (g *Guarded) Name() string { return g.engine.Name() }

// CollectAllOptimalSchedules CAS-transitions idle->running, delegates to
// the wrapped engine, and resets the state to idle on every return path. Concurrent calls on the same instance all but one fail fast with
// SchedulerBusyError.
func (g *Guarded) CollectAllOptimalSchedules(
	ctx context.Context,
	project domain.Project,
	est estimator.TimeEstimator,
	timeLimit time.Duration,
	parallel int,
	onProgress ProgressFunc,
) (*SolutionHistory, error) {
	if !g.state.CompareAndSwap(stateIdle, stateRunning) {
		return nil, &SchedulerBusyError{}
	}
	defer g.state.Store(stateIdle)

	start := time.Now()
	history := NewSolutionHistory()

	forward := func(s SchedulerSolution) {
		if history.TryAppend(s) && onProgress != nil {
			onProgress(s)
		}
	}

	final, err := g.engine.SolveOptimizationProblem(ctx, project, est, timeLimit, parallel, forward)
	if err != nil {
		g.observer.ObserveRun(ctx, RunEvent{Solver: g.engine.Name(), Duration: time.Since(start), Err: err})
		return nil, err
	}
	// The terminal solution always gets recorded, even when it ties the last
	// strict improvement already appended via forward (the engine's final
	// call is commonly the very same project that was last streamed through
	// on_progress, now proven optimal): TryAppend's strict-improvement gate
	// would otherwise silently drop the one point where Optimal flips true.
	if !history.TryAppend(final) {
		history.MarkLastOptimal(final.Optimal)
	}
	if onProgress != nil {
		onProgress(final)
	}

	g.observer.ObserveRun(ctx, RunEvent{
		Solver:    g.engine.Name(),
		Duration:  time.Since(start),
		Solutions: history.Len(),
		Optimal:   final.Optimal,
	})
	return history, nil
}

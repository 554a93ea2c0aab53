// Package scheduler defines the scheduling-engine contract: a re-entrancy
// guarded facade (Guarded) over an Engine, the anytime SolutionHistory
// accumulator, and a Registry exposing named engines uniformly. The CP and
// GA engines live in sibling packages and implement Engine.
package scheduler

import (
	"context"
	"runtime"
	"time"

	"github.com/pintowar/bellum-sub001/internal/domain"
	"github.com/pintowar/bellum-sub001/internal/estimator"
)

// ProgressFunc receives each strictly-improving solution as an engine finds
// it, in strictly-decreasing composite-objective order. Guarded also passes
// its caller the engine's terminal solution, which may tie the last
// improvement.
type ProgressFunc func(SchedulerSolution)

// Engine is implemented by a concrete scheduling algorithm (CP, GA, ...).
// It runs to completion or to its time limit and returns the best solution
// found, calling onProgress for every strict improvement along the way.
type Engine interface {
	Name() string
	SolveOptimizationProblem(
		ctx context.Context,
		project domain.Project,
		est estimator.TimeEstimator,
		timeLimit time.Duration,
		parallel int,
		onProgress ProgressFunc,
	) (SchedulerSolution, error)
}

// Scheduler is the contract callers drive: pick one from the Registry,
// supply an estimator and a project, collect the anytime solution stream.
type Scheduler interface {
	CollectAllOptimalSchedules(
		ctx context.Context,
		project domain.Project,
		est estimator.TimeEstimator,
		timeLimit time.Duration,
		parallel int,
		onProgress ProgressFunc,
	) (*SolutionHistory, error)
}

// ResolveParallelism turns the parallel argument into a worker count:
// -1 means auto (90% of logical cores, at least 1), 1 means single worker,
// n>1 means n workers.
func ResolveParallelism(parallel int) int {
	switch {
	case parallel == -1:
		n := int(0.9 * float64(runtime.NumCPU()))
		if n < 1 {
			n = 1
		}
		return n
	case parallel < 1:
		return 1
	default:
		return parallel
	}
}

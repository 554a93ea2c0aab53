package cpengine

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pintowar/bellum-sub001/internal/decode"
	"github.com/pintowar/bellum-sub001/internal/domain"
	"github.com/pintowar/bellum-sub001/internal/estimator"
	"github.com/pintowar/bellum-sub001/internal/scheduler"
)

// modelName reported in every solution's stats bag.
const modelName = "rcpss-assignment"

// Engine is a branch-and-bound search over the employee assigned to each
// non-pinned task, decoded to a concrete schedule by internal/decode and
// compared by scheduler.CompositeObjective. It implements scheduler.Engine.
type Engine struct{}

// New returns a CP Engine.
func New() *Engine { return &Engine{} }

func (*Engine) Name() string { return "choco" }

// searchState is shared by every worker in a portfolio run: the incumbent
// bound, the incumbent project, and search counters for the stats bag.
type searchState struct {
	mu          sync.Mutex
	incumbent   int64
	hasSolution bool
	best        domain.Project

	nodes      atomic.Int64
	backtracks atomic.Int64
	fails      atomic.Int64
	restarts   atomic.Int64
	solutions  atomic.Int64

	start      time.Time
	onProgress scheduler.ProgressFunc
}

func (s *searchState) tryImprove(project domain.Project) {
	obj := scheduler.CompositeObjective(project)
	// onProgress runs under the lock so emissions from concurrent workers
	// stay in strictly-decreasing objective order.
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.hasSolution && obj >= s.incumbent {
		return
	}
	s.incumbent = obj
	s.hasSolution = true
	s.best = project
	s.solutions.Add(1)
	if s.onProgress != nil {
		s.onProgress(scheduler.SchedulerSolution{
			Project:  project,
			Optimal:  false,
			Duration: time.Since(s.start),
			Stats: scheduler.ChocoStats(modelName, "IMPROVING", int(s.solutions.Load()),
				int(s.nodes.Load()), int(s.backtracks.Load()), int(s.fails.Load()), int(s.restarts.Load()),
				obj),
		})
	}
}

func (s *searchState) bound() (int64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.incumbent, s.hasSolution
}

// SolveOptimizationProblem runs the branch-and-bound search. The worker
// count is scheduler.ResolveParallelism(parallel) (-1 means auto). With one
// worker it explores the full tree in deterministic symmetry-broken order.
// With two or more, that many workers search
// concurrently, each starting its employee-iteration order from a
// different rotation for diversity, sharing one incumbent bound.
func (e *Engine) SolveOptimizationProblem(
	ctx context.Context,
	project domain.Project,
	est estimator.TimeEstimator,
	timeLimit time.Duration,
	parallel int,
	onProgress scheduler.ProgressFunc,
) (scheduler.SchedulerSolution, error) {
	if err := project.Validate(); err != nil {
		return scheduler.SchedulerSolution{}, err
	}

	model, err := BuildModel(project, est)
	if err != nil {
		return scheduler.SchedulerSolution{}, err
	}

	runCtx := ctx
	if timeLimit > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, timeLimit)
		defer cancel()
	}

	workers := scheduler.ResolveParallelism(parallel)
	state := &searchState{start: time.Now(), onProgress: onProgress}

	var wg sync.WaitGroup
	exhausted := make([]bool, workers)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			rotation := 0
			if len(model.Employees) > 0 {
				rotation = worker % len(model.Employees)
			}
			exhausted[worker] = runWorker(runCtx, model, state, rotation)
		}(w)
	}
	wg.Wait()

	optimal := runCtx.Err() == nil
	for _, done := range exhausted {
		if !done {
			optimal = false
			break
		}
	}
	if !state.hasSolution {
		// No feasible assignment was found before the deadline (or the model
		// admits none at all): fall back to the trivial unassigned input
		// rather than failing the call outright.
		return scheduler.SchedulerSolution{
			Project:  project,
			Optimal:  false,
			Duration: time.Since(state.start),
			Stats: scheduler.ChocoStats(modelName, "NO_SOLUTION", 0,
				int(state.nodes.Load()), int(state.backtracks.Load()), int(state.fails.Load()), int(state.restarts.Load()),
				scheduler.CompositeObjective(project)),
		}, nil
	}

	searchStateName := "TERMINATED"
	if !optimal {
		searchStateName = "STOPPED"
	}

	final := scheduler.SchedulerSolution{
		Project:  state.best,
		Optimal:  optimal,
		Duration: time.Since(state.start),
		Stats: scheduler.ChocoStats(modelName, searchStateName, int(state.solutions.Load()),
			int(state.nodes.Load()), int(state.backtracks.Load()), int(state.fails.Load()), int(state.restarts.Load()),
			state.incumbent),
	}
	return final, nil
}

// runWorker performs one DFS over the unassigned-task assignment tree,
// starting its per-task employee iteration order rotated by rotation
// (portfolio diversification). Returns true if it exhausted its whole
// subtree without being cancelled.
func runWorker(ctx context.Context, model *Model, state *searchState, rotation int) bool {
	n := len(model.Employees)
	assignment := make(map[domain.TaskId]domain.EmployeeId, len(model.Unassigned))
	groupFrontier := make(map[int]int)

	var dfs func(idx int) bool
	dfs = func(idx int) bool {
		if ctx.Err() != nil {
			return false
		}
		state.nodes.Add(1)

		if idx == len(model.Unassigned) {
			project, err := decode.Schedule(model.Project, model.Order, fixedMinutesChooser(model, assignment))
			if err == nil {
				state.tryImprove(project)
			}
			return true
		}

		taskID := model.Unassigned[idx]
		isRoot := model.RootTasks[taskID]

		exhaustedAll := true
		for offset := 0; offset < n; offset++ {
			ei := (offset + rotation) % n
			if ctx.Err() != nil {
				exhaustedAll = false
				break
			}

			if isRoot {
				group := model.EmployeeGroup[ei]
				pos := groupPosition(model, group, ei)
				frontier := groupFrontier[group]
				if pos > frontier {
					// Symmetry breaking: this employee within its group has
					// not been "unlocked" by a prior root-task assignment yet.
					continue
				}
			}

			assignment[taskID] = model.Employees[ei].ID()

			if bound, ok := state.bound(); ok {
				if partial, err := partialLowerBound(model, assignment); err == nil && partial >= bound {
					state.backtracks.Add(1)
					delete(assignment, taskID)
					continue
				}
			}

			var savedFrontier int
			var group int
			if isRoot {
				group = model.EmployeeGroup[ei]
				pos := groupPosition(model, group, ei)
				savedFrontier = groupFrontier[group]
				if pos == savedFrontier {
					groupFrontier[group] = pos + 1
				}
			}

			ok := dfs(idx + 1)
			if !ok {
				exhaustedAll = false
			}

			if isRoot {
				groupFrontier[group] = savedFrontier
			}
			delete(assignment, taskID)

			if !ok {
				break
			}
		}
		if !exhaustedAll {
			state.fails.Add(1)
		}
		return exhaustedAll
	}

	if len(model.Unassigned) == 0 {
		project, err := decode.Schedule(model.Project, model.Order, fixedMinutesChooser(model, assignment))
		if err == nil {
			state.tryImprove(project)
		}
		return true
	}

	return dfs(0)
}

// groupPosition returns ei's rank (0-based) among employee indices sharing
// group, in ascending index order.
func groupPosition(model *Model, group, ei int) int {
	pos := 0
	for i, g := range model.EmployeeGroup {
		if g != group {
			continue
		}
		if i == ei {
			return pos
		}
		pos++
	}
	return pos
}

// partialLowerBound estimates a lower bound on the composite objective
// reachable by completing assignment: the makespan of everything decoded so
// far (pinned tasks plus the partial assignment, with remaining tasks left
// unassigned contributing nothing) can only grow as more tasks are fixed,
// so it is a valid admissible bound for pruning.
func partialLowerBound(model *Model, assignment map[domain.TaskId]domain.EmployeeId) (int64, error) {
	order := make([]domain.TaskId, 0, len(model.Order))
	for _, id := range model.Order {
		if _, pinned := model.Pinned[id]; pinned {
			order = append(order, id)
			continue
		}
		if _, ok := assignment[id]; ok {
			order = append(order, id)
		}
	}
	// decode.Schedule requires a full permutation; build a partial project
	// restricted to decided tasks instead.
	decidedSet := make(map[domain.TaskId]bool, len(order))
	for _, id := range order {
		decidedSet[id] = true
	}
	var decidedTasks []domain.Task
	for _, t := range model.Tasks {
		if decidedSet[t.Base().ID] {
			decidedTasks = append(decidedTasks, t)
		}
	}
	partialProject := model.Project.WithTasks(decidedTasks)
	scheduled, err := decode.Schedule(partialProject, order, fixedMinutesChooser(model, assignment))
	if err != nil {
		return 0, err
	}
	return scheduler.CompositeObjective(scheduled), nil
}

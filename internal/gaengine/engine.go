package gaengine

import (
	"context"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/pintowar/bellum-sub001/internal/decode"
	"github.com/pintowar/bellum-sub001/internal/domain"
	"github.com/pintowar/bellum-sub001/internal/estimator"
	"github.com/pintowar/bellum-sub001/internal/scheduler"
)

const (
	defaultPopulationSize = 60
	defaultTournamentSize = 3
	defaultMutationRate   = 0.2
	defaultElites         = 2
)

// Engine is a genetic-algorithm search over task-visiting-order
// permutations, decoded by internal/decode's EarliestFinishChooser. It
// implements scheduler.Engine.
type Engine struct {
	PopulationSize int
	TournamentSize int
	MutationRate   float64
	Elites         int
}

// New returns a GA Engine with default population and operator parameters.
func New() *Engine {
	return &Engine{
		PopulationSize: defaultPopulationSize,
		TournamentSize: defaultTournamentSize,
		MutationRate:   defaultMutationRate,
		Elites:         defaultElites,
	}
}

func (*Engine) Name() string { return "jenetics" }

// SolveOptimizationProblem evolves a population of task-order permutations
// until timeLimit elapses or ctx is cancelled, reporting every
// strictly-improving individual found along the way. parallel controls how
// many independent populations (islands) run concurrently, each
// contributing improvements to a shared incumbent.
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

	runCtx := ctx
	if timeLimit > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, timeLimit)
		defer cancel()
	}

	start := time.Now()
	taskIDs := make([]domain.TaskId, len(project.AllTasks()))
	for i, t := range project.AllTasks() {
		taskIDs[i] = t.Base().ID
	}
	if len(taskIDs) == 0 {
		return scheduler.SchedulerSolution{
			Project:  project,
			Optimal:  true,
			Duration: time.Since(start),
			Stats:    scheduler.JeneticsStats(0, 0, 0, 0, 0, 0, 0, 0, 0),
		}, nil
	}
	uni := &universe{
		project: project,
		chooser: decode.EarliestFinishChooser(project, est),
		taskIDs: taskIDs,
	}

	islands := scheduler.ResolveParallelism(parallel)
	state := &gaState{start: start, onProgress: onProgress}

	done := make(chan islandResult, islands)
	for i := 0; i < islands; i++ {
		seed := int64(i)*2654435761 + 1
		go runIsland(runCtx, uni, e, seed, state, done)
	}
	var totalGenerations int
	var lastPopStats popStats
	for i := 0; i < islands; i++ {
		res := <-done
		totalGenerations += res.generations
		if res.generations > 0 {
			lastPopStats = res.stats
		}
	}

	if !state.hasSolution() {
		// No feasible individual was found before the deadline: fall back to
		// the trivial unassigned input rather than failing the call outright.
		return scheduler.SchedulerSolution{
			Project:  project,
			Optimal:  false,
			Duration: time.Since(start),
			Stats:    scheduler.JeneticsStats(0, totalGenerations, 0, 0, 0, 0, 0, 0, 0),
		}, nil
	}

	best, objective := state.best()
	final := scheduler.SchedulerSolution{
		Project:  best,
		Optimal:  false,
		Duration: time.Since(state.start),
		Stats: scheduler.JeneticsStats(-float64(objective), totalGenerations,
			lastPopStats.min, lastPopStats.max, lastPopStats.mean, lastPopStats.variance,
			lastPopStats.altered, lastPopStats.killed, lastPopStats.invalid),
	}
	return final, nil
}

type islandResult struct {
	generations int
	stats       popStats
}

type popStats struct {
	min, max, mean, variance float64
	altered, killed, invalid int
}

// gaState is the shared incumbent across islands.
type gaState struct {
	mu          sync.Mutex
	incumbent   int64
	hasBest     bool
	bestProject domain.Project

	start      time.Time
	onProgress scheduler.ProgressFunc
}

func (s *gaState) hasSolution() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hasBest
}

func (s *gaState) best() (domain.Project, int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bestProject, s.incumbent
}

func (s *gaState) tryImprove(ind individual) {
	if !ind.feasible {
		return
	}
	// onProgress runs under the lock so emissions from concurrent islands
	// stay in strictly-decreasing objective order.
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.hasBest && ind.objective >= s.incumbent {
		return
	}
	s.incumbent = ind.objective
	s.hasBest = true
	s.bestProject = ind.decoded
	if s.onProgress != nil {
		s.onProgress(scheduler.SchedulerSolution{
			Project:  ind.decoded,
			Optimal:  false,
			Duration: time.Since(s.start),
			Stats:    scheduler.JeneticsStats(-float64(ind.objective), 0, 0, 0, 0, 0, 0, 0, 0),
		})
	}
}

// runIsland evolves one population until ctx is done, reporting every
// generation's improvements to shared and returning its final population's
// stats.
func runIsland(ctx context.Context, uni *universe, cfg *Engine, seed int64, shared *gaState, done chan<- islandResult) {
	rng := rand.New(rand.NewSource(seed))

	pop := make([]individual, cfg.PopulationSize)
	for i := range pop {
		pop[i] = uni.evaluate(randomPermutation(rng, uni.taskIDs))
	}
	for _, ind := range pop {
		shared.tryImprove(ind)
	}

	generations := 0
	var invalidCount, alteredCount, killedCount int
	for ctx.Err() == nil {
		generations++

		sorted := append([]individual(nil), pop...)
		sort.Slice(sorted, func(i, j int) bool { return better(sorted[i], sorted[j]) })
		elites := cfg.Elites
		if elites > len(sorted) {
			elites = len(sorted)
		}
		killedCount += len(pop) - elites
		next := append([]individual(nil), sorted[:elites]...)

		for len(next) < len(pop) {
			if ctx.Err() != nil {
				break
			}
			parent1 := tournamentSelect(rng, pop, cfg.TournamentSize)
			parent2 := tournamentSelect(rng, pop, cfg.TournamentSize)
			childOrder := orderCrossover(rng, parent1.order, parent2.order)
			childOrder = swapMutate(rng, childOrder, cfg.MutationRate)
			alteredCount++
			child := uni.evaluate(childOrder)
			if !child.feasible {
				invalidCount++
			}
			next = append(next, child)
		}
		pop = next

		for _, ind := range pop {
			shared.tryImprove(ind)
		}
	}

	done <- islandResult{generations: generations, stats: computePopStats(pop, invalidCount, alteredCount, killedCount)}
}

func computePopStats(pop []individual, invalid, altered, killed int) popStats {
	fitness := make([]float64, 0, len(pop))
	for _, ind := range pop {
		if !ind.feasible {
			continue
		}
		fitness = append(fitness, -float64(ind.objective))
	}
	if len(fitness) == 0 {
		return popStats{invalid: invalid, altered: altered, killed: killed}
	}
	min, max, sum := fitness[0], fitness[0], 0.0
	for _, f := range fitness {
		if f < min {
			min = f
		}
		if f > max {
			max = f
		}
		sum += f
	}
	mean := sum / float64(len(fitness))
	var variance float64
	for _, f := range fitness {
		variance += (f - mean) * (f - mean)
	}
	variance /= float64(len(fitness))
	return popStats{min: min, max: max, mean: mean, variance: variance, invalid: invalid, altered: altered, killed: killed}
}

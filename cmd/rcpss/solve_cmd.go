package main

import (
	"context"
	"fmt"
	"sort"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/pintowar/bellum-sub001/cmd/rcpss/tui"
	"github.com/pintowar/bellum-sub001/internal/domain"
	"github.com/pintowar/bellum-sub001/internal/estimator"
	"github.com/pintowar/bellum-sub001/internal/scheduler"
	"github.com/pintowar/bellum-sub001/internal/store"
)

func newSolveCmd(a *app) *cobra.Command {
	var solverName string
	var timeLimit time.Duration
	var parallel int

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Solve the sample project with a registered scheduling engine",
		RunE: func(cmd *cobra.Command, args []string) error {
			if solverName == "" {
				name, err := pickSolver(a)
				if err != nil {
					return err
				}
				solverName = name
			}

			descriptor, err := a.registry.GetOrThrow(solverName)
			if err != nil {
				return err
			}
			guarded := descriptor.Factory()

			project, est, err := demoProject(time.Now().UTC())
			if err != nil {
				return fmt.Errorf("building demo project: %w", err)
			}

			startedAt := time.Now().UTC()
			var history *scheduler.SolutionHistory
			if a.isInteractive() {
				history, err = runInteractive(cmd, guarded, project, est, timeLimit, parallel)
			} else {
				history, err = runPlain(cmd, guarded, project, est, timeLimit, parallel)
			}
			if err != nil {
				return err
			}

			runID := project.ID().String()
			record := store.FromHistory(runID, project.Name(), guarded.Name(), startedAt, history)
			if err := a.historyRepo.Save(context.Background(), record); err != nil {
				return fmt.Errorf("saving run history: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&solverName, "solver", "", "Scheduling engine to use (see 'rcpss solvers'); when omitted, prompts on a terminal and otherwise uses the first name in sorted order")
	cmd.Flags().DurationVar(&timeLimit, "time-limit", 2*time.Second, "Maximum time the engine may search")
	cmd.Flags().IntVar(&parallel, "parallel", 1, "Worker count; -1 for auto")

	return cmd
}

func pickSolver(a *app) (string, error) {
	names := a.registry.Names()
	sort.Strings(names)
	if len(names) == 0 {
		return "", fmt.Errorf("no scheduling engines registered")
	}
	if !a.isInteractive() {
		return names[0], nil
	}

	options := make([]huh.Option[string], len(names))
	for i, n := range names {
		options[i] = huh.NewOption(n, n)
	}
	selected := names[0]
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Which scheduling engine?").
				Options(options...).
				Value(&selected),
		),
	).WithShowHelp(false)
	if err := form.Run(); err != nil {
		return "", fmt.Errorf("selecting solver: %w", err)
	}
	return selected, nil
}

// runPlain drives a solve without the TUI, logging each improving solution
// as a plain line to the command's stdout. Used for non-interactive
// (piped/redirected) output.
func runPlain(
	cmd *cobra.Command,
	guarded *scheduler.Guarded,
	project domain.Project,
	est estimator.TimeEstimator,
	timeLimit time.Duration,
	parallel int,
) (*scheduler.SolutionHistory, error) {
	out := cmd.OutOrStdout()
	onProgress := func(s scheduler.SchedulerSolution) {
		makespan, _ := s.Project.TotalDuration()
		fmt.Fprintf(out, "improved: makespan=%s priorityCost=%d duration=%s\n",
			makespan, s.Project.PriorityCost(), s.Duration.Truncate(time.Millisecond))
	}
	history, err := guarded.CollectAllOptimalSchedules(context.Background(), project, est, timeLimit, parallel, onProgress)
	if err != nil {
		return nil, err
	}
	if final, ok := history.LastProject(); ok {
		makespan, _ := final.TotalDuration()
		fmt.Fprintf(out, "final: makespan=%s priorityCost=%d\n", makespan, final.PriorityCost())
	}
	return history, nil
}

// runInteractive drives a solve behind the live bubbletea progress view.
func runInteractive(
	cmd *cobra.Command,
	guarded *scheduler.Guarded,
	project domain.Project,
	est estimator.TimeEstimator,
	timeLimit time.Duration,
	parallel int,
) (*scheduler.SolutionHistory, error) {
	updates := make(chan scheduler.SchedulerSolution)
	doneCh := make(chan tui.DoneMsg, 1)
	resultCh := make(chan *scheduler.SolutionHistory, 1)

	go func() {
		onProgress := func(s scheduler.SchedulerSolution) {
			updates <- s
		}
		history, err := guarded.CollectAllOptimalSchedules(context.Background(), project, est, timeLimit, parallel, onProgress)
		close(updates)
		if err != nil {
			doneCh <- tui.DoneMsg{Err: err}
			resultCh <- nil
			return
		}
		var final scheduler.SchedulerSolution
		if entries := history.All(); len(entries) > 0 {
			final = entries[len(entries)-1]
		}
		doneCh <- tui.DoneMsg{Solution: final}
		resultCh <- history
	}()

	model := tui.NewModel(guarded.Name(), updates, doneCh)
	program := tea.NewProgram(model)
	if _, err := program.Run(); err != nil {
		return nil, fmt.Errorf("running progress view: %w", err)
	}
	history := <-resultCh
	if history == nil {
		return nil, fmt.Errorf("solve failed")
	}
	return history, nil
}

// Package store persists scheduler run history to a local database: an
// ambient audit trail of every collect_all_optimal_schedules call, grounded
// in the teacher's internal/repository + internal/db SQLite layer.
package store

import (
	"time"

	"github.com/pintowar/bellum-sub001/internal/scheduler"
)

// RunRecord is the persisted shape of one completed CollectAllOptimalSchedules
// call: which project and solver produced it, when it ran, the final
// solution's headline numbers, and every intermediate solution along the
// way.
type RunRecord struct {
	ID                  string
	ProjectName         string
	SolverName          string
	StartedAt           time.Time
	FinishedAt          time.Time
	FinalOptimal        bool
	FinalMakespanMinute int64
	FinalPriorityCost   int
	Solutions           []SolutionRecord
}

// SolutionRecord is one entry of a persisted SolutionHistory.
type SolutionRecord struct {
	Seq            int
	Optimal        bool
	MakespanMinute int64
	PriorityCost   int
	SolverDuration time.Duration
	Stats          map[string]any
}

// FromHistory builds the RunRecord to persist for a completed scheduler run.
func FromHistory(id, projectName, solverName string, startedAt time.Time, history *scheduler.SolutionHistory) RunRecord {
	entries := history.All()
	record := RunRecord{
		ID:          id,
		ProjectName: projectName,
		SolverName:  solverName,
		StartedAt:   startedAt,
		FinishedAt:  startedAt,
		Solutions:   make([]SolutionRecord, len(entries)),
	}

	for i, e := range entries {
		makespanMinute := int64(0)
		if total, ok := e.Project.TotalDuration(); ok {
			makespanMinute = int64(total / time.Minute)
		}
		record.Solutions[i] = SolutionRecord{
			Seq:            i,
			Optimal:        e.Optimal,
			MakespanMinute: makespanMinute,
			PriorityCost:   e.Project.PriorityCost(),
			SolverDuration: e.Duration,
			Stats:          e.Stats,
		}
		finishedAt := startedAt.Add(e.Duration)
		if finishedAt.After(record.FinishedAt) {
			record.FinishedAt = finishedAt
		}
		if i == len(entries)-1 {
			record.FinalOptimal = e.Optimal
			record.FinalMakespanMinute = makespanMinute
			record.FinalPriorityCost = e.Project.PriorityCost()
		}
	}

	return record
}

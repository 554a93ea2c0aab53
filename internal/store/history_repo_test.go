package store

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pintowar/bellum-sub001/internal/db"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database
}

func sampleRun(id string) RunRecord {
	started := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	return RunRecord{
		ID:                  id,
		ProjectName:         "demo",
		SolverName:          "cp",
		StartedAt:           started,
		FinishedAt:          started.Add(2 * time.Second),
		FinalOptimal:        true,
		FinalMakespanMinute: 120,
		FinalPriorityCost:   1,
		Solutions: []SolutionRecord{
			{Seq: 0, Optimal: false, MakespanMinute: 200, PriorityCost: 3, SolverDuration: 500 * time.Millisecond, Stats: map[string]any{"solver": "Choco Solver"}},
			{Seq: 1, Optimal: true, MakespanMinute: 120, PriorityCost: 1, SolverDuration: 1800 * time.Millisecond, Stats: map[string]any{"solver": "Choco Solver"}},
		},
	}
}

func TestSQLiteHistoryRepo_SaveAndGet(t *testing.T) {
	database := newTestDB(t)
	repo := NewSQLiteHistoryRepo(database)
	ctx := context.Background()

	run := sampleRun("run-1")
	require.NoError(t, repo.Save(ctx, run))

	got, err := repo.Get(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, run.ProjectName, got.ProjectName)
	assert.Equal(t, run.SolverName, got.SolverName)
	assert.True(t, got.StartedAt.Equal(run.StartedAt))
	assert.True(t, got.FinalOptimal)
	require.Len(t, got.Solutions, 2)
	assert.Equal(t, 200, int(got.Solutions[0].MakespanMinute))
	assert.Equal(t, "Choco Solver", got.Solutions[1].Stats["solver"])
}

func TestSQLiteHistoryRepo_List_OrderedNewestFirst(t *testing.T) {
	database := newTestDB(t)
	repo := NewSQLiteHistoryRepo(database)
	ctx := context.Background()

	older := sampleRun("run-older")
	older.StartedAt = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	older.FinishedAt = older.StartedAt.Add(time.Second)
	newer := sampleRun("run-newer")
	newer.StartedAt = time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	newer.FinishedAt = newer.StartedAt.Add(time.Second)

	require.NoError(t, repo.Save(ctx, older))
	require.NoError(t, repo.Save(ctx, newer))

	runs, err := repo.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "run-newer", runs[0].ID)
	assert.Equal(t, "run-older", runs[1].ID)
}

func TestSQLiteHistoryRepo_List_RespectsLimit(t *testing.T) {
	database := newTestDB(t)
	repo := NewSQLiteHistoryRepo(database)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		r := sampleRun(string(rune('a' + i)))
		r.StartedAt = r.StartedAt.Add(time.Duration(i) * time.Hour)
		r.FinishedAt = r.StartedAt.Add(time.Second)
		require.NoError(t, repo.Save(ctx, r))
	}

	runs, err := repo.List(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}

func TestSQLiteHistoryRepo_Get_UnknownID(t *testing.T) {
	database := newTestDB(t)
	repo := NewSQLiteHistoryRepo(database)

	_, err := repo.Get(context.Background(), "does-not-exist")
	require.Error(t, err)
}

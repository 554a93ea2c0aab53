package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pintowar/bellum-sub001/internal/db"
)

const timeLayout = time.RFC3339Nano

// HistoryRepo persists and re-lists scheduler RunRecords.
type HistoryRepo interface {
	Save(ctx context.Context, run RunRecord) error
	List(ctx context.Context, limit int) ([]RunRecord, error)
	Get(ctx context.Context, id string) (RunRecord, error)
}

// SQLiteHistoryRepo implements HistoryRepo over a db.DBTX, so it can run
// either standalone against a *sql.DB or inside a db.UnitOfWork transaction.
type SQLiteHistoryRepo struct {
	conn db.DBTX
}

// NewSQLiteHistoryRepo creates a new SQLiteHistoryRepo.
func NewSQLiteHistoryRepo(conn db.DBTX) *SQLiteHistoryRepo {
	return &SQLiteHistoryRepo{conn: conn}
}

func (r *SQLiteHistoryRepo) Save(ctx context.Context, run RunRecord) error {
	_, err := r.conn.ExecContext(ctx, `
		INSERT INTO runs (id, project_name, solver_name, started_at, finished_at, final_optimal, final_makespan_min, final_priority_cost)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.ProjectName, run.SolverName,
		run.StartedAt.Format(timeLayout), run.FinishedAt.Format(timeLayout),
		boolToInt(run.FinalOptimal), run.FinalMakespanMinute, run.FinalPriorityCost,
	)
	if err != nil {
		return fmt.Errorf("inserting run: %w", err)
	}

	for _, s := range run.Solutions {
		statsJSON, err := json.Marshal(s.Stats)
		if err != nil {
			return fmt.Errorf("marshalling solution stats: %w", err)
		}
		_, err = r.conn.ExecContext(ctx, `
			INSERT INTO run_solutions (run_id, seq, optimal, makespan_min, priority_cost, duration_ms, stats_json)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			run.ID, s.Seq, boolToInt(s.Optimal), s.MakespanMinute, s.PriorityCost, s.SolverDuration.Milliseconds(), string(statsJSON),
		)
		if err != nil {
			return fmt.Errorf("inserting run solution %d: %w", s.Seq, err)
		}
	}
	return nil
}

func (r *SQLiteHistoryRepo) Get(ctx context.Context, id string) (RunRecord, error) {
	row := r.conn.QueryRowContext(ctx, `
		SELECT id, project_name, solver_name, started_at, finished_at, final_optimal, final_makespan_min, final_priority_cost
		FROM runs WHERE id = ?`, id)

	run, err := scanRunFromRows(row)
	if err != nil {
		return RunRecord{}, fmt.Errorf("loading run %s: %w", id, err)
	}

	solutions, err := r.listSolutions(ctx, id)
	if err != nil {
		return RunRecord{}, err
	}
	run.Solutions = solutions
	return run, nil
}

func (r *SQLiteHistoryRepo) List(ctx context.Context, limit int) ([]RunRecord, error) {
	query := `SELECT id, project_name, solver_name, started_at, finished_at, final_optimal, final_makespan_min, final_priority_cost
		FROM runs ORDER BY started_at DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		run, err := scanRunFromRows(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating runs: %w", err)
	}
	return runs, nil
}

func (r *SQLiteHistoryRepo) listSolutions(ctx context.Context, runID string) ([]SolutionRecord, error) {
	rows, err := r.conn.QueryContext(ctx, `
		SELECT seq, optimal, makespan_min, priority_cost, duration_ms, stats_json
		FROM run_solutions WHERE run_id = ? ORDER BY seq`, runID)
	if err != nil {
		return nil, fmt.Errorf("listing solutions for run %s: %w", runID, err)
	}
	defer rows.Close()

	var solutions []SolutionRecord
	for rows.Next() {
		var s SolutionRecord
		var optimal int
		var durationMs int64
		var statsJSON string
		if err := rows.Scan(&s.Seq, &optimal, &s.MakespanMinute, &s.PriorityCost, &durationMs, &statsJSON); err != nil {
			return nil, fmt.Errorf("scanning run solution: %w", err)
		}
		s.Optimal = optimal != 0
		s.SolverDuration = time.Duration(durationMs) * time.Millisecond
		if err := json.Unmarshal([]byte(statsJSON), &s.Stats); err != nil {
			return nil, fmt.Errorf("unmarshalling solution stats: %w", err)
		}
		solutions = append(solutions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating run solutions: %w", err)
	}
	return solutions, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRunFromRows(row rowScanner) (RunRecord, error) {
	var run RunRecord
	var startedAt, finishedAt string
	var optimal int
	if err := row.Scan(&run.ID, &run.ProjectName, &run.SolverName, &startedAt, &finishedAt, &optimal, &run.FinalMakespanMinute, &run.FinalPriorityCost); err != nil {
		return RunRecord{}, fmt.Errorf("scanning run: %w", err)
	}
	run.FinalOptimal = optimal != 0

	var err error
	if run.StartedAt, err = time.Parse(timeLayout, startedAt); err != nil {
		return RunRecord{}, fmt.Errorf("parsing started_at: %w", err)
	}
	if run.FinishedAt, err = time.Parse(timeLayout, finishedAt); err != nil {
		return RunRecord{}, fmt.Errorf("parsing finished_at: %w", err)
	}
	return run, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

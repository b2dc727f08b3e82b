package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"smart_fan/internal/models"
)

type RunSQLite struct {
	db *sql.DB
}

func NewRunSQLite(db *sql.DB) *RunSQLite { return &RunSQLite{db: db} }

const insertRunSQL = `
		INSERT INTO evaluation_runs (id, occurred_at, source, high_c, low_c, min_hold_s, summary)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

// Append inserts a run. If ID or OccurredAt are empty, they're set.
func (r *RunSQLite) Append(ctx context.Context, run models.EvaluationRun) error {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.OccurredAt.IsZero() {
		run.OccurredAt = time.Now()
	}

	var summary *string
	if run.Summary != nil {
		b, err := json.Marshal(run.Summary)
		if err != nil {
			return fmt.Errorf("encode run summary: %w", err)
		}
		s := string(b)
		summary = &s
	}

	_, err := r.db.ExecContext(ctx, insertRunSQL,
		run.ID,
		formatTimestamp(run.OccurredAt),
		strings.ToLower(strings.TrimSpace(run.Source)),
		run.HighC,
		run.LowC,
		run.MinHoldS,
		summary,
	)
	if err != nil {
		return fmt.Errorf("insert evaluation run: %w", err)
	}
	return nil
}

// List returns runs filtered by [from, to] (inclusive) and/or source, ordered ASC.
func (r *RunSQLite) List(ctx context.Context, from, to time.Time, source string) ([]models.EvaluationRun, error) {
	var (
		conds []string
		args  []any
	)

	if !from.IsZero() {
		conds = append(conds, "occurred_at >= ?")
		args = append(args, formatTimestamp(from))
	}
	if !to.IsZero() {
		conds = append(conds, "occurred_at <= ?")
		args = append(args, formatTimestamp(to))
	}
	if source = strings.ToLower(strings.TrimSpace(source)); source != "" {
		conds = append(conds, "source = ?")
		args = append(args, source)
	}

	q := `SELECT id, occurred_at, source, high_c, low_c, min_hold_s, summary FROM evaluation_runs`
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY occurred_at ASC"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("select evaluation runs: %w", err)
	}
	defer rows.Close()

	out := make([]models.EvaluationRun, 0, 32)
	for rows.Next() {
		var (
			run     models.EvaluationRun
			ts      string
			summary sql.NullString
		)
		if err := rows.Scan(&run.ID, &ts, &run.Source, &run.HighC, &run.LowC, &run.MinHoldS, &summary); err != nil {
			return nil, err
		}
		if run.OccurredAt, err = parseTimestamp(ts); err != nil {
			return nil, fmt.Errorf("run %s: bad occurred_at %q: %w", run.ID, ts, err)
		}

		if summary.Valid && summary.String != "" {
			var v any
			if err := json.Unmarshal([]byte(summary.String), &v); err == nil {
				run.Summary = v
			} else {
				run.Summary = summary.String // keep raw if malformed
			}
		}
		out = append(out, run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

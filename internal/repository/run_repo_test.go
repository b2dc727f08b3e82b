package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"smart_fan/internal/models"
)

func newRunRepo(t *testing.T) (*RunSQLite, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet sqlmock expectations: %v", err)
		}
		_ = db.Close()
	})
	return NewRunSQLite(db), mock
}

func TestRunAppend_WithDefaults(t *testing.T) {
	repo, mock := newRunRepo(t)

	mock.ExpectExec(regexp.QuoteMeta(insertRunSQL)).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), "live", 26.0, 25.5, 120.0, `{"saved_pct":50}`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Append(context.Background(), models.EvaluationRun{
		Source:   " LIVE ",
		HighC:    26.0,
		LowC:     25.5,
		MinHoldS: 120,
		Summary:  map[string]any{"saved_pct": 50},
	})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
}

func TestRunAppend_NilSummary(t *testing.T) {
	repo, mock := newRunRepo(t)
	mock.ExpectExec(regexp.QuoteMeta(insertRunSQL)).
		WithArgs("run-1", "2026-02-07 14:00:00.000000000", "csv", 26.0, 25.5, 0.0, nil).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Append(context.Background(), models.EvaluationRun{
		ID:         "run-1",
		OccurredAt: time.Date(2026, 2, 7, 14, 0, 0, 0, time.UTC),
		Source:     "csv",
		HighC:      26.0,
		LowC:       25.5,
	})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
}

func TestRunList_FiltersAndDecodesSummary(t *testing.T) {
	repo, mock := newRunRepo(t)
	from := time.Date(2026, 2, 7, 0, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"id", "occurred_at", "source", "high_c", "low_c", "min_hold_s", "summary"}).
		AddRow("a", "2026-02-07 10:00:00.000000000", "inline", 26.0, 25.5, 120.0, `{"saved_pct":12.5}`).
		AddRow("b", "2026-02-07 11:00:00.000000000", "inline", 26.0, 25.5, 120.0, `not-json`).
		AddRow("c", "2026-02-07 12:00:00.000000000", "inline", 26.0, 25.5, 120.0, nil)

	mock.ExpectQuery(`SELECT id, occurred_at, source, high_c, low_c, min_hold_s, summary FROM evaluation_runs WHERE occurred_at >= \? AND source = \? ORDER BY occurred_at ASC`).
		WithArgs("2026-02-07 00:00:00.000000000", "inline").
		WillReturnRows(rows)

	got, err := repo.List(context.Background(), from, time.Time{}, " Inline ")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 runs, got %d", len(got))
	}
	m, ok := got[0].Summary.(map[string]any)
	if !ok || m["saved_pct"] != 12.5 {
		t.Fatalf("unexpected decoded summary %#v", got[0].Summary)
	}
	if got[1].Summary != "not-json" {
		t.Fatalf("expected raw summary kept, got %#v", got[1].Summary)
	}
	if got[2].Summary != nil {
		t.Fatalf("expected nil summary, got %#v", got[2].Summary)
	}
}

func TestRunList_NoFilters(t *testing.T) {
	repo, mock := newRunRepo(t)
	mock.ExpectQuery(`FROM evaluation_runs ORDER BY occurred_at ASC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "occurred_at", "source", "high_c", "low_c", "min_hold_s", "summary"}))

	got, err := repo.List(context.Background(), time.Time{}, time.Time{}, "")
	if err != nil || len(got) != 0 {
		t.Fatalf("List = %v, %v", got, err)
	}
}

func TestRunList_QueryError(t *testing.T) {
	repo, mock := newRunRepo(t)
	mock.ExpectQuery(`FROM evaluation_runs`).WillReturnError(errors.New("boom"))
	if _, err := repo.List(context.Background(), time.Time{}, time.Time{}, ""); err == nil {
		t.Fatalf("expected error")
	}
}

package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"smart_fan/internal/models"
	"smart_fan/internal/repository/db"
)

// Runs the repositories against a real SQLite file to check that the
// stored timestamp format orders and filters correctly.
func TestRepositories_SQLite(t *testing.T) {
	conn, err := db.InitDB(filepath.Join(t.TempDir(), "repo.db"))
	if err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	defer conn.Close()

	repos := NewRepository(conn)
	ctx := context.Background()
	start := time.Date(2026, 2, 7, 14, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		err := repos.Readings.Append(ctx, models.Reading{
			CreatedAt: start.Add(time.Duration(i) * time.Minute),
			DeviceID:  "fan-1",
			TempC:     24 + float64(i),
			FanMode:   models.FanModeLow,
		})
		if err != nil {
			t.Fatalf("append reading %d: %v", i, err)
		}
	}
	if err := repos.Readings.Append(ctx, models.Reading{CreatedAt: start, DeviceID: "fan-2"}); err != nil {
		t.Fatal(err)
	}

	latest, err := repos.Readings.Latest(ctx, "fan-1", 3)
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if len(latest) != 3 || latest[0].TempC != 26 || latest[2].TempC != 28 {
		t.Fatalf("unexpected latest readings %+v", latest)
	}

	for i, src := range []string{models.SourceInline, models.SourceLive, models.SourceInline} {
		err := repos.Runs.Append(ctx, models.EvaluationRun{
			OccurredAt: start.Add(time.Duration(i) * time.Hour),
			Source:     src,
			HighC:      26,
			LowC:       25.5,
			Summary:    map[string]float64{"saved_pct": float64(i)},
		})
		if err != nil {
			t.Fatalf("append run %d: %v", i, err)
		}
	}
	runs, err := repos.Runs.List(ctx, start.Add(30*time.Minute), time.Time{}, models.SourceInline)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(runs) != 1 || !runs[0].OccurredAt.Equal(start.Add(2*time.Hour)) {
		t.Fatalf("unexpected runs %+v", runs)
	}

	id, err := repos.Auth.Create(ctx, "alice", "hash")
	if err != nil || id == 0 {
		t.Fatalf("Create user = %d, %v", id, err)
	}
	if _, err := repos.Auth.Create(ctx, "alice", "other"); !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("duplicate Create err = %v, want ErrUsernameTaken", err)
	}
	u, err := repos.Auth.GetByUsername(ctx, "alice")
	if err != nil || u == nil || u.ID != id {
		t.Fatalf("GetByUsername = %+v, %v", u, err)
	}
}

package repository

import (
	"context"
	"database/sql"
	"time"

	"smart_fan/internal/models"
)

type Authorization interface {
	Create(ctx context.Context, username, hash string) (int, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

type ReadingRepo interface {
	Append(ctx context.Context, r models.Reading) error
	Latest(ctx context.Context, deviceID string, limit int) ([]models.Reading, error)
}

type RunRepo interface {
	Append(ctx context.Context, run models.EvaluationRun) error
	List(ctx context.Context, from, to time.Time, source string) ([]models.EvaluationRun, error)
}

type Repository struct {
	Readings ReadingRepo
	Runs     RunRepo
	Auth     Authorization
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Readings: NewReadingSQLite(db),
		Runs:     NewRunSQLite(db),
		Auth:     NewUserRepository(db),
	}
}

// timestampLayout is fixed-width so that text comparison in SQL orders
// timestamps correctly. All stored values are UTC.
const timestampLayout = "2006-01-02 15:04:05.000000000"

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

func parseTimestamp(s string) (time.Time, error) {
	return time.ParseInLocation(timestampLayout, s, time.UTC)
}

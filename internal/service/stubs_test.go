package service

import (
	"context"
	"sync"
	"time"

	"smart_fan/internal/models"
)

// fakeReadingRepo is an in-memory repository.ReadingRepo.
type fakeReadingRepo struct {
	mu       sync.Mutex
	appended []models.Reading
	latest   []models.Reading
	err      error

	gotDevice string
	gotLimit  int
}

func (f *fakeReadingRepo) Append(_ context.Context, r models.Reading) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.appended = append(f.appended, r)
	return nil
}

func (f *fakeReadingRepo) Latest(_ context.Context, deviceID string, limit int) ([]models.Reading, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gotDevice = deviceID
	f.gotLimit = limit
	return f.latest, f.err
}

// fakeRunRepo captures appended runs and List arguments.
type fakeRunRepo struct {
	appended  []models.EvaluationRun
	appendErr error

	runs    []models.EvaluationRun
	listErr error
	calls   int
	gotFrom time.Time
	gotTo   time.Time
	gotSrc  string
}

func (f *fakeRunRepo) Append(_ context.Context, run models.EvaluationRun) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.appended = append(f.appended, run)
	return nil
}

func (f *fakeRunRepo) List(_ context.Context, from, to time.Time, source string) ([]models.EvaluationRun, error) {
	f.calls++
	f.gotFrom, f.gotTo, f.gotSrc = from, to, source
	return f.runs, f.listErr
}

func mustTimeIn(loc *time.Location, y int, m time.Month, d, hh, mm, ss int) time.Time {
	return time.Date(y, m, d, hh, mm, ss, 0, loc)
}

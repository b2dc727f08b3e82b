package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"smart_fan/internal/models"
	"smart_fan/internal/repository"
)

type RunLogService struct {
	runRepo repository.RunRepo
}

func NewRunLogService(runRepo repository.RunRepo) *RunLogService {
	return &RunLogService{runRepo: runRepo}
}

var errInvalidTimeRange = errors.New("invalid time range: from must be <= to")

// normalizeToUTC returns t in UTC, preserving zero time values.
func normalizeToUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}

func normalizeAndValidateFilter(f RunFilter) (RunFilter, error) {
	out := RunFilter{
		From:   normalizeToUTC(f.From),
		To:     normalizeToUTC(f.To),
		Source: strings.ToLower(strings.TrimSpace(f.Source)),
	}
	if !out.From.IsZero() && !out.To.IsZero() && out.From.After(out.To) {
		return RunFilter{}, fmt.Errorf("%w: %w", ErrInvalidInput, errInvalidTimeRange)
	}
	return out, nil
}

func (s *RunLogService) List(ctx context.Context, f RunFilter) ([]models.EvaluationRun, error) {
	f, err := normalizeAndValidateFilter(f)
	if err != nil {
		return nil, err
	}
	return s.runRepo.List(ctx, f.From, f.To, f.Source)
}

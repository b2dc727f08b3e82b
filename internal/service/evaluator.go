package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"smart_fan/internal/control"
	"smart_fan/internal/impact"
	"smart_fan/internal/logger"
	"smart_fan/internal/models"
	"smart_fan/internal/repository"
)

type EvaluatorService struct {
	readings  repository.ReadingRepo
	runs      repository.RunRepo
	defaults  Defaults
	liveLimit int
	log       *logger.Logger
	now       func() time.Time
}

func NewEvaluatorService(readings repository.ReadingRepo, runs repository.RunRepo, opts Options) *EvaluatorService {
	d := Defaults{Policy: opts.Policy, Rates: opts.Rates, Projection: opts.Projection}
	if d.Rates == (impact.Rates{}) {
		d.Rates = impact.DefaultRates()
	}
	if d.Projection == (impact.Projection{}) {
		d.Projection = impact.DefaultProjection()
	}
	limit := opts.LiveLimit
	if limit <= 0 {
		limit = defaultReadingLimit
	}
	log := opts.Log
	if log == nil {
		log = logger.Nop()
	}
	return &EvaluatorService{
		readings:  readings,
		runs:      runs,
		defaults:  d,
		liveLimit: limit,
		log:       log,
		now:       time.Now,
	}
}

func (s *EvaluatorService) Defaults() Defaults { return s.defaults }

// Evaluate runs the controller over the temperature series, masks the
// energy series with the resulting timeline and summarizes the savings.
// Both series are sorted by time first; ties keep their input order.
func (s *EvaluatorService) Evaluate(ctx context.Context, p EvaluateParams) (Evaluation, error) {
	policy := s.defaults.Policy
	if p.Policy != nil {
		policy = *p.Policy
	}
	if err := policy.Validate(); err != nil {
		return Evaluation{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	rates := s.defaults.Rates
	if p.Rates != nil {
		if err := p.Rates.Validate(); err != nil {
			return Evaluation{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		rates = *p.Rates
	}
	projection := s.defaults.Projection
	if p.Projection != nil {
		if err := p.Projection.Validate(); err != nil {
			return Evaluation{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		projection = *p.Projection
	}

	temps := append([]control.TemperatureSample(nil), p.Temperature...)
	control.SortTemperature(temps)
	energy := append([]control.EnergySample(nil), p.Energy...)
	control.SortEnergy(energy)

	timeline := control.Evaluate(temps, policy)
	masked := control.Mask(energy, timeline)
	summary := impact.Summarize(masked, rates)

	out := Evaluation{
		Source:      normalizeSource(p.Source),
		Policy:      policy,
		Timeline:    timeline,
		Masked:      masked,
		Transitions: timeline.Transitions(),
		Summary:     summary,
		Projection:  impact.Project(summary.OnFraction, projection, rates),
	}

	if p.Persist {
		run := models.EvaluationRun{
			ID:         uuid.NewString(),
			OccurredAt: s.now().UTC(),
			Source:     out.Source,
			HighC:      policy.HighC,
			LowC:       policy.LowC,
			MinHoldS:   policy.MinHold.Seconds(),
			Summary:    summary,
		}
		if err := s.runs.Append(ctx, run); err != nil {
			s.log.Errorw("evaluation_persist_failed", "source", out.Source, "err", err)
			return Evaluation{}, fmt.Errorf("persist evaluation: %w", err)
		}
		out.RunID = run.ID
	}

	s.log.Infow("evaluation_completed",
		"source", out.Source,
		"temperature_samples", len(temps),
		"energy_samples", len(energy),
		"transitions", out.Transitions,
		"saved_pct", summary.SavedPct,
		"run_id", out.RunID,
	)
	return out, nil
}

// EvaluateLive evaluates the latest readings of one device.
func (s *EvaluatorService) EvaluateLive(ctx context.Context, p LiveParams) (Evaluation, error) {
	device := strings.TrimSpace(p.DeviceID)
	if device == "" {
		return Evaluation{}, fmt.Errorf("%w: %w", ErrInvalidInput, errMissingDevice)
	}
	limit := p.Limit
	if limit <= 0 {
		limit = s.liveLimit
	}
	if limit > maxReadingLimit {
		limit = maxReadingLimit
	}

	readings, err := s.readings.Latest(ctx, device, limit)
	if err != nil {
		return Evaluation{}, fmt.Errorf("load readings for %q: %w", device, err)
	}
	temps, energy := ReadingsToSeries(readings, s.defaults.Projection.FanPowerW)

	return s.Evaluate(ctx, EvaluateParams{
		Temperature: temps,
		Energy:      energy,
		Policy:      p.Policy,
		Source:      models.SourceLive,
		Persist:     p.Persist,
	})
}

func normalizeSource(src string) string {
	src = strings.ToLower(strings.TrimSpace(src))
	if src == "" {
		return models.SourceInline
	}
	return src
}

package service

import (
	"context"
	"errors"
	"time"

	"smart_fan/internal/control"
	"smart_fan/internal/impact"
	"smart_fan/internal/logger"
	"smart_fan/internal/models"
	"smart_fan/internal/repository"
)

// ErrInvalidInput marks caller mistakes; handlers answer them with 400.
var ErrInvalidInput = errors.New("invalid input")

type Authorization interface {
	SignUp(ctx context.Context, username, password string) (int, error)
	GenerateToken(ctx context.Context, username, password string) (string, error)
	ParseToken(accessToken string) (int, error)
}

// Evaluator runs the fan policy over a session and reports the savings.
type Evaluator interface {
	Evaluate(ctx context.Context, p EvaluateParams) (Evaluation, error)
	EvaluateLive(ctx context.Context, p LiveParams) (Evaluation, error)
	Defaults() Defaults
}

// Telemetry stores and reads device readings.
type Telemetry interface {
	Ingest(ctx context.Context, in ReadingInput) (models.Reading, error)
	Latest(ctx context.Context, f ReadingFilter) ([]models.Reading, error)
}

// RunLog exposes the evaluation history with filtering access.
type RunLog interface {
	List(ctx context.Context, f RunFilter) ([]models.EvaluationRun, error)
}

// Simulator feeds synthetic readings until ctx is canceled.
type Simulator interface {
	Run(ctx context.Context, tick time.Duration)
}

type Service struct {
	Evaluator
	Telemetry
	RunLog
	Simulator
	Authorization
}

// Options carries the configured defaults into the services.
type Options struct {
	Policy     control.Policy
	Rates      impact.Rates
	Projection impact.Projection
	Auth       AuthOptions
	LiveLimit  int
	DeviceID   string // simulated device
	Seed       uint64 // simulator noise; 0 picks a time-based seed
	Log        *logger.Logger
}

func NewService(repos *repository.Repository, opts Options) *Service {
	if opts.Log == nil {
		opts.Log = logger.Nop()
	}
	telemetry := NewTelemetryService(repos.Readings, opts.LiveLimit, opts.Log)
	return &Service{
		Evaluator:     NewEvaluatorService(repos.Readings, repos.Runs, opts),
		Telemetry:     telemetry,
		RunLog:        NewRunLogService(repos.Runs),
		Simulator:     NewSimulatorService(telemetry, opts.DeviceID, opts.Seed, opts.Log),
		Authorization: NewAuthService(repos.Auth, opts.Auth),
	}
}

package service

import (
	"time"

	"smart_fan/internal/control"
	"smart_fan/internal/impact"
	"smart_fan/internal/report"
)

// EvaluateParams describes one evaluation. Nil overrides fall back to the
// configured defaults.
type EvaluateParams struct {
	Temperature []control.TemperatureSample
	Energy      []control.EnergySample
	Policy      *control.Policy
	Rates       *impact.Rates
	Projection  *impact.Projection
	Source      string // inline | live | csv
	Persist     bool
}

type LiveParams struct {
	DeviceID string
	Limit    int // 0 uses the configured live limit
	Policy   *control.Policy
	Persist  bool
}

// ReadingInput is a reading as reported by a device. A nil PowerW or an
// empty FanMode is filled from the firmware table.
type ReadingInput struct {
	DeviceID  string
	TempC     float64
	PowerW    *float64
	FanMode   string
	CreatedAt time.Time // zero means now
}

type ReadingFilter struct {
	DeviceID string
	Limit    int
}

// RunFilter supports history filtering by time range and source.
type RunFilter struct {
	From   time.Time // inclusive; zero means no lower bound
	To     time.Time // inclusive; zero means no upper bound
	Source string
}

type Defaults struct {
	Policy     control.Policy    `json:"policy"`
	Rates      impact.Rates      `json:"rates"`
	Projection impact.Projection `json:"projection"`
}

// Evaluation is the full outcome of one policy run.
type Evaluation struct {
	RunID       string                       `json:"run_id,omitempty"`
	Source      string                       `json:"source"`
	Policy      control.Policy               `json:"policy"`
	Timeline    control.FanTimeline          `json:"timeline"`
	Masked      []control.MaskedEnergySample `json:"masked"`
	Transitions int                          `json:"transitions"`
	Summary     impact.Summary               `json:"summary"`
	Projection  impact.ProjectedImpact       `json:"projection"`
}

// Report drops the per-sample series.
func (e Evaluation) Report() report.Report {
	return report.Report{
		Policy:      e.Policy,
		Samples:     len(e.Timeline),
		Transitions: e.Transitions,
		Summary:     e.Summary,
		Projection:  e.Projection,
	}
}

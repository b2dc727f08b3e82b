package models

import "time"

// Run sources.
const (
	SourceInline = "inline"
	SourceLive   = "live"
	SourceCSV    = "csv"
)

// EvaluationRun records one policy evaluation and its outcome.
type EvaluationRun struct {
	ID         string    `json:"id"`
	OccurredAt time.Time `json:"occurred_at"`
	Source     string    `json:"source"`
	HighC      float64   `json:"high_c"`
	LowC       float64   `json:"low_c"`
	MinHoldS   float64   `json:"min_hold_s"`
	Summary    any       `json:"summary,omitempty"`
}

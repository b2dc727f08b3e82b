package control

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidThresholds = errors.New("invalid thresholds: high must be >= low")
	ErrNegativeHold      = errors.New("invalid min hold: must be >= 0")
	ErrNonMonotonic      = errors.New("timestamps are not non-decreasing")
)

// OrderError reports the first sample whose timestamp precedes its predecessor.
type OrderError struct {
	Series string
	Index  int
	Prev   time.Time
	Time   time.Time
}

func (e *OrderError) Error() string {
	return fmt.Sprintf("%s[%d] at %s precedes %s", e.Series, e.Index,
		e.Time.Format(time.RFC3339Nano), e.Prev.Format(time.RFC3339Nano))
}

func (e *OrderError) Unwrap() error { return ErrNonMonotonic }

package control

import (
	"fmt"
	"math"
	"time"
)

// Policy configures the hysteresis controller.
// The fan turns on at or above HighC and off at or below LowC, and never
// switches twice within MinHold.
type Policy struct {
	HighC   float64       `json:"high_c"`
	LowC    float64       `json:"low_c"`
	MinHold time.Duration `json:"min_hold"`
}

// NewPolicy returns a validated policy.
func NewPolicy(highC, lowC float64, minHold time.Duration) (Policy, error) {
	p := Policy{HighC: highC, LowC: lowC, MinHold: minHold}
	if err := p.Validate(); err != nil {
		return Policy{}, err
	}
	return p, nil
}

// Validate rejects policies that would make the hysteresis band meaningless.
func (p Policy) Validate() error {
	if math.IsNaN(p.HighC) || math.IsNaN(p.LowC) {
		return fmt.Errorf("%w: thresholds must be numbers", ErrInvalidThresholds)
	}
	if p.HighC < p.LowC {
		return fmt.Errorf("%w: high %.2f < low %.2f", ErrInvalidThresholds, p.HighC, p.LowC)
	}
	if p.MinHold < 0 {
		return fmt.Errorf("%w: got %s", ErrNegativeHold, p.MinHold)
	}
	return nil
}

// State is the controller memory carried between samples.
// The zero value is the initial state: fan off and no switch recorded yet.
// Seeded=false means LastSwitch is unset; the first sample seeds it.
type State struct {
	FanOn      bool      `json:"fan_on"`
	LastSwitch time.Time `json:"last_switch"`
	Seeded     bool      `json:"seeded"`
}

// Step advances the controller by one sample.
//
// The dwell timer is seeded with the first sample's own timestamp: the first
// switch is allowed once MinHold has passed since the first observation, or
// immediately when MinHold is zero. The timer only restarts on an actual
// transition.
func Step(st State, s TemperatureSample, p Policy) (State, FanPoint) {
	if !st.Seeded {
		st.LastSwitch = s.Time
		st.Seeded = true
	}

	canSwitch := s.Time.Sub(st.LastSwitch) >= p.MinHold

	switch {
	case !st.FanOn && canSwitch && s.TempC >= p.HighC:
		st.FanOn = true
		st.LastSwitch = s.Time
	case st.FanOn && canSwitch && s.TempC <= p.LowC:
		st.FanOn = false
		st.LastSwitch = s.Time
	}

	return st, FanPoint{Time: s.Time, FanOn: st.FanOn}
}

// Resume runs the controller over samples starting from st and returns the
// timeline together with the state after the last sample.
// Feeding the returned state into the next call continues the same run.
func Resume(st State, samples []TemperatureSample, p Policy) (FanTimeline, State) {
	out := make(FanTimeline, 0, len(samples))
	for _, s := range samples {
		var pt FanPoint
		st, pt = Step(st, s, p)
		out = append(out, pt)
	}
	return out, st
}

// Evaluate runs a fresh controller over samples.
// The policy is not validated here; use NewPolicy or Policy.Validate first.
func Evaluate(samples []TemperatureSample, p Policy) FanTimeline {
	tl, _ := Resume(State{}, samples, p)
	return tl
}

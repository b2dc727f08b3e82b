// Package impact reduces a masked energy series into the numbers shown to
// users: energy totals, savings, cost and emissions.
package impact

import (
	"errors"
	"math"

	"smart_fan/internal/control"
)

const (
	wattHoursPerKWh = 1000.0
	daysPerMonth    = 30.0

	DefaultPricePerKWh = 0.30 // $/kWh
	DefaultKgCO2PerKWh = 0.40 // kg CO2e/kWh
)

// Rates converts energy into money and emissions.
type Rates struct {
	PricePerKWh float64 `json:"price_per_kwh" mapstructure:"rate_per_kwh"`
	KgCO2PerKWh float64 `json:"kg_co2_per_kwh" mapstructure:"co2_per_kwh"`
}

// DefaultRates returns the placeholder tariff and grid intensity.
func DefaultRates() Rates {
	return Rates{PricePerKWh: DefaultPricePerKWh, KgCO2PerKWh: DefaultKgCO2PerKWh}
}

var ErrInvalidRates = errors.New("impact: rates must be positive numbers")

func (r Rates) Validate() error {
	if !positive(r.PricePerKWh) || !positive(r.KgCO2PerKWh) {
		return ErrInvalidRates
	}
	return nil
}

func positive(v float64) bool { return v > 0 && !math.IsInf(v, 0) }

// Summary compares the always-on baseline with the controlled fan.
type Summary struct {
	BaselineWh    float64 `json:"baseline_wh"`
	SmartWh       float64 `json:"smart_wh"`
	SavedWh       float64 `json:"saved_wh"`
	SavedPct      float64 `json:"saved_pct"`
	OnFraction    float64 `json:"on_fraction"`
	BaselineCost  float64 `json:"baseline_cost"`
	SmartCost     float64 `json:"smart_cost"`
	SavedCost     float64 `json:"saved_cost"`
	BaselineKgCO2 float64 `json:"baseline_kg_co2"`
	SmartKgCO2    float64 `json:"smart_kg_co2"`
	SavedKgCO2    float64 `json:"saved_kg_co2"`
}

// Summarize reduces a masked series.
//
// The baseline total is the energy drawn across the series (last minus first
// cumulative reading), which is the quantity the masked series is measured
// against. OnFraction is the share of energy samples gated on.
func Summarize(masked []control.MaskedEnergySample, r Rates) Summary {
	if len(masked) == 0 {
		return Summary{}
	}

	first, last := masked[0], masked[len(masked)-1]
	s := Summary{
		BaselineWh: last.BaselineWh - first.BaselineWh,
		SmartWh:    last.MaskedCumulativeWh,
	}
	s.SavedWh = s.BaselineWh - s.SmartWh
	if s.BaselineWh > 0 {
		s.SavedPct = s.SavedWh / s.BaselineWh * 100
	}

	on := 0
	for _, m := range masked {
		if m.FanOn {
			on++
		}
	}
	s.OnFraction = float64(on) / float64(len(masked))

	baselineKWh := s.BaselineWh / wattHoursPerKWh
	smartKWh := s.SmartWh / wattHoursPerKWh

	s.BaselineCost = baselineKWh * r.PricePerKWh
	s.SmartCost = smartKWh * r.PricePerKWh
	s.SavedCost = s.BaselineCost - s.SmartCost

	s.BaselineKgCO2 = baselineKWh * r.KgCO2PerKWh
	s.SmartKgCO2 = smartKWh * r.KgCO2PerKWh
	s.SavedKgCO2 = s.BaselineKgCO2 - s.SmartKgCO2

	return s
}

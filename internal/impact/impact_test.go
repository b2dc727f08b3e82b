package impact

import (
	"math"
	"testing"
	"time"

	"smart_fan/internal/control"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func masked(baseline []float64, on []bool) []control.MaskedEnergySample {
	start := time.Date(2026, 2, 7, 14, 0, 0, 0, time.UTC)
	energy := make([]control.EnergySample, len(baseline))
	tl := make(control.FanTimeline, len(on))
	for i := range baseline {
		energy[i] = control.EnergySample{Time: start.Add(time.Duration(i) * time.Minute), CumulativeWh: baseline[i]}
		tl[i] = control.FanPoint{Time: energy[i].Time, FanOn: on[i]}
	}
	return control.Mask(energy, tl)
}

func TestSummarize(t *testing.T) {
	r := Rates{PricePerKWh: 0.30, KgCO2PerKWh: 0.40}
	s := Summarize(masked([]float64{1000, 2000, 3000, 4000, 5000}, []bool{false, true, true, false, false}), r)

	if !near(s.BaselineWh, 4000) || !near(s.SmartWh, 2000) || !near(s.SavedWh, 2000) {
		t.Fatalf("unexpected totals %+v", s)
	}
	if !near(s.SavedPct, 50) {
		t.Fatalf("saved pct=%v, want 50", s.SavedPct)
	}
	if !near(s.OnFraction, 0.4) {
		t.Fatalf("on fraction=%v, want 0.4", s.OnFraction)
	}
	if !near(s.BaselineCost, 1.2) || !near(s.SmartCost, 0.6) || !near(s.SavedCost, 0.6) {
		t.Fatalf("unexpected cost %+v", s)
	}
	if !near(s.BaselineKgCO2, 1.6) || !near(s.SavedKgCO2, 0.8) {
		t.Fatalf("unexpected co2 %+v", s)
	}
}

func TestSummarize_EdgeCases(t *testing.T) {
	if s := Summarize(nil, DefaultRates()); s != (Summary{}) {
		t.Fatalf("empty input should give zero summary, got %+v", s)
	}

	flat := Summarize(masked([]float64{5, 5, 5}, []bool{true, true, true}), DefaultRates())
	if flat.SavedPct != 0 {
		t.Fatalf("saved pct must be 0 when nothing was drawn, got %v", flat.SavedPct)
	}

	allOn := Summarize(masked([]float64{2, 4, 6}, []bool{true, true, true}), DefaultRates())
	if !near(allOn.SavedWh, 0) || !near(allOn.SmartWh, allOn.BaselineWh) {
		t.Fatalf("all on must save nothing, got %+v", allOn)
	}
}

func TestProject(t *testing.T) {
	r := Rates{PricePerKWh: 0.30, KgCO2PerKWh: 0.40}
	p := Projection{FanPowerW: 5, HoursPerDay: 8, Devices: 1000}

	got := Project(0.25, p, r)
	// 3.75 W saved * 8 h / 1000 * 30 days = 0.9 kWh
	if !near(got.SavedAvgPowerW, 3.75) || !near(got.SavedKWhPerMonth, 0.9) {
		t.Fatalf("unexpected energy projection %+v", got)
	}
	if !near(got.SavedCostPerMonth, 0.27) || !near(got.SavedKgCO2PerMonth, 0.36) {
		t.Fatalf("unexpected per-device projection %+v", got)
	}
	if !near(got.FleetCostPerMonth, 270) || !near(got.FleetKgCO2PerMonth, 360) {
		t.Fatalf("unexpected fleet projection %+v", got)
	}

	if one := Project(1, Projection{FanPowerW: 5, HoursPerDay: 8}, r); one.Devices != 1 || one.SavedKWhPerMonth != 0 {
		t.Fatalf("always on should project no savings for at least one device, got %+v", one)
	}
}

func TestValidate(t *testing.T) {
	if err := DefaultRates().Validate(); err != nil {
		t.Fatalf("default rates: %v", err)
	}
	if err := DefaultProjection().Validate(); err != nil {
		t.Fatalf("default projection: %v", err)
	}
	for _, r := range []Rates{
		{PricePerKWh: 0, KgCO2PerKWh: 0.4},
		{PricePerKWh: 0.3, KgCO2PerKWh: -1},
		{PricePerKWh: math.NaN(), KgCO2PerKWh: 0.4},
		{PricePerKWh: math.Inf(1), KgCO2PerKWh: 0.4},
	} {
		if err := r.Validate(); err != ErrInvalidRates {
			t.Errorf("%+v: got %v", r, err)
		}
	}
	for _, p := range []Projection{
		{FanPowerW: -1, HoursPerDay: 8},
		{FanPowerW: 5, HoursPerDay: 25},
		{FanPowerW: math.NaN(), HoursPerDay: 8},
	} {
		if err := p.Validate(); err != ErrInvalidProjection {
			t.Errorf("%+v: got %v", p, err)
		}
	}
}

package control

import (
	"math"
	"math/rand"
	"testing"
	"time"
)

func energyAt(values ...float64) []EnergySample {
	out := make([]EnergySample, len(values))
	for i, v := range values {
		out[i] = EnergySample{Time: minutes(i), CumulativeWh: v}
	}
	return out
}

func timelineAt(states ...bool) FanTimeline {
	out := make(FanTimeline, len(states))
	for i, on := range states {
		out[i] = FanPoint{Time: minutes(i), FanOn: on}
	}
	return out
}

func cumulatives(m []MaskedEnergySample) []float64 {
	out := make([]float64, len(m))
	for i, s := range m {
		out[i] = s.MaskedCumulativeWh
	}
	return out
}

func almostEqual(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if math.Abs(a[i]-b[i]) > 1e-9 {
			return false
		}
	}
	return true
}

func TestMask_SameTimestamps(t *testing.T) {
	got := Mask(energyAt(0, 1, 2, 3, 4), timelineAt(false, false, true, true, false))
	// the increment ending at t2 and t3 is drawn while on; t4 is off again
	want := []float64{0, 0, 1, 2, 2}
	if c := cumulatives(got); !almostEqual(c, want) {
		t.Fatalf("got %v, want %v", c, want)
	}
	if got[0].DeltaWh != 0 {
		t.Fatalf("first delta must be 0, got %v", got[0].DeltaWh)
	}
	if got[4].DeltaWh != 1 || got[4].MaskedDeltaWh != 0 || got[4].FanOn {
		t.Fatalf("unexpected last sample %+v", got[4])
	}
}

func TestMask_BackwardLookupAcrossCadences(t *testing.T) {
	// controller every 2 minutes, meter every minute
	tl := FanTimeline{
		{Time: minutes(0), FanOn: false},
		{Time: minutes(2), FanOn: true},
		{Time: minutes(4), FanOn: false},
	}
	got := Mask(energyAt(0, 1, 2, 3, 4, 5), tl)
	wantOn := []bool{false, false, true, true, false, false}
	for i, s := range got {
		if s.FanOn != wantOn[i] {
			t.Fatalf("sample %d fan_on=%v want %v", i, s.FanOn, wantOn[i])
		}
	}
	if c := cumulatives(got); !almostEqual(c, []float64{0, 0, 1, 2, 2, 2}) {
		t.Fatalf("unexpected cumulative %v", c)
	}
}

func TestMask_UncoveredHistoryDefaultsOff(t *testing.T) {
	tl := FanTimeline{{Time: minutes(3), FanOn: true}}
	got := Mask(energyAt(0, 1, 2, 3, 4), tl)
	if c := cumulatives(got); !almostEqual(c, []float64{0, 0, 0, 1, 2}) {
		t.Fatalf("unexpected cumulative %v", c)
	}
	if got[2].FanOn {
		t.Fatalf("uncovered sample should be off")
	}
}

func TestMask_TiesUseLastEntry(t *testing.T) {
	tl := FanTimeline{
		{Time: minutes(1), FanOn: true},
		{Time: minutes(1), FanOn: false},
	}
	got := Mask(energyAt(0, 1, 2), tl)
	if got[1].FanOn || got[2].FanOn {
		t.Fatalf("expected last tied entry (off) to govern, got %+v", got)
	}
}

func TestMask_NegativeDeltaPassesThrough(t *testing.T) {
	got := Mask(energyAt(0, 2, 1), timelineAt(true, true, true))
	if got[2].MaskedDeltaWh != -1 {
		t.Fatalf("negative delta should pass through unclamped, got %v", got[2].MaskedDeltaWh)
	}
	if c := cumulatives(got); !almostEqual(c, []float64{0, 2, 1}) {
		t.Fatalf("unexpected cumulative %v", c)
	}
}

func TestMask_EmptyInputs(t *testing.T) {
	if got := Mask(nil, timelineAt(true)); len(got) != 0 {
		t.Fatalf("expected empty output, got %d", len(got))
	}
	got := Mask(energyAt(0, 1, 2), nil)
	if c := cumulatives(got); !almostEqual(c, []float64{0, 0, 0}) {
		t.Fatalf("no timeline must mean all off, got %v", c)
	}
}

func TestMask_AllOnAndAllOff(t *testing.T) {
	energy := energyAt(3, 4.5, 4.5, 7, 10)
	allOn := Mask(energy, timelineAt(true, true, true, true, true))
	for i, s := range allOn {
		if want := energy[i].CumulativeWh - energy[0].CumulativeWh; math.Abs(s.MaskedCumulativeWh-want) > 1e-9 {
			t.Fatalf("all on: sample %d got %v want %v", i, s.MaskedCumulativeWh, want)
		}
	}
	allOff := Mask(energy, timelineAt(false, false, false, false, false))
	for i, s := range allOff {
		if s.MaskedCumulativeWh != 0 {
			t.Fatalf("all off: sample %d got %v", i, s.MaskedCumulativeWh)
		}
	}
}

func TestMask_UnsortedEnergyMatchesAsOfLookup(t *testing.T) {
	tl := timelineAt(false, true, true, false, true)
	energy := []EnergySample{
		{Time: minutes(4), CumulativeWh: 1},
		{Time: minutes(1), CumulativeWh: 2},
		{Time: minutes(3), CumulativeWh: 3},
		{Time: minutes(2), CumulativeWh: 4},
	}
	for i, s := range Mask(energy, tl) {
		want, _ := tl.At(energy[i].Time)
		if s.FanOn != want {
			t.Fatalf("sample %d fan_on=%v want %v", i, s.FanOn, want)
		}
	}
}

func TestMask_MonotoneProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for round := 0; round < 100; round++ {
		energy := make([]EnergySample, 60)
		ts, cum := t0, rng.Float64()*10
		for i := range energy {
			ts = ts.Add(time.Duration(1+rng.Intn(120)) * time.Second)
			cum += rng.Float64()
			energy[i] = EnergySample{Time: ts, CumulativeWh: cum}
		}
		tl := make(FanTimeline, 40)
		tts := t0.Add(time.Duration(rng.Intn(600)) * time.Second)
		for i := range tl {
			tts = tts.Add(time.Duration(rng.Intn(180)) * time.Second)
			tl[i] = FanPoint{Time: tts, FanOn: rng.Intn(2) == 0}
		}

		got := Mask(energy, tl)
		for i := range got {
			if i > 0 && got[i].MaskedCumulativeWh < got[i-1].MaskedCumulativeWh {
				t.Fatalf("round %d: masked cumulative decreased at %d", round, i)
			}
			if limit := energy[i].CumulativeWh - energy[0].CumulativeWh; got[i].MaskedCumulativeWh > limit+1e-9 {
				t.Fatalf("round %d: masked %v exceeds baseline span %v at %d", round, got[i].MaskedCumulativeWh, limit, i)
			}
		}
	}
}

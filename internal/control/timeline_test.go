package control

import (
	"errors"
	"testing"
)

func TestFanTimeline_At(t *testing.T) {
	tl := timelineAt(false, true, false)
	cases := []struct {
		name        string
		minute      int
		wantOn      bool
		wantCovered bool
	}{
		{"before start", -1, false, false},
		{"exact first", 0, false, true},
		{"exact on", 1, true, true},
		{"after end", 10, false, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			on, covered := tl.At(minutes(tc.minute))
			if on != tc.wantOn || covered != tc.wantCovered {
				t.Fatalf("At(%d) = (%v, %v), want (%v, %v)", tc.minute, on, covered, tc.wantOn, tc.wantCovered)
			}
		})
	}
}

func TestFanTimeline_Stats(t *testing.T) {
	tl := timelineAt(false, true, true, false)
	if tl.Transitions() != 2 {
		t.Fatalf("transitions=%d, want 2", tl.Transitions())
	}
	if tl.OnFraction() != 0.5 {
		t.Fatalf("on fraction=%v, want 0.5", tl.OnFraction())
	}
	if (FanTimeline{}).OnFraction() != 0 {
		t.Fatalf("empty timeline on fraction must be 0")
	}
}

func TestOrderChecks(t *testing.T) {
	good := series(1, 2, 3)
	if err := CheckTemperatureOrder(good); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bad := []EnergySample{{Time: minutes(2)}, {Time: minutes(2)}, {Time: minutes(1)}}
	err := CheckEnergyOrder(bad)
	if !errors.Is(err, ErrNonMonotonic) {
		t.Fatalf("expected ErrNonMonotonic, got %v", err)
	}
	var oe *OrderError
	if !errors.As(err, &oe) || oe.Index != 2 || oe.Series != "energy" {
		t.Fatalf("unexpected order error %#v", err)
	}

	if err := CheckTimelineOrder(timelineAt(true, false)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSortTemperature_StableOnTies(t *testing.T) {
	s := []TemperatureSample{
		{Time: minutes(2), TempC: 1},
		{Time: minutes(1), TempC: 2},
		{Time: minutes(1), TempC: 3},
	}
	SortTemperature(s)
	if s[0].TempC != 2 || s[1].TempC != 3 || s[2].TempC != 1 {
		t.Fatalf("unexpected order %+v", s)
	}

	e := []EnergySample{{Time: minutes(1), CumulativeWh: 5}, {Time: minutes(0), CumulativeWh: 4}}
	SortEnergy(e)
	if e[0].CumulativeWh != 4 {
		t.Fatalf("unexpected order %+v", e)
	}
}

package control

// Mask gates each baseline energy increment by the fan decision in force at
// the energy sample's timestamp.
//
// The increment between two energy samples is attributed to the later one and
// kept only when the fan was on at that moment; energy samples that predate the
// whole timeline count as fan off. Negative increments pass through unchanged
// when the fan is on. An empty energy series yields an empty result.
func Mask(energy []EnergySample, timeline FanTimeline) []MaskedEnergySample {
	out := make([]MaskedEnergySample, 0, len(energy))
	cur := asOf{tl: timeline}
	if len(energy) > 0 {
		cur.last = energy[0].Time
	}

	var cumulative float64
	for i, e := range energy {
		var delta float64
		if i > 0 {
			delta = e.CumulativeWh - energy[i-1].CumulativeWh
		}

		on := cur.lookup(e.Time)
		var masked float64
		if on {
			masked = delta
		}
		cumulative += masked

		out = append(out, MaskedEnergySample{
			Time:               e.Time,
			BaselineWh:         e.CumulativeWh,
			DeltaWh:            delta,
			FanOn:              on,
			MaskedDeltaWh:      masked,
			MaskedCumulativeWh: cumulative,
		})
	}
	return out
}

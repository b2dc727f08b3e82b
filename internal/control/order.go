package control

import (
	"sort"
	"time"
)

// The controller and the masking engine assume every series is sorted by
// time. These helpers let collaborators check or establish that.

// CheckTemperatureOrder returns an *OrderError for the first sample earlier
// than its predecessor.
func CheckTemperatureOrder(samples []TemperatureSample) error {
	return checkOrder("temperature", len(samples), func(i int) time.Time { return samples[i].Time })
}

// CheckEnergyOrder is CheckTemperatureOrder for energy samples.
func CheckEnergyOrder(samples []EnergySample) error {
	return checkOrder("energy", len(samples), func(i int) time.Time { return samples[i].Time })
}

// CheckTimelineOrder is CheckTemperatureOrder for controller output.
func CheckTimelineOrder(tl FanTimeline) error {
	return checkOrder("timeline", len(tl), func(i int) time.Time { return tl[i].Time })
}

func checkOrder(series string, n int, at func(int) time.Time) error {
	for i := 1; i < n; i++ {
		if at(i).Before(at(i - 1)) {
			return &OrderError{Series: series, Index: i, Prev: at(i - 1), Time: at(i)}
		}
	}
	return nil
}

// SortTemperature sorts in place by time, keeping input order among ties.
func SortTemperature(samples []TemperatureSample) {
	sort.SliceStable(samples, func(i, j int) bool { return samples[i].Time.Before(samples[j].Time) })
}

// SortEnergy sorts in place by time, keeping input order among ties.
func SortEnergy(samples []EnergySample) {
	sort.SliceStable(samples, func(i, j int) bool { return samples[i].Time.Before(samples[j].Time) })
}

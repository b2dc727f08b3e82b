// Package control holds the smart fan policy: a two-threshold hysteresis
// controller with a minimum dwell timer, and the masking engine that turns an
// always-on energy series into the energy the controlled fan would have drawn.
//
// Everything here is synchronous and allocation-bounded by the output. Inputs
// are expected sorted by time; see the Check* helpers in order.go.
package control

import "time"

// TemperatureSample is a single temperature observation.
type TemperatureSample struct {
	Time  time.Time `json:"time"`
	TempC float64   `json:"temp_c"` // °C
}

// EnergySample is a cumulative baseline energy reading of an always-on device.
type EnergySample struct {
	Time         time.Time `json:"time"`
	CumulativeWh float64   `json:"cumulative_wh"` // Wh
}

// FanPoint is the controller decision at one temperature sample.
type FanPoint struct {
	Time  time.Time `json:"time"`
	FanOn bool      `json:"fan_on"`
}

// FanTimeline is the controller output, one point per temperature sample.
type FanTimeline []FanPoint

// MaskedEnergySample is one energy sample after gating by the fan timeline.
type MaskedEnergySample struct {
	Time               time.Time `json:"time"`
	BaselineWh         float64   `json:"baseline_wh"`
	DeltaWh            float64   `json:"delta_wh"`
	FanOn              bool      `json:"fan_on"`
	MaskedDeltaWh      float64   `json:"masked_delta_wh"`
	MaskedCumulativeWh float64   `json:"masked_cumulative_wh"`
}

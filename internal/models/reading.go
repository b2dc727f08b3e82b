package models

import "time"

// Fan modes reported by the device firmware.
const (
	FanModeOff    = "OFF"
	FanModeLow    = "LOW"
	FanModeMedium = "MEDIUM"
	FanModeHigh   = "HIGH"
)

// Reading is one telemetry sample from a fan controller.
type Reading struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	DeviceID  string    `json:"device_id"`
	TempC     float64   `json:"temp_c"`  // °C
	PowerW    float64   `json:"power_w"` // instantaneous draw
	FanMode   string    `json:"fan_mode"`
}

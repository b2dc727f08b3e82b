package impact

import (
	"errors"
	"math"
)

var ErrInvalidProjection = errors.New("impact: projection needs fan_power_w >= 0 and hours_per_day in [0, 24]")

// Projection describes how the fan is used outside the sampled window.
type Projection struct {
	FanPowerW   float64 `json:"fan_power_w" mapstructure:"fan_power_w"`
	HoursPerDay float64 `json:"hours_per_day" mapstructure:"hours_per_day"`
	Devices     int     `json:"devices" mapstructure:"devices"`
}

// DefaultProjection is one 5 W fan used 8 hours a day.
func DefaultProjection() Projection {
	return Projection{FanPowerW: 5, HoursPerDay: 8, Devices: 1}
}

func (p Projection) Validate() error {
	if math.IsNaN(p.FanPowerW) || math.IsInf(p.FanPowerW, 0) || p.FanPowerW < 0 {
		return ErrInvalidProjection
	}
	if math.IsNaN(p.HoursPerDay) || p.HoursPerDay < 0 || p.HoursPerDay > 24 {
		return ErrInvalidProjection
	}
	return nil
}

// ProjectedImpact is the monthly saving extrapolated from an on-fraction.
type ProjectedImpact struct {
	SavedAvgPowerW     float64 `json:"saved_avg_power_w"`
	SavedKWhPerMonth   float64 `json:"saved_kwh_per_month"`
	SavedCostPerMonth  float64 `json:"saved_cost_per_month"`
	SavedKgCO2PerMonth float64 `json:"saved_kg_co2_per_month"`
	Devices            int     `json:"devices"`
	FleetCostPerMonth  float64 `json:"fleet_cost_per_month"`
	FleetKgCO2PerMonth float64 `json:"fleet_kg_co2_per_month"`
}

// Project scales the observed on-fraction into a monthly saving.
// The baseline fan draws FanPowerW whenever it is in use; the controlled fan
// draws the same power only for onFraction of that time.
func Project(onFraction float64, p Projection, r Rates) ProjectedImpact {
	devices := p.Devices
	if devices < 1 {
		devices = 1
	}

	savedW := p.FanPowerW - p.FanPowerW*onFraction
	kwhPerMonth := savedW * p.HoursPerDay / wattHoursPerKWh * daysPerMonth

	out := ProjectedImpact{
		SavedAvgPowerW:     savedW,
		SavedKWhPerMonth:   kwhPerMonth,
		SavedCostPerMonth:  kwhPerMonth * r.PricePerKWh,
		SavedKgCO2PerMonth: kwhPerMonth * r.KgCO2PerKWh,
		Devices:            devices,
	}
	out.FleetCostPerMonth = out.SavedCostPerMonth * float64(devices)
	out.FleetKgCO2PerMonth = out.SavedKgCO2PerMonth * float64(devices)
	return out
}

package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"smart_fan/internal/control"
	"smart_fan/internal/logger"
	"smart_fan/internal/models"
	"smart_fan/internal/repository"
)

const (
	defaultReadingLimit = 600
	maxReadingLimit     = 5000
)

var (
	errMissingDevice = errors.New("device_id is required")
	errBadReading    = errors.New("temp_c and power_w must be finite, power_w >= 0")
	errBadFanMode    = errors.New("fan_mode must be OFF, LOW, MEDIUM or HIGH")
)

// fanStep is one row of the device firmware's temperature to fan mode table.
type fanStep struct {
	belowC float64
	mode   string
	powerW float64
}

var fanSteps = []fanStep{
	{belowC: 22.0, mode: models.FanModeOff, powerW: 0},
	{belowC: 25.0, mode: models.FanModeLow, powerW: 0.437},
	{belowC: 28.0, mode: models.FanModeMedium, powerW: 1.182},
	{belowC: math.Inf(1), mode: models.FanModeHigh, powerW: 2.949},
}

// FanModeFor mirrors the firmware: the mode and estimated draw it reports
// for a temperature.
func FanModeFor(tempC float64) (mode string, powerW float64) {
	for _, s := range fanSteps {
		if tempC < s.belowC {
			return s.mode, s.powerW
		}
	}
	last := fanSteps[len(fanSteps)-1]
	return last.mode, last.powerW
}

func powerForMode(mode string) float64 {
	for _, s := range fanSteps {
		if s.mode == mode {
			return s.powerW
		}
	}
	return 0
}

type TelemetryService struct {
	readings     repository.ReadingRepo
	defaultLimit int
	log          *logger.Logger
	now          func() time.Time
}

func NewTelemetryService(readings repository.ReadingRepo, defaultLimit int, log *logger.Logger) *TelemetryService {
	if defaultLimit <= 0 {
		defaultLimit = defaultReadingLimit
	}
	if log == nil {
		log = logger.Nop()
	}
	return &TelemetryService{readings: readings, defaultLimit: defaultLimit, log: log, now: time.Now}
}

// Ingest validates and stores one reading. A missing fan_mode or power_w is
// derived from temp_c with the firmware table; reported values are kept.
func (s *TelemetryService) Ingest(ctx context.Context, in ReadingInput) (models.Reading, error) {
	r := models.Reading{
		DeviceID:  strings.TrimSpace(in.DeviceID),
		TempC:     in.TempC,
		FanMode:   strings.ToUpper(strings.TrimSpace(in.FanMode)),
		CreatedAt: in.CreatedAt,
	}
	if r.DeviceID == "" {
		return models.Reading{}, fmt.Errorf("%w: %w", ErrInvalidInput, errMissingDevice)
	}

	if !finite(r.TempC) {
		return models.Reading{}, fmt.Errorf("%w: %w", ErrInvalidInput, errBadReading)
	}
	switch r.FanMode {
	case "":
		r.FanMode, r.PowerW = FanModeFor(r.TempC)
	case models.FanModeOff, models.FanModeLow, models.FanModeMedium, models.FanModeHigh:
		r.PowerW = powerForMode(r.FanMode)
	default:
		return models.Reading{}, fmt.Errorf("%w: %w", ErrInvalidInput, errBadFanMode)
	}
	if in.PowerW != nil {
		r.PowerW = *in.PowerW
	}
	if !finite(r.PowerW) || r.PowerW < 0 {
		return models.Reading{}, fmt.Errorf("%w: %w", ErrInvalidInput, errBadReading)
	}

	r.ID = uuid.NewString()
	if r.CreatedAt.IsZero() {
		r.CreatedAt = s.now()
	}
	r.CreatedAt = r.CreatedAt.UTC()

	if err := s.readings.Append(ctx, r); err != nil {
		s.log.Errorw("reading_store_failed", "device_id", r.DeviceID, "err", err)
		return models.Reading{}, err
	}
	s.log.Debugw("reading_stored", "device_id", r.DeviceID, "temp_c", r.TempC, "fan_mode", r.FanMode)
	return r, nil
}

// Latest returns the most recent readings of a device, oldest first.
func (s *TelemetryService) Latest(ctx context.Context, f ReadingFilter) ([]models.Reading, error) {
	device := strings.TrimSpace(f.DeviceID)
	if device == "" {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, errMissingDevice)
	}
	return s.readings.Latest(ctx, device, s.clampLimit(f.Limit))
}

func (s *TelemetryService) clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return s.defaultLimit
	case limit > maxReadingLimit:
		return maxReadingLimit
	default:
		return limit
	}
}

// ReadingsToSeries converts telemetry into the two series the controller
// and masking engine consume. Readings must be oldest first. The energy
// series is the always-on baseline: a fan drawing baselineW between
// readings, starting at 0 Wh. The power a device reports depends on its own
// firmware mode and is not used here.
func ReadingsToSeries(readings []models.Reading, baselineW float64) ([]control.TemperatureSample, []control.EnergySample) {
	temps := make([]control.TemperatureSample, len(readings))
	energy := make([]control.EnergySample, len(readings))

	cum := 0.0
	for i, r := range readings {
		if i > 0 {
			gap := r.CreatedAt.Sub(readings[i-1].CreatedAt).Hours()
			if gap > 0 {
				cum += baselineW * gap
			}
		}
		temps[i] = control.TemperatureSample{Time: r.CreatedAt, TempC: r.TempC}
		energy[i] = control.EnergySample{Time: r.CreatedAt, CumulativeWh: cum}
	}
	return temps, energy
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

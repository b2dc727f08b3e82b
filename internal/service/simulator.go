package service

import (
	"context"
	"math"
	"math/rand/v2"
	"time"

	"smart_fan/internal/control"
	"smart_fan/internal/logger"
	"smart_fan/internal/models"
)

// ----------- Simulation constants -----------
const (
	AmbientC   = 24.0 // room temperature at the start of a warm cycle °C
	PeakRiseC  = 4.0  // rise above ambient at the top of a cycle °C
	CycleTicks = 240  // ticks per warm/cool cycle
	NoiseStdC  = 0.2  // sensor noise σ °C
)

// SimulatorService stands in for a fan controller: every tick it produces a
// temperature reading and pushes it through telemetry ingest.
type SimulatorService struct {
	telemetry Telemetry
	deviceID  string
	rng       *rand.Rand
	log       *logger.Logger
	step      int
}

func NewSimulatorService(telemetry Telemetry, deviceID string, seed uint64, log *logger.Logger) *SimulatorService {
	if deviceID == "" {
		deviceID = "sim-fan-1"
	}
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	if log == nil {
		log = logger.Nop()
	}
	return &SimulatorService{
		telemetry: telemetry,
		deviceID:  deviceID,
		rng:       rand.New(rand.NewPCG(seed, seed>>1|1)),
		log:       log,
	}
}

// Run ticks at the given interval until ctx is canceled.
func (s *SimulatorService) Run(ctx context.Context, tick time.Duration) {
	s.log.Infow("simulator_started", "device_id", s.deviceID, "tick", tick.String())
	t := time.NewTicker(tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			s.log.Infow("simulator_stopped", "device_id", s.deviceID)
			return
		case now := <-t.C:
			_, _ = s.emit(ctx, now)
		}
	}
}

func (s *SimulatorService) emit(ctx context.Context, now time.Time) (models.Reading, error) {
	r, err := s.telemetry.Ingest(ctx, ReadingInput{
		DeviceID:  s.deviceID,
		CreatedAt: now.UTC(),
		TempC:     s.nextTemp(),
	})
	if err != nil {
		s.log.Warnw("simulator_ingest_failed", "device_id", s.deviceID, "err", err)
	}
	return r, err
}

// nextTemp walks a triangle wave from ambient up to ambient+PeakRiseC and
// back, with gaussian sensor noise on top.
func (s *SimulatorService) nextTemp() float64 {
	phase := float64(s.step%CycleTicks) / CycleTicks
	s.step++
	rise := PeakRiseC * (1 - math.Abs(2*phase-1))
	return AmbientC + rise + s.rng.NormFloat64()*NoiseStdC
}

// SessionParams shapes a synthetic recording session.
type SessionParams struct {
	Start    time.Time
	Samples  int
	Interval time.Duration
	BaseC    float64 // temperature at the first sample
	RiseC    float64 // linear rise across the session
	NoiseC   float64 // σ of the gaussian noise
	PowerW   float64 // always-on baseline draw
	Seed     uint64
}

func DefaultSessionParams() SessionParams {
	return SessionParams{
		Start:    time.Date(2026, 2, 7, 14, 0, 0, 0, time.UTC),
		Samples:  240,
		Interval: time.Minute,
		BaseC:    24,
		RiseC:    3,
		NoiseC:   0.2,
		PowerW:   5,
		Seed:     1,
	}
}

// GenerateSession builds a temperature series that rises linearly from
// BaseC to BaseC+RiseC with noise, and the cumulative energy of a fan drawing
// PowerW the whole time. Energy at sample i covers i+1 intervals.
func GenerateSession(p SessionParams) ([]control.TemperatureSample, []control.EnergySample) {
	if p.Samples <= 0 {
		return nil, nil
	}
	if p.Interval <= 0 {
		p.Interval = time.Minute
	}
	rng := rand.New(rand.NewPCG(p.Seed, p.Seed>>1|1))

	temps := make([]control.TemperatureSample, p.Samples)
	energy := make([]control.EnergySample, p.Samples)
	perStepWh := p.PowerW * p.Interval.Hours()

	cum := 0.0
	for i := 0; i < p.Samples; i++ {
		ts := p.Start.Add(time.Duration(i) * p.Interval)
		trend := 0.0
		if p.Samples > 1 {
			trend = p.RiseC * float64(i) / float64(p.Samples-1)
		}
		temps[i] = control.TemperatureSample{Time: ts, TempC: p.BaseC + trend + rng.NormFloat64()*p.NoiseC}

		cum += perStepWh
		energy[i] = control.EnergySample{Time: ts, CumulativeWh: cum}
	}
	return temps, energy
}

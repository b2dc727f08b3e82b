package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"smart_fan/internal/dataset"
	"smart_fan/internal/service"

	"github.com/spf13/cobra"
)

const defaultSession = "trial1"

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write a synthetic temperature.csv and energy.csv session.",
	Long: `Generate a fake recording: one sample per interval, temperature rising
linearly from --base-c by --rise-c with gaussian noise, and the cumulative
energy of a fan drawing --power-w the whole time.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		p, session, dir, err := generateParams(cmd)
		if err != nil {
			return err
		}
		return runGenerate(p, session, dir)
	},
}

func init() {
	d := service.DefaultSessionParams()
	f := generateCmd.Flags()
	f.String("out-dir", "data", "Directory for temperature.csv and energy.csv")
	f.String("session", defaultSession, "session_id written on every row")
	f.String("start", d.Start.Format(time.RFC3339), "Timestamp of the first sample (RFC3339)")
	f.Int("samples", d.Samples, "Number of samples")
	f.Duration("interval", d.Interval, "Time between samples")
	f.Float64("base-c", d.BaseC, "Temperature at the first sample (°C)")
	f.Float64("rise-c", d.RiseC, "Linear rise across the session (°C)")
	f.Float64("noise-c", d.NoiseC, "Standard deviation of the temperature noise (°C)")
	f.Float64("power-w", d.PowerW, "Always-on fan power (W)")
	f.Uint64("seed", d.Seed, "Noise seed")
}

func generateParams(cmd *cobra.Command) (service.SessionParams, string, string, error) {
	f := cmd.Flags()
	p := service.DefaultSessionParams()

	start, _ := f.GetString("start")
	ts, err := dataset.ParseTimestamp(start)
	if err != nil {
		return p, "", "", fmt.Errorf("--start: %w", err)
	}
	p.Start = ts
	p.Samples, _ = f.GetInt("samples")
	p.Interval, _ = f.GetDuration("interval")
	p.BaseC, _ = f.GetFloat64("base-c")
	p.RiseC, _ = f.GetFloat64("rise-c")
	p.NoiseC, _ = f.GetFloat64("noise-c")
	p.PowerW, _ = f.GetFloat64("power-w")
	p.Seed, _ = f.GetUint64("seed")
	if p.Samples <= 0 || p.Interval <= 0 {
		return p, "", "", fmt.Errorf("--samples and --interval must be positive")
	}

	session, _ := f.GetString("session")
	dir, _ := f.GetString("out-dir")
	return p, session, dir, nil
}

func runGenerate(p service.SessionParams, session, dir string) error {
	temps, energy := service.GenerateSession(p)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	tPath := filepath.Join(dir, "temperature.csv")
	ePath := filepath.Join(dir, "energy.csv")
	if err := writeFile(tPath, func(f *os.File) error { return dataset.WriteTemperature(f, session, temps) }); err != nil {
		return err
	}
	if err := writeFile(ePath, func(f *os.File) error { return dataset.WriteEnergy(f, session, energy) }); err != nil {
		return err
	}
	log.Infow("session_generated", "samples", len(temps), "temperature_csv", tPath, "energy_csv", ePath)
	return nil
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// Package export writes evaluation results to Parquet files for offline
// analysis.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/parquet-go/parquet-go"

	"smart_fan/internal/control"
)

const (
	TimelineFile = "timeline.parquet"
	MaskedFile   = "energy.parquet"
)

// TimelineRecord is one row of the fan on/off timeline.
type TimelineRecord struct {
	Timestamp time.Time `parquet:"timestamp,snappy"`
	FanOn     bool      `parquet:"fan_on,snappy"`
}

// MaskedRecord is one row of the masked energy series.
type MaskedRecord struct {
	Timestamp          time.Time `parquet:"timestamp,snappy"`
	BaselineWh         float64   `parquet:"baseline_wh,snappy"`
	DeltaWh            float64   `parquet:"delta_wh,snappy"`
	FanOn              bool      `parquet:"fan_on,snappy"`
	MaskedDeltaWh      float64   `parquet:"masked_delta_wh,snappy"`
	MaskedCumulativeWh float64   `parquet:"masked_cumulative_wh,snappy"`
}

func TimelineRecords(tl control.FanTimeline) []TimelineRecord {
	out := make([]TimelineRecord, len(tl))
	for i, p := range tl {
		out[i] = TimelineRecord{Timestamp: p.Time, FanOn: p.FanOn}
	}
	return out
}

func MaskedRecords(masked []control.MaskedEnergySample) []MaskedRecord {
	out := make([]MaskedRecord, len(masked))
	for i, m := range masked {
		out[i] = MaskedRecord{
			Timestamp:          m.Time,
			BaselineWh:         m.BaselineWh,
			DeltaWh:            m.DeltaWh,
			FanOn:              m.FanOn,
			MaskedDeltaWh:      m.MaskedDeltaWh,
			MaskedCumulativeWh: m.MaskedCumulativeWh,
		}
	}
	return out
}

// WriteTimelineParquet writes the fan timeline to outputPath.
func WriteTimelineParquet(tl control.FanTimeline, outputPath string) error {
	return writeParquet(TimelineRecords(tl), outputPath)
}

// WriteMaskedParquet writes the masked energy series to outputPath.
func WriteMaskedParquet(masked []control.MaskedEnergySample, outputPath string) error {
	return writeParquet(MaskedRecords(masked), outputPath)
}

// WriteAll writes both result files into dir, creating it when needed, and
// returns the paths written.
func WriteAll(dir string, tl control.FanTimeline, masked []control.MaskedEnergySample) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create export dir: %w", err)
	}
	tlPath := filepath.Join(dir, TimelineFile)
	if err := WriteTimelineParquet(tl, tlPath); err != nil {
		return nil, err
	}
	maskedPath := filepath.Join(dir, MaskedFile)
	if err := WriteMaskedParquet(masked, maskedPath); err != nil {
		return nil, err
	}
	return []string{tlPath, maskedPath}, nil
}

func writeParquet[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	// Close flushes the footer; a failure here leaves an unreadable file.
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

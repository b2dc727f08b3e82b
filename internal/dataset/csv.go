// Package dataset reads and writes the temperature and energy CSV files the
// evaluation works from.
//
// temperature.csv: session_id,timestamp,temp_c
// energy.csv:      session_id,timestamp,energy_Wh (cumulative)
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"smart_fan/internal/control"
)

const (
	colSession   = "session_id"
	colTimestamp = "timestamp"
	colTempC     = "temp_c"
	colEnergyWh  = "energy_Wh"

	layoutDateTime = "2006-01-02 15:04:05"
	// fractional seconds only when present
	layoutDateTimeFrac = "2006-01-02 15:04:05.999999999"
)

var ErrMalformed = errors.New("malformed dataset")

// timestampLayouts lists accepted formats, most specific first.
var timestampLayouts = []string{
	time.RFC3339Nano,
	layoutDateTimeFrac,
	layoutDateTime,
	"2006-01-02T15:04:05",
}

// ParseTimestamp accepts RFC3339 and the space-separated form written by
// spreadsheet and dataframe tools. Zone-less values are taken as UTC.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", s)
}

// LoadTemperature reads a temperature CSV and returns samples sorted by time.
func LoadTemperature(r io.Reader) ([]control.TemperatureSample, error) {
	var out []control.TemperatureSample
	err := readRows(r, colTempC, func(ts time.Time, v float64) {
		out = append(out, control.TemperatureSample{Time: ts, TempC: v})
	})
	if err != nil {
		return nil, err
	}
	control.SortTemperature(out)
	return out, nil
}

// LoadEnergy reads a cumulative energy CSV and returns samples sorted by time.
func LoadEnergy(r io.Reader) ([]control.EnergySample, error) {
	var out []control.EnergySample
	err := readRows(r, colEnergyWh, func(ts time.Time, v float64) {
		out = append(out, control.EnergySample{Time: ts, CumulativeWh: v})
	})
	if err != nil {
		return nil, err
	}
	control.SortEnergy(out)
	return out, nil
}

func LoadTemperatureFile(path string) ([]control.TemperatureSample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open temperature data %q: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	samples, err := LoadTemperature(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return samples, nil
}

func LoadEnergyFile(path string) ([]control.EnergySample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open energy data %q: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	samples, err := LoadEnergy(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return samples, nil
}

// readRows locates the timestamp and value columns by header name and calls
// emit for every data row.
func readRows(r io.Reader, valueCol string, emit func(time.Time, float64)) error {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: missing header", ErrMalformed)
		}
		return fmt.Errorf("read header: %w", err)
	}

	tsIdx, valIdx := -1, -1
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case colTimestamp:
			tsIdx = i
		case valueCol:
			valIdx = i
		}
	}
	if tsIdx < 0 || valIdx < 0 {
		return fmt.Errorf("%w: header must contain %q and %q", ErrMalformed, colTimestamp, valueCol)
	}

	for row := 2; ; row++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w: row %d: %v", ErrMalformed, row, err)
		}

		ts, err := ParseTimestamp(rec[tsIdx])
		if err != nil {
			return fmt.Errorf("%w: row %d: %v", ErrMalformed, row, err)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(rec[valIdx]), 64)
		if err != nil {
			return fmt.Errorf("%w: row %d: invalid %s %q", ErrMalformed, row, valueCol, rec[valIdx])
		}
		emit(ts, v)
	}
}

// WriteTemperature writes samples in the temperature CSV layout.
func WriteTemperature(w io.Writer, session string, samples []control.TemperatureSample) error {
	return writeRows(w, colTempC, len(samples), func(i int) []string {
		return []string{session, formatTimestamp(samples[i].Time), formatFloat(samples[i].TempC)}
	})
}

// WriteEnergy writes samples in the energy CSV layout.
func WriteEnergy(w io.Writer, session string, samples []control.EnergySample) error {
	return writeRows(w, colEnergyWh, len(samples), func(i int) []string {
		return []string{session, formatTimestamp(samples[i].Time), formatFloat(samples[i].CumulativeWh)}
	})
}

func writeRows(w io.Writer, valueCol string, n int, row func(int) []string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{colSession, colTimestamp, valueCol}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i := 0; i < n; i++ {
		if err := cw.Write(row(i)); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(layoutDateTimeFrac)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

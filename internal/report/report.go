// Package report renders an evaluation result for terminals and files.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"smart_fan/internal/control"
	"smart_fan/internal/impact"
)

type Format string

const (
	TableOut Format = "table"
	CSVOut   Format = "csv"
	JSONOut  Format = "json"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case TableOut, CSVOut, JSONOut:
		return f, nil
	case "":
		return TableOut, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want table, csv or json)", s)
	}
}

// Report is the printable part of an evaluation.
type Report struct {
	Policy      control.Policy         `json:"policy"`
	Samples     int                    `json:"samples"`
	Transitions int                    `json:"transitions"`
	Summary     impact.Summary         `json:"summary"`
	Projection  impact.ProjectedImpact `json:"projection"`
}

type Options struct {
	Format    Format
	UseColors bool
	Precision int
}

// Write renders r to w in the requested format.
func Write(w io.Writer, r Report, opts Options) error {
	if opts.Precision <= 0 {
		opts.Precision = 3
	}
	switch opts.Format {
	case JSONOut:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case CSVOut:
		cw := csv.NewWriter(w)
		if err := cw.Write([]string{"metric", "value"}); err != nil {
			return err
		}
		for _, row := range rows(r, opts.Precision) {
			if err := cw.Write([]string{row.name, row.value}); err != nil {
				return err
			}
		}
		cw.Flush()
		return cw.Error()
	default:
		return writeTable(w, r, opts)
	}
}

type metric struct {
	name   string
	value  string
	saving bool
}

func rows(r Report, precision int) []metric {
	f := func(v float64) string { return strconv.FormatFloat(v, 'f', precision, 64) }
	s, p := r.Summary, r.Projection
	return []metric{
		{name: "high_c", value: f(r.Policy.HighC)},
		{name: "low_c", value: f(r.Policy.LowC)},
		{name: "min_hold", value: r.Policy.MinHold.String()},
		{name: "samples", value: strconv.Itoa(r.Samples)},
		{name: "transitions", value: strconv.Itoa(r.Transitions)},
		{name: "on_fraction", value: f(s.OnFraction)},
		{name: "baseline_wh", value: f(s.BaselineWh)},
		{name: "smart_wh", value: f(s.SmartWh)},
		{name: "saved_wh", value: f(s.SavedWh), saving: true},
		{name: "saved_pct", value: f(s.SavedPct), saving: true},
		{name: "baseline_cost", value: f(s.BaselineCost)},
		{name: "smart_cost", value: f(s.SmartCost)},
		{name: "saved_cost", value: f(s.SavedCost), saving: true},
		{name: "baseline_kg_co2", value: f(s.BaselineKgCO2)},
		{name: "smart_kg_co2", value: f(s.SmartKgCO2)},
		{name: "saved_kg_co2", value: f(s.SavedKgCO2), saving: true},
		{name: "saved_avg_power_w", value: f(p.SavedAvgPowerW)},
		{name: "saved_kwh_per_month", value: f(p.SavedKWhPerMonth), saving: true},
		{name: "saved_cost_per_month", value: f(p.SavedCostPerMonth), saving: true},
		{name: "saved_kg_co2_per_month", value: f(p.SavedKgCO2PerMonth), saving: true},
		{name: "devices", value: strconv.Itoa(p.Devices)},
		{name: "fleet_cost_per_month", value: f(p.FleetCostPerMonth), saving: true},
		{name: "fleet_kg_co2_per_month", value: f(p.FleetKgCO2PerMonth), saving: true},
	}
}

func writeTable(w io.Writer, r Report, opts Options) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Metric", "Value"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	highlight := fmt.Sprint
	if opts.UseColors {
		highlight = color.New(color.FgGreen).SprintFunc()
	}

	var data [][]string
	for _, m := range rows(r, opts.Precision) {
		v := m.value
		if m.saving {
			v = highlight(v)
		}
		data = append(data, []string{m.name, v})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Fan on %.1f%% of the session, saving %.1f%% of baseline energy.\n",
		r.Summary.OnFraction*100, r.Summary.SavedPct)
	return err
}

package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"smart_fan/internal/config"
	"smart_fan/internal/dataset"
	"smart_fan/internal/export"
	"smart_fan/internal/models"
	"smart_fan/internal/report"
	"smart_fan/internal/repository"
	"smart_fan/internal/repository/db"
	"smart_fan/internal/service"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Run the fan policy over a recorded session and report the savings.",
	Long: `Load temperature.csv and energy.csv, replay the temperatures through the
hysteresis controller, mask the always-on energy with the resulting fan timeline
and print energy, cost, CO2 and projected monthly savings.

Examples:
  # Evaluate the configured session with the default policy
  smartfan evaluate

  # Try a wider band and a longer dwell
  smartfan evaluate --high 26.5 --low 25 --min-hold 5m

  # JSON report plus parquet series for notebooks
  smartfan evaluate --output json --parquet out/

  # Record the run in the history served at /api/v1/runs
  smartfan evaluate --persist`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runEvaluate(cmd.Context(), cmd.OutOrStdout(), cfg, evaluateFlags{
			output:    viper.GetString("output"),
			parquet:   viper.GetString("parquet"),
			persist:   viper.GetBool("persist"),
			color:     viper.GetBool("color"),
			precision: viper.GetInt("precision"),
		})
	},
}

type evaluateFlags struct {
	output    string
	parquet   string
	persist   bool
	color     bool
	precision int
}

func init() {
	f := evaluateCmd.Flags()
	f.String("temperature", "", "Temperature CSV (session_id,timestamp,temp_c)")
	f.String("energy", "", "Energy CSV (session_id,timestamp,energy_Wh)")
	f.Float64("high", 0, "Fan turns on at or above this temperature (°C)")
	f.Float64("low", 0, "Fan turns off at or below this temperature (°C)")
	f.Duration("min-hold", 0, "Minimum time between fan switches")
	f.Float64("rate", 0, "Electricity price per kWh")
	f.Float64("co2", 0, "Grid intensity, kg CO2e per kWh")
	f.Float64("fan-power", 0, "Fan power used for the monthly projection (W)")
	f.Float64("hours-per-day", 0, "Daily fan use for the monthly projection")
	f.Int("devices", 0, "Fleet size for the monthly projection")
	f.StringP("output", "o", string(report.TableOut), "Report format: table, csv or json")
	f.String("parquet", "", "Directory to write timeline.parquet and energy.parquet into")
	f.Bool("persist", false, "Record the run in the SQLite history")
	f.Bool("color", true, "Colour the savings in table output")
	f.Int("precision", 3, "Decimal places in table and csv output")

	mustBind("data.temperature_csv", f.Lookup("temperature"))
	mustBind("data.energy_csv", f.Lookup("energy"))
	mustBind("policy.high_c", f.Lookup("high"))
	mustBind("policy.low_c", f.Lookup("low"))
	mustBind("policy.min_hold", f.Lookup("min-hold"))
	mustBind("impact.rate_per_kwh", f.Lookup("rate"))
	mustBind("impact.co2_per_kwh", f.Lookup("co2"))
	mustBind("projection.fan_power_w", f.Lookup("fan-power"))
	mustBind("projection.hours_per_day", f.Lookup("hours-per-day"))
	mustBind("projection.devices", f.Lookup("devices"))
	for _, name := range []string{"output", "parquet", "persist", "color", "precision"} {
		mustBind(name, f.Lookup(name))
	}
}

func runEvaluate(ctx context.Context, out io.Writer, c config.Config, fl evaluateFlags) error {
	format, err := report.ParseFormat(fl.output)
	if err != nil {
		return err
	}

	temps, err := dataset.LoadTemperatureFile(c.Data.TemperatureCSV)
	if err != nil {
		return err
	}
	energy, err := dataset.LoadEnergyFile(c.Data.EnergyCSV)
	if err != nil {
		return err
	}

	var runs repository.RunRepo
	if fl.persist {
		sqlDB, err := db.InitDB(c.DB.Path)
		if err != nil {
			return fmt.Errorf("init sqlite: %w", err)
		}
		defer func() { _ = sqlDB.Close() }()
		runs = repository.NewRunSQLite(sqlDB)
	}

	evaluator := service.NewEvaluatorService(nil, runs, serviceOptions(c, log))
	ev, err := evaluator.Evaluate(ctx, service.EvaluateParams{
		Temperature: temps,
		Energy:      energy,
		Source:      models.SourceCSV,
		Persist:     fl.persist,
	})
	if err != nil {
		return err
	}

	if fl.parquet != "" {
		paths, err := export.WriteAll(fl.parquet, ev.Timeline, ev.Masked)
		if err != nil {
			return err
		}
		log.Infow("parquet_written", "files", paths)
	}

	return report.Write(out, ev.Report(), report.Options{
		Format:    format,
		UseColors: fl.color && isTerminal(out),
		Precision: fl.precision,
	})
}

// isTerminal keeps escape codes out of pipes and files.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

package main

import (
	"context"
	"os"

	"smart_fan/internal/config"
	"smart_fan/internal/logger"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Set by the linker at release time.
var version = "dev"

var (
	// cfg holds the validated configuration after setup.
	cfg config.Config
	// log goes to stderr so that report output on stdout stays clean.
	log *logger.Logger
)

var rootCmd = &cobra.Command{
	Use:               "smartfan",
	Short:             "Evaluate a hysteresis fan policy against always-on energy use.",
	Long:              `smartfan replays temperature sessions through a two-threshold fan controller with a minimum dwell time and reports how much energy, money and CO2 the controlled fan saves over an always-on baseline.`,
	Version:           version,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(evaluateCmd)
	rootCmd.AddCommand(generateCmd)

	rootCmd.PersistentFlags().String("config", "", "Path to config file (default configs/config.yml)")
	rootCmd.PersistentFlags().String("log-level", logger.InfoLevel, "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().String("db", "", "SQLite database path")
	mustBind("config", rootCmd.PersistentFlags().Lookup("config"))
	mustBind("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	mustBind("db.path", rootCmd.PersistentFlags().Lookup("db"))
}

// setup reads file, env and flags into cfg and builds the logger.
func setup(_ *cobra.Command, _ []string) error {
	v := viper.GetViper()
	config.Prepare(v, v.GetString("config"))
	if err := config.Read(v); err != nil {
		return err
	}
	loaded, err := config.Load(v)
	if err != nil {
		return err
	}
	cfg = loaded
	log = logger.New(cfg.LogLevel, os.Stderr)
	return nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

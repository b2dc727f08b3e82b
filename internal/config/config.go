// Package config loads the smart fan configuration from configs/config.yml,
// SMARTFAN_* environment variables and bound command-line flags.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"smart_fan/internal/control"
	"smart_fan/internal/impact"
)

const EnvPrefix = "SMARTFAN"

var ErrInvalid = errors.New("invalid config")

type Config struct {
	Port       string            `mapstructure:"port"`
	LogLevel   string            `mapstructure:"log_level"`
	DB         DBConfig          `mapstructure:"db"`
	Auth       AuthConfig        `mapstructure:"auth"`
	Ingest     IngestConfig      `mapstructure:"ingest"`
	MQTT       MQTTConfig        `mapstructure:"mqtt"`
	Policy     PolicyConfig      `mapstructure:"policy"`
	Impact     impact.Rates      `mapstructure:"impact"`
	Projection impact.Projection `mapstructure:"projection"`
	Simulator  SimulatorConfig   `mapstructure:"simulator"`
	Live       LiveConfig        `mapstructure:"live"`
	Data       DataConfig        `mapstructure:"data"`
}

type DBConfig struct {
	Path string `mapstructure:"path"`
}

type AuthConfig struct {
	SigningKey string        `mapstructure:"signing_key"`
	TokenTTL   time.Duration `mapstructure:"token_ttl"`
}

type IngestConfig struct {
	APIKey string `mapstructure:"api_key"`
}

// MQTTConfig enables the telemetry subscriber when Broker is set.
type MQTTConfig struct {
	Broker   string `mapstructure:"broker"`
	Topic    string `mapstructure:"topic"`
	ClientID string `mapstructure:"client_id"`
	QoS      byte   `mapstructure:"qos"`
}

type PolicyConfig struct {
	HighC   float64       `mapstructure:"high_c"`
	LowC    float64       `mapstructure:"low_c"`
	MinHold time.Duration `mapstructure:"min_hold"`
}

type SimulatorConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	DeviceID string        `mapstructure:"device_id"`
	Tick     time.Duration `mapstructure:"tick"`
}

// LiveConfig bounds live evaluation: how many recent readings are evaluated
// and how often the websocket pushes a fresh result.
type LiveConfig struct {
	Limit    int           `mapstructure:"limit"`
	Interval time.Duration `mapstructure:"interval"`
}

type DataConfig struct {
	TemperatureCSV string `mapstructure:"temperature_csv"`
	EnergyCSV      string `mapstructure:"energy_csv"`
}

// SetDefaults registers every key so that env overrides work for keys that
// are absent from the config file.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("db.path", "smartfan.db")
	v.SetDefault("auth.signing_key", "change-me")
	v.SetDefault("auth.token_ttl", time.Hour)
	v.SetDefault("ingest.api_key", "")
	v.SetDefault("mqtt.broker", "")
	v.SetDefault("mqtt.topic", "smartfan/+/readings")
	v.SetDefault("mqtt.client_id", "smartfan-server")
	v.SetDefault("mqtt.qos", 1)
	v.SetDefault("policy.high_c", 26.0)
	v.SetDefault("policy.low_c", 25.5)
	v.SetDefault("policy.min_hold", 2*time.Minute)
	v.SetDefault("impact.rate_per_kwh", impact.DefaultPricePerKWh)
	v.SetDefault("impact.co2_per_kwh", impact.DefaultKgCO2PerKWh)
	v.SetDefault("projection.fan_power_w", 5.0)
	v.SetDefault("projection.hours_per_day", 8.0)
	v.SetDefault("projection.devices", 1)
	v.SetDefault("simulator.enabled", true)
	v.SetDefault("simulator.device_id", "sim-fan-1")
	v.SetDefault("simulator.tick", time.Second)
	v.SetDefault("live.limit", 600)
	v.SetDefault("live.interval", 2*time.Second)
	v.SetDefault("data.temperature_csv", "data/temperature.csv")
	v.SetDefault("data.energy_csv", "data/energy.csv")
}

// Prepare points v at the config file and environment. An empty path
// searches ./configs and the working directory for config.yml.
func Prepare(v *viper.Viper, path string) {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("configs")
		v.AddConfigPath(".")
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	SetDefaults(v)
}

// Read loads the config file prepared on v. A missing file is not an error
// when no explicit path was given; defaults and env still apply.
func Read(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

// Load decodes and validates the configuration held by v.
func Load(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if err := c.ControlPolicy().Validate(); err != nil {
		return fmt.Errorf("%w: policy: %v", ErrInvalid, err)
	}
	if err := c.Impact.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if err := c.Projection.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if c.Auth.SigningKey == "" {
		return fmt.Errorf("%w: auth.signing_key is empty", ErrInvalid)
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("%w: auth.token_ttl must be positive", ErrInvalid)
	}
	if c.Live.Limit <= 0 {
		return fmt.Errorf("%w: live.limit must be positive", ErrInvalid)
	}
	if c.Simulator.Enabled && c.Simulator.Tick <= 0 {
		return fmt.Errorf("%w: simulator.tick must be positive", ErrInvalid)
	}
	if c.MQTT.Broker != "" && c.MQTT.Topic == "" {
		return fmt.Errorf("%w: mqtt.topic is required with mqtt.broker", ErrInvalid)
	}
	if c.MQTT.QoS > 2 {
		return fmt.Errorf("%w: mqtt.qos must be 0, 1 or 2", ErrInvalid)
	}
	return nil
}

func (c Config) ControlPolicy() control.Policy {
	return control.Policy{HighC: c.Policy.HighC, LowC: c.Policy.LowC, MinHold: c.Policy.MinHold}
}

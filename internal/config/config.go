package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"sensor-dashboard/internal/logging"
)

// Config materialises application configuration.
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Logging   logging.Config  `mapstructure:"logging"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Broker    BrokerConfig    `mapstructure:"broker"`
	Sensor    SensorConfig    `mapstructure:"sensor"`
	Relay     RelayConfig     `mapstructure:"relay"`
	Display   DisplayConfig   `mapstructure:"display"`
	Export    ExportConfig    `mapstructure:"export"`
}

// AppConfig general metadata.
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
}

// DatabaseConfig locates the SQLite file holding the sensor_data table.
type DatabaseConfig struct {
	Path        string        `mapstructure:"path"`
	BusyTimeout time.Duration `mapstructure:"busy_timeout"`
}

// SchedulerConfig governs sampling cadence.
type SchedulerConfig struct {
	Interval     time.Duration `mapstructure:"interval"`
	AlignToStart bool          `mapstructure:"align_to_start"`
	StartupDelay time.Duration `mapstructure:"startup_delay"`
}

// BrokerConfig captures MQTT connectivity and topic names.
type BrokerConfig struct {
	URL            string        `mapstructure:"url"`
	ClientID       string        `mapstructure:"client_id"`
	ReadingTopic   string        `mapstructure:"reading_topic"`
	ToggleTopic    string        `mapstructure:"toggle_topic"`
	CommandTopic   string        `mapstructure:"command_topic"`
	QoS            uint          `mapstructure:"qos"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
	PublishTimeout time.Duration `mapstructure:"publish_timeout"`
}

// SensorConfig bounds the simulated reading ranges.
type SensorConfig struct {
	TemperatureMin float64 `mapstructure:"temperature_min"`
	TemperatureMax float64 `mapstructure:"temperature_max"`
	HumidityMin    float64 `mapstructure:"humidity_min"`
	HumidityMax    float64 `mapstructure:"humidity_max"`
}

// RelayConfig defines the warning/relay threshold.
type RelayConfig struct {
	WarningThresholdCelsius float64 `mapstructure:"warning_threshold_celsius"`
}

// DisplayConfig tunes the on-screen surfaces.
type DisplayConfig struct {
	HistoryLength      int    `mapstructure:"history_length"`
	RecentRecordsCount int    `mapstructure:"recent_records_count"`
	ChartPath          string `mapstructure:"chart_path"`
}

// ExportConfig sets CLI export behaviour.
type ExportConfig struct {
	MaxDataPoints int `mapstructure:"max_data_points"`
}

// Load builds configuration from file, environment, and defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("SENSORDASH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, decodeHook()); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func readConfig(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "sensordash")
	v.SetDefault("app.environment", "development")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("database.path", "sensor_data.db")
	v.SetDefault("database.busy_timeout", "5s")

	v.SetDefault("scheduler.interval", "5s")
	v.SetDefault("scheduler.align_to_start", false)
	v.SetDefault("scheduler.startup_delay", "0s")

	v.SetDefault("broker.url", "tcp://localhost:1883")
	v.SetDefault("broker.client_id", "sensordash")
	v.SetDefault("broker.reading_topic", "sensors/reading")
	v.SetDefault("broker.toggle_topic", "sensors/relay/state")
	v.SetDefault("broker.command_topic", "sensors/relay/button")
	v.SetDefault("broker.qos", 0)
	v.SetDefault("broker.connect_timeout", "10s")
	v.SetDefault("broker.publish_timeout", "2s")

	v.SetDefault("sensor.temperature_min", 20.0)
	v.SetDefault("sensor.temperature_max", 35.0)
	v.SetDefault("sensor.humidity_min", 30.0)
	v.SetDefault("sensor.humidity_max", 70.0)

	v.SetDefault("relay.warning_threshold_celsius", 30.0)

	v.SetDefault("display.history_length", 200)
	v.SetDefault("display.recent_records_count", 10)

	v.SetDefault("export.max_data_points", 100000)
}

func decodeHook() viper.DecoderConfigOption {
	return func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "mapstructure"
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	}
}

// Validate performs basic sanity checks on the configuration values.
func (c *Config) Validate() error {
	if c.Scheduler.Interval <= 0 {
		return fmt.Errorf("scheduler.interval must be greater than zero")
	}
	if c.Sensor.TemperatureMin > c.Sensor.TemperatureMax {
		return fmt.Errorf("sensor.temperature_min cannot exceed sensor.temperature_max")
	}
	if c.Sensor.HumidityMin > c.Sensor.HumidityMax {
		return fmt.Errorf("sensor.humidity_min cannot exceed sensor.humidity_max")
	}
	if c.Display.HistoryLength <= 0 {
		return fmt.Errorf("display.history_length must be greater than zero")
	}
	if c.Display.RecentRecordsCount <= 0 {
		return fmt.Errorf("display.recent_records_count must be greater than zero")
	}
	if c.Export.MaxDataPoints <= 0 {
		return fmt.Errorf("export.max_data_points must be greater than zero")
	}
	if c.Broker.QoS > 2 {
		return fmt.Errorf("broker.qos must be 0, 1, or 2")
	}
	return nil
}

// ResolveMaxPoints returns either the CLI override or config default.
func (c *Config) ResolveMaxPoints(override int) int {
	if override > 0 {
		return override
	}
	return c.Export.MaxDataPoints
}

// ResolveRecentCount returns either the CLI override or config default.
func (c *Config) ResolveRecentCount(override int) int {
	if override > 0 {
		return override
	}
	return c.Display.RecentRecordsCount
}

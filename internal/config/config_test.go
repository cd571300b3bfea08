package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load with defaults should succeed: %v", err)
	}

	if cfg.Scheduler.Interval != 5*time.Second {
		t.Fatalf("default tick interval should be 5s, got %s", cfg.Scheduler.Interval)
	}
	if cfg.Relay.WarningThresholdCelsius != 30.0 {
		t.Fatalf("default threshold should be 30.0, got %f", cfg.Relay.WarningThresholdCelsius)
	}
	if cfg.Display.HistoryLength != 200 {
		t.Fatalf("default history length should be 200, got %d", cfg.Display.HistoryLength)
	}
	if cfg.Display.RecentRecordsCount != 10 {
		t.Fatalf("default recent count should be 10, got %d", cfg.Display.RecentRecordsCount)
	}
	if cfg.Database.Path != "sensor_data.db" {
		t.Fatalf("default database path should be sensor_data.db, got %q", cfg.Database.Path)
	}
	if cfg.Broker.ReadingTopic == "" || cfg.Broker.ToggleTopic == "" || cfg.Broker.CommandTopic == "" {
		t.Fatal("topic defaults must be set")
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := []byte("relay:\n  warning_threshold_celsius: 27.5\nscheduler:\n  interval: 10s\nbroker:\n  url: tcp://broker.example:1883\n")
	if err := os.WriteFile(path, body, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load from file should succeed: %v", err)
	}

	if cfg.Relay.WarningThresholdCelsius != 27.5 {
		t.Fatalf("threshold should come from file, got %f", cfg.Relay.WarningThresholdCelsius)
	}
	if cfg.Scheduler.Interval != 10*time.Second {
		t.Fatalf("interval should come from file, got %s", cfg.Scheduler.Interval)
	}
	if cfg.Broker.URL != "tcp://broker.example:1883" {
		t.Fatalf("broker url should come from file, got %q", cfg.Broker.URL)
	}
	if cfg.Display.HistoryLength != 200 {
		t.Fatal("unset keys should keep their defaults")
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	cfg.Scheduler.Interval = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("zero interval must fail validation")
	}
	cfg.Scheduler.Interval = 5 * time.Second

	cfg.Sensor.TemperatureMin = 40
	cfg.Sensor.TemperatureMax = 20
	if err := cfg.Validate(); err == nil {
		t.Fatal("inverted temperature range must fail validation")
	}
	cfg.Sensor.TemperatureMin = 20
	cfg.Sensor.TemperatureMax = 35

	cfg.Broker.QoS = 3
	if err := cfg.Validate(); err == nil {
		t.Fatal("QoS above 2 must fail validation")
	}
}

func TestResolveOverrides(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if got := cfg.ResolveRecentCount(0); got != 10 {
		t.Fatalf("zero override should fall back to config, got %d", got)
	}
	if got := cfg.ResolveRecentCount(25); got != 25 {
		t.Fatalf("positive override should win, got %d", got)
	}
	if got := cfg.ResolveMaxPoints(500); got != 500 {
		t.Fatalf("positive override should win, got %d", got)
	}
}

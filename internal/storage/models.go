package storage

import (
	"time"

	"sensor-dashboard/internal/relay"
	"sensor-dashboard/internal/sensor"
)

// SensorRecord is one persisted row of the sensor_data table. Rows are
// append-only; one per tick.
type SensorRecord struct {
	ID          int64
	Timestamp   time.Time
	Temperature float64
	Humidity    float64
	RelayStatus relay.State
}

// NewSensorRecord pairs a reading with its derived relay state.
func NewSensorRecord(r sensor.Reading, state relay.State) SensorRecord {
	return SensorRecord{
		Timestamp:   r.Timestamp,
		Temperature: r.Temperature,
		Humidity:    r.Humidity,
		RelayStatus: state,
	}
}

// Reading reconstructs the sensor view of a stored row.
func (r SensorRecord) Reading() sensor.Reading {
	return sensor.Reading{
		Timestamp:   r.Timestamp,
		Temperature: r.Temperature,
		Humidity:    r.Humidity,
	}
}

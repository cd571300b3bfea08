package relay

import (
	"sensor-dashboard/internal/sensor"
)

// State is the two-valued relay output.
type State int

const (
	Off State = iota
	On
)

// String renders the wire/display form.
func (s State) String() string {
	if s == On {
		return "ON"
	}
	return "OFF"
}

// Inverse returns the opposite state.
func (s State) Inverse() State {
	if s == On {
		return Off
	}
	return On
}

// StorageValue maps the state to the persisted 0|1 column form.
func (s State) StorageValue() int {
	if s == On {
		return 1
	}
	return 0
}

// StateFromStorage converts a persisted 0|1 value back to a State.
func StateFromStorage(v int) State {
	if v != 0 {
		return On
	}
	return Off
}

// Evaluate derives the relay state for a reading. The relay is On and the
// warning flag set iff the temperature is at or above the threshold.
func Evaluate(r sensor.Reading, threshold float64) (State, bool) {
	if r.Temperature >= threshold {
		return On, true
	}
	return Off, false
}

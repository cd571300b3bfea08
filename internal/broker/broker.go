package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"sensor-dashboard/internal/relay"
	"sensor-dashboard/internal/sensor"
)

// Publisher pushes a payload to a topic. Publishing is a side channel:
// callers log failures and continue.
type Publisher interface {
	Publish(ctx context.Context, topic string, payload []byte) error
}

// ReadingEvent is the reading-topic payload.
type ReadingEvent struct {
	Type        string    `json:"type"`
	Timestamp   time.Time `json:"timestamp"`
	Temperature float64   `json:"temperature"`
	Humidity    float64   `json:"humidity"`
	Relay       string    `json:"relay"`
}

// ToggleEvent is the toggle-topic payload; it carries only the requested
// relay state.
type ToggleEvent struct {
	Type  string `json:"type"`
	Relay string `json:"relay"`
}

// ToggleRequest marks one received button activation.
type ToggleRequest struct {
	ReceivedAt time.Time
}

const (
	readingEventType = "sensor"
	toggleEventType  = "relay_toggle"
	buttonEventType  = "button_pressed"
)

// EncodeReading serialises a reading event.
func EncodeReading(r sensor.Reading, state relay.State) ([]byte, error) {
	event := ReadingEvent{
		Type:        readingEventType,
		Timestamp:   r.Timestamp.UTC(),
		Temperature: r.Temperature,
		Humidity:    r.Humidity,
		Relay:       state.String(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("marshal reading event: %w", err)
	}
	return payload, nil
}

// EncodeButtonPress serialises one button activation for the command topic.
func EncodeButtonPress() ([]byte, error) {
	payload, err := json.Marshal(map[string]string{"type": buttonEventType})
	if err != nil {
		return nil, fmt.Errorf("marshal button press: %w", err)
	}
	return payload, nil
}

// EncodeToggle serialises a toggle event for the requested state.
func EncodeToggle(state relay.State) ([]byte, error) {
	payload, err := json.Marshal(ToggleEvent{Type: toggleEventType, Relay: state.String()})
	if err != nil {
		return nil, fmt.Errorf("marshal toggle event: %w", err)
	}
	return payload, nil
}

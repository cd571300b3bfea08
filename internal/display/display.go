package display

import (
	"fmt"
	"io"
	"time"

	"sensor-dashboard/internal/relay"
	"sensor-dashboard/internal/sensor"
)

// Frame is what one tick puts on screen.
type Frame struct {
	Reading sensor.Reading
	Relay   relay.State
	Warning bool
}

// Renderer receives display updates. Rendering is assumed infallible; the
// console implementation swallows write errors.
type Renderer interface {
	RenderFrame(frame Frame)
	RenderRelay(state relay.State)
}

// Console renders frames as single status lines on a writer, the headless
// stand-in for the dashboard's numeric labels and relay indicator.
type Console struct {
	out io.Writer
}

// NewConsole constructs a console renderer.
func NewConsole(out io.Writer) *Console {
	return &Console{out: out}
}

// RenderFrame writes one status line.
func (c *Console) RenderFrame(frame Frame) {
	indicator := " "
	if frame.Warning {
		indicator = "!"
	}
	fmt.Fprintf(c.out, "%s  temp %5.1f°C  hum %5.1f%%  relay %-3s %s\n",
		frame.Reading.Timestamp.UTC().Format(time.RFC3339),
		frame.Reading.Temperature,
		frame.Reading.Humidity,
		frame.Relay,
		indicator,
	)
}

// RenderRelay updates only the relay indicator, used by manual toggles.
func (c *Console) RenderRelay(state relay.State) {
	fmt.Fprintf(c.out, "relay -> %s\n", state)
}

var _ Renderer = (*Console)(nil)

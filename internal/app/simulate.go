package app

import (
	"context"
	"os"
	"time"

	"sensor-dashboard/internal/display"
	"sensor-dashboard/internal/sensor"
	"sensor-dashboard/internal/service"
)

// Simulate feeds one fixed reading through the pipeline and renders the
// result. No database is touched; publishing is opt-in.
func (a *App) Simulate(ctx context.Context, opts SimulateOptions) error {
	deps := service.Deps{
		Generator: &sensor.Fixed{Temperature: opts.Temperature, Humidity: opts.Humidity},
		Renderer:  display.NewConsole(os.Stdout),
	}

	if opts.Publish {
		client := a.newBrokerClient()
		if err := client.Connect(ctx); err != nil {
			return err
		}
		defer client.Disconnect()
		deps.Publisher = client
	}

	svc := service.New(a.Config, nil, deps, a.Logger)
	return svc.ProcessTick(ctx, time.Now().UTC())
}

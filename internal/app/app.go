package app

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"sensor-dashboard/internal/broker"
	"sensor-dashboard/internal/config"
	"sensor-dashboard/internal/display"
	"sensor-dashboard/internal/scheduler"
	"sensor-dashboard/internal/sensor"
	"sensor-dashboard/internal/service"
	"sensor-dashboard/internal/storage"
)

// App aggregates configuration and shared dependencies for the CLI commands.
type App struct {
	Config *config.Config
	Logger zerolog.Logger
}

// NewApp constructs a new application handle.
func NewApp(cfg *config.Config, logger zerolog.Logger) *App {
	return &App{Config: cfg, Logger: logger.With().Str("component", "app").Logger()}
}

func (a *App) newGenerator() sensor.Generator {
	return sensor.NewSimulated(sensor.SimulatedOptions{
		Temperature: sensor.Range{Min: a.Config.Sensor.TemperatureMin, Max: a.Config.Sensor.TemperatureMax},
		Humidity:    sensor.Range{Min: a.Config.Sensor.HumidityMin, Max: a.Config.Sensor.HumidityMax},
	})
}

func (a *App) newBrokerClient() *broker.Client {
	return broker.NewClient(broker.Options{
		URL:            a.Config.Broker.URL,
		ClientID:       a.Config.Broker.ClientID,
		QoS:            byte(a.Config.Broker.QoS),
		ConnectTimeout: a.Config.Broker.ConnectTimeout,
		PublishTimeout: a.Config.Broker.PublishTimeout,
	}, a.Logger)
}

func (a *App) openStore(ctx context.Context) (*storage.Store, func(), error) {
	if a.Config.Database.Path == "" {
		return nil, nil, nil
	}

	db, err := storage.Open(ctx, a.Config.Database)
	if err != nil {
		return nil, nil, err
	}

	store := storage.NewStore(db)
	if err := store.EnsureSchema(ctx); err != nil {
		store.Close()
		return nil, nil, err
	}

	closer := func() {
		store.Close()
	}
	return store, closer, nil
}

// Run executes the long-running dashboard service.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	store, closeStore, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	if store == nil {
		a.Logger.Warn().Msg("database.path not configured; persistence disabled")
	}
	if closeStore != nil {
		defer closeStore()
	}

	deps := service.Deps{
		Generator: a.newGenerator(),
		Store:     storeOrNil(store),
		Renderer:  display.NewConsole(os.Stdout),
	}

	// The broker is a side channel: an unreachable broker downgrades the
	// dashboard to local-only operation instead of refusing to start.
	client := a.newBrokerClient()
	if err := client.Connect(ctx); err != nil {
		a.Logger.Error().Err(err).Msg("broker unavailable; publishing disabled")
	} else {
		defer client.Disconnect()
		deps.Publisher = client

		toggles, err := client.SubscribeToggleRequests(a.Config.Broker.CommandTopic, 16)
		if err != nil {
			a.Logger.Error().Err(err).Msg("toggle subscription failed; button presses disabled")
		} else {
			deps.Toggles = toggles
		}
	}

	sched := scheduler.New(scheduler.Options{
		Interval:     a.Config.Scheduler.Interval,
		AlignToStart: a.Config.Scheduler.AlignToStart,
		StartupDelay: a.Config.Scheduler.StartupDelay,
	}, a.Logger)

	svc := service.New(a.Config, sched, deps, a.Logger)

	a.Logger.Info().
		Dur("interval", a.Config.Scheduler.Interval).
		Float64("threshold", a.Config.Relay.WarningThresholdCelsius).
		Msg("starting sensor dashboard")

	err = svc.Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		a.Logger.Error().Err(err).Msg("dashboard terminated with error")
		return err
	}

	a.Logger.Info().Msg("sensor dashboard stopped")
	return nil
}

func storeOrNil(store *storage.Store) storage.RecordStore {
	if store == nil {
		return nil
	}
	return store
}

// ShowOptions configure the show command.
type ShowOptions struct {
	Limit int
}

// ExportOptions hold parameters for exporting historical records.
type ExportOptions struct {
	From      *time.Time
	To        *time.Time
	PNGPath   string
	CSVPath   string
	MaxPoints int
}

// SimulateOptions feed one fixed reading through the pipeline.
type SimulateOptions struct {
	Temperature float64
	Humidity    float64
	Publish     bool
}

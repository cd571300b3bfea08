package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"sensor-dashboard/internal/broker"
	"sensor-dashboard/internal/config"
	"sensor-dashboard/internal/display"
	"sensor-dashboard/internal/relay"
	"sensor-dashboard/internal/scheduler"
	"sensor-dashboard/internal/sensor"
	"sensor-dashboard/internal/storage"
)

// Deps are the leaf components the controller fans out to. Publisher, Store,
// Renderer, and Toggles may be nil; the pipeline skips what is absent.
type Deps struct {
	Generator sensor.Generator
	Publisher broker.Publisher
	Store     storage.RecordStore
	Renderer  display.Renderer
	Toggles   <-chan broker.ToggleRequest
}

// Service is the display controller. It owns the last known relay state and
// the history buffer; both are mutated only on the scheduler goroutine, which
// also drains queued toggle requests. Publish and store failures are logged
// and never abort a tick: the reading is still rendered and buffered.
type Service struct {
	scheduler *scheduler.Scheduler
	deps      Deps
	history   *display.History
	logger    zerolog.Logger

	threshold    float64
	readingTopic string
	toggleTopic  string
	chartPath    string

	relayState relay.State
}

// New constructs the display controller.
func New(cfg *config.Config, sched *scheduler.Scheduler, deps Deps, logger zerolog.Logger) *Service {
	return &Service{
		scheduler:    sched,
		deps:         deps,
		history:      display.NewHistory(cfg.Display.HistoryLength),
		logger:       logger.With().Str("component", "service").Logger(),
		threshold:    cfg.Relay.WarningThresholdCelsius,
		readingTopic: cfg.Broker.ReadingTopic,
		toggleTopic:  cfg.Broker.ToggleTopic,
		chartPath:    cfg.Display.ChartPath,
		relayState:   relay.Off,
	}
}

// Run begins the periodic sampling loop.
func (s *Service) Run(ctx context.Context) error {
	if s.scheduler == nil {
		return fmt.Errorf("scheduler not configured")
	}
	if s.deps.Generator == nil {
		return fmt.Errorf("generator not configured")
	}
	return s.scheduler.Run(ctx, s.ProcessTick)
}

// ProcessTick executes one pass of the pipeline: drain pending toggles,
// generate, evaluate, publish, persist, render, buffer.
func (s *Service) ProcessTick(ctx context.Context, at time.Time) error {
	s.drainToggles(ctx)

	reading := s.deps.Generator.Generate()
	state, warning := relay.Evaluate(reading, s.threshold)
	s.relayState = state

	s.publishReading(ctx, reading, state)
	s.appendRecord(ctx, reading, state)

	if s.deps.Renderer != nil {
		s.deps.Renderer.RenderFrame(display.Frame{Reading: reading, Relay: state, Warning: warning})
	}
	if warning {
		s.logger.Warn().
			Time("tick", at).
			Float64("temperature", reading.Temperature).
			Float64("threshold", s.threshold).
			Msg("high temperature")
	}

	s.history.Push(reading)
	s.redrawChart()

	return nil
}

// Toggle flips the last known relay state, publishes one toggle event with
// the new state, and updates the indicator optimistically. Exactly one
// publish and one flip per activation.
func (s *Service) Toggle(ctx context.Context) {
	next := s.relayState.Inverse()
	s.relayState = next

	payload, err := broker.EncodeToggle(next)
	if err != nil {
		s.logger.Error().Err(err).Msg("encode toggle event")
	} else if s.deps.Publisher != nil {
		if err := s.deps.Publisher.Publish(ctx, s.toggleTopic, payload); err != nil {
			s.logger.Error().Err(err).Str("topic", s.toggleTopic).Msg("publish toggle event")
		}
	}

	if s.deps.Renderer != nil {
		s.deps.Renderer.RenderRelay(next)
	}
	s.logger.Info().Str("relay", next.String()).Msg("relay toggled")
}

// RelayState reports the last known relay state.
func (s *Service) RelayState() relay.State {
	return s.relayState
}

// HistoryLen reports the current history occupancy.
func (s *Service) HistoryLen() int {
	return s.history.Len()
}

func (s *Service) drainToggles(ctx context.Context) {
	if s.deps.Toggles == nil {
		return
	}
	for {
		select {
		case req := <-s.deps.Toggles:
			s.logger.Info().Time("received_at", req.ReceivedAt).Msg("button press received")
			s.Toggle(ctx)
		default:
			return
		}
	}
}

func (s *Service) publishReading(ctx context.Context, reading sensor.Reading, state relay.State) {
	if s.deps.Publisher == nil {
		return
	}
	payload, err := broker.EncodeReading(reading, state)
	if err != nil {
		s.logger.Error().Err(err).Time("tick", reading.Timestamp).Msg("encode reading event")
		return
	}
	if err := s.deps.Publisher.Publish(ctx, s.readingTopic, payload); err != nil {
		s.logger.Error().Err(err).Time("tick", reading.Timestamp).Str("topic", s.readingTopic).Msg("publish reading event")
	}
}

func (s *Service) appendRecord(ctx context.Context, reading sensor.Reading, state relay.State) {
	if s.deps.Store == nil {
		return
	}
	record := storage.NewSensorRecord(reading, state)
	if err := s.deps.Store.AppendRecord(ctx, record); err != nil {
		s.logger.Error().Err(err).Time("tick", reading.Timestamp).Msg("append sensor record")
	}
}

func (s *Service) redrawChart() {
	if s.chartPath == "" {
		return
	}
	if err := display.WriteChartPNG(s.chartPath, s.history.Snapshot()); err != nil {
		s.logger.Error().Err(err).Str("path", s.chartPath).Msg("redraw chart")
	}
}

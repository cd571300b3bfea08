package app

import (
	"context"

	"sensor-dashboard/internal/broker"
)

// Toggle publishes one button activation to the command topic. The running
// dashboard picks it up, flips the relay, and publishes the new state.
func (a *App) Toggle(ctx context.Context) error {
	client := a.newBrokerClient()
	if err := client.Connect(ctx); err != nil {
		return err
	}
	defer client.Disconnect()

	payload, err := broker.EncodeButtonPress()
	if err != nil {
		return err
	}

	if err := client.Publish(ctx, a.Config.Broker.CommandTopic, payload); err != nil {
		return err
	}

	a.Logger.Info().Str("topic", a.Config.Broker.CommandTopic).Msg("button press published")
	return nil
}

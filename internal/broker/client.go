package broker

import (
	"context"
	"errors"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ErrNotConnected indicates a publish was attempted without an open
// broker connection.
var ErrNotConnected = errors.New("broker: not connected")

// Options configure the MQTT client.
type Options struct {
	URL            string
	ClientID       string
	QoS            byte
	ConnectTimeout time.Duration
	PublishTimeout time.Duration
}

// Client wraps a paho MQTT connection. Publishes are QoS-0 fire-and-forget;
// the broker being unreachable is reported as an error, never a panic.
type Client struct {
	client mqtt.Client
	opts   Options
	logger zerolog.Logger
}

// NewClient builds an MQTT client handle. The connection is opened by
// Connect; the client ID gets a random suffix so multiple dashboards can
// share a broker.
func NewClient(opts Options, logger zerolog.Logger) *Client {
	if opts.ConnectTimeout <= 0 {
		opts.ConnectTimeout = 10 * time.Second
	}
	if opts.PublishTimeout <= 0 {
		opts.PublishTimeout = 2 * time.Second
	}
	if opts.ClientID == "" {
		opts.ClientID = "sensordash"
	}

	clientID := fmt.Sprintf("%s-%s", opts.ClientID, uuid.NewString()[:8])

	mqttOpts := mqtt.NewClientOptions().
		AddBroker(opts.URL).
		SetClientID(clientID).
		SetConnectTimeout(opts.ConnectTimeout).
		SetAutoReconnect(true)

	return &Client{
		client: mqtt.NewClient(mqttOpts),
		opts:   opts,
		logger: logger.With().Str("component", "broker").Str("client_id", clientID).Logger(),
	}
}

// Connect opens the broker connection.
func (c *Client) Connect(ctx context.Context) error {
	token := c.client.Connect()
	if !token.WaitTimeout(c.opts.ConnectTimeout) {
		return fmt.Errorf("connect to broker %s: timeout after %s", c.opts.URL, c.opts.ConnectTimeout)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("connect to broker %s: %w", c.opts.URL, err)
	}
	c.logger.Info().Str("url", c.opts.URL).Msg("connected to broker")
	return nil
}

// Publish sends one payload. At QoS 0 the token resolves locally, so the
// call blocks at most briefly on an open connection.
func (c *Client) Publish(ctx context.Context, topic string, payload []byte) error {
	if c.client == nil {
		return ErrNotConnected
	}
	if !c.client.IsConnected() {
		return fmt.Errorf("publish to %s: %w", topic, ErrNotConnected)
	}

	token := c.client.Publish(topic, c.opts.QoS, false, payload)
	if !token.WaitTimeout(c.opts.PublishTimeout) {
		return fmt.Errorf("publish to %s: timeout after %s", topic, c.opts.PublishTimeout)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish to %s: %w", topic, err)
	}

	c.logger.Debug().Str("topic", topic).Int("bytes", len(payload)).Msg("published")
	return nil
}

// SubscribeToggleRequests watches the command topic for button activations.
// Received messages are queued on the returned channel; the pipeline drains
// it on its own goroutine so display state stays single-threaded. A full
// queue drops the request rather than blocking the paho callback.
func (c *Client) SubscribeToggleRequests(topic string, buffer int) (<-chan ToggleRequest, error) {
	if buffer <= 0 {
		buffer = 16
	}
	requests := make(chan ToggleRequest, buffer)

	handler := func(_ mqtt.Client, msg mqtt.Message) {
		select {
		case requests <- ToggleRequest{ReceivedAt: time.Now().UTC()}:
		default:
			c.logger.Warn().Str("topic", msg.Topic()).Msg("toggle queue full, request dropped")
		}
	}

	token := c.client.Subscribe(topic, c.opts.QoS, handler)
	if !token.WaitTimeout(c.opts.ConnectTimeout) {
		return nil, fmt.Errorf("subscribe %s: timeout after %s", topic, c.opts.ConnectTimeout)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("subscribe %s: %w", topic, err)
	}

	c.logger.Info().Str("topic", topic).Msg("subscribed for toggle requests")
	return requests, nil
}

// Disconnect closes the connection, allowing in-flight work to settle.
func (c *Client) Disconnect() {
	if c.client != nil && c.client.IsConnected() {
		c.client.Disconnect(250)
	}
}

var _ Publisher = (*Client)(nil)

package mqtt

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/LightD31/humidex-ha/internal/config"
	"github.com/LightD31/humidex-ha/internal/modules/sensor/types"
)

// Client wraps a paho client for both sides of the humidex data flow:
// it subscribes to raw source-state documents and publishes derived
// sensor states.
type Client struct {
	client    mqtt.Client
	cfg       config.Config
	logger    *slog.Logger
	mu        sync.RWMutex
	connected bool

	stopCh   chan struct{}
	stopOnce sync.Once

	// MessageHandler is called for each valid source-state message.
	MessageHandler func(state types.SourceState) error
}

// SourceSubscriber is the narrow surface feature modules need to attach
// their message handler.
type SourceSubscriber interface {
	SetMessageHandler(handler func(state types.SourceState) error)
}

// SetMessageHandler sets the handler for source-state messages.
func (c *Client) SetMessageHandler(handler func(state types.SourceState) error) {
	c.MessageHandler = handler
}

func NewClient(cfg config.Config, logger *slog.Logger) *Client {
	c := &Client{
		cfg:    cfg,
		logger: logger,
		stopCh: make(chan struct{}),
	}

	opts := mqtt.NewClientOptions()
	opts.AddBroker(fmt.Sprintf("tcp://%s:%d", cfg.MQTTBroker, cfg.MQTTPort))
	opts.SetClientID(cfg.MQTTClientID)

	// Session settings
	opts.SetCleanSession(true)

	opts.SetAutoReconnect(true)
	opts.SetConnectRetry(true)
	opts.SetConnectRetryInterval(5 * time.Second)
	opts.SetMaxReconnectInterval(60 * time.Second)

	// Keepalive / timeouts
	opts.SetKeepAlive(30 * time.Second)
	opts.SetPingTimeout(10 * time.Second)

	// Callbacks keep internal state accurate
	opts.SetOnConnectHandler(func(_ mqtt.Client) {
		c.setConnected(true)
		logger.Info("mqtt connected", "broker", cfg.MQTTBroker, "port", cfg.MQTTPort)
	})

	opts.SetConnectionLostHandler(func(_ mqtt.Client, err error) {
		c.setConnected(false)
		logger.Warn("mqtt connection lost", "error", err)
	})

	c.client = mqtt.NewClient(opts)
	return c
}

// Connect establishes the connection and subscribes to the configured
// source topic. The message handler must be set before Connect: the
// broker may deliver queued messages right after CONNACK.
func (c *Client) Connect(ctx context.Context) error {
	// Fail fast if already stopped.
	select {
	case <-c.stopCh:
		return fmt.Errorf("mqtt client stopped")
	default:
	}

	// Fast path.
	if c.IsConnected() {
		return nil
	}

	token := c.client.Connect()

	// Wait in a ctx/stop-aware loop.
	const poll = 200 * time.Millisecond
	for {
		if token.WaitTimeout(poll) {
			if err := token.Error(); err != nil {
				return fmt.Errorf("mqtt connect: %w", err)
			}
			// OnConnectHandler sets connected=true.
			break
		}

		select {
		case <-ctx.Done():
			c.client.Disconnect(0)
			return ctx.Err()
		case <-c.stopCh:
			c.client.Disconnect(0)
			return fmt.Errorf("mqtt client stopped")
		default:
		}
	}

	if err := c.subscribe(); err != nil {
		c.client.Disconnect(0)
		return fmt.Errorf("subscribe: %w", err)
	}

	return nil
}

func (c *Client) subscribe() error {
	if !c.IsConnected() {
		return fmt.Errorf("mqtt client not connected")
	}

	topic := c.cfg.MQTTSourceTopic
	qos := byte(1) // At least once delivery

	messageHandler := func(client mqtt.Client, msg mqtt.Message) {
		c.handleMessage(msg.Topic(), msg.Payload())
	}

	token := c.client.Subscribe(topic, qos, messageHandler)
	if !token.WaitTimeout(5 * time.Second) {
		return fmt.Errorf("subscribe timeout for topic %s", topic)
	}
	if token.Error() != nil {
		return fmt.Errorf("subscribe to %s: %w", topic, token.Error())
	}

	c.logger.Info("subscribed to source topic", "topic", topic, "qos", qos)
	return nil
}

func (c *Client) handleMessage(topic string, payload []byte) {
	c.logger.Debug("received mqtt message", "topic", topic, "size", len(payload))

	var state types.SourceState
	if err := json.Unmarshal(payload, &state); err != nil {
		c.logger.Warn("failed to parse source state",
			"topic", topic,
			"error", err,
			"payload", string(payload),
		)
		return
	}

	if err := validateSourceState(state); err != nil {
		c.logger.Warn("invalid source state",
			"topic", topic,
			"entity_id", state.EntityID,
			"error", err,
		)
		return
	}

	if c.MessageHandler != nil {
		if err := c.MessageHandler(state); err != nil {
			c.logger.Error("message handler failed",
				"topic", topic,
				"entity_id", state.EntityID,
				"error", err,
			)
		}
	}
}

func validateSourceState(s types.SourceState) error {
	if s.EntityID == "" {
		return fmt.Errorf("entity_id is required")
	}
	if s.Timestamp.IsZero() {
		return fmt.Errorf("timestamp is required")
	}
	// A source claiming to be valid must actually carry a value; the
	// reverse (invalid with no value) is a normal unavailability signal.
	if s.Valid && s.Value == nil {
		return fmt.Errorf("valid state without a value")
	}
	return nil
}

// Publish marshals v as JSON and publishes it on topic with QoS 1.
func (c *Client) Publish(topic string, v any, retained bool) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal payload for %s: %w", topic, err)
	}

	token := c.client.Publish(topic, 1, retained, payload)
	if !token.WaitTimeout(5 * time.Second) {
		return fmt.Errorf("publish timeout for topic %s", topic)
	}
	if token.Error() != nil {
		return fmt.Errorf("publish to %s: %w", topic, token.Error())
	}

	c.logger.Debug("published mqtt message", "topic", topic, "size", len(payload))
	return nil
}

// IsConnected returns whether the client is connected.
func (c *Client) IsConnected() bool {
	c.mu.RLock()
	connected := c.connected
	c.mu.RUnlock()
	return connected && c.client.IsConnected()
}

// Disconnect stops the client and closes the MQTT connection.
// Idempotent and safe to call multiple times.
func (c *Client) Disconnect() {
	// Signal shutdown once (unblocks any Connect loops).
	c.stopOnce.Do(func() { close(c.stopCh) })

	// Unsubscribe before disconnecting
	if c.client != nil && c.IsConnected() {
		token := c.client.Unsubscribe(c.cfg.MQTTSourceTopic)
		token.WaitTimeout(2 * time.Second)
	}

	// Disconnect without holding c.mu to avoid lock contention/deadlocks.
	if c.client != nil {
		c.client.Disconnect(250)
	}

	c.setConnected(false)
	c.logger.Info("mqtt client disconnected")
}

func (c *Client) setConnected(v bool) {
	c.mu.Lock()
	c.connected = v
	c.mu.Unlock()
}

package homeassistant

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/pipsimon/air-remote-mediator/internal/config"
)

const (

	// QoS used for subscriptions and publishes.
	qos byte = 1

	// Capacity of the inbound message channel.
	inboundSize = 10

	// Grace period for in-flight work on disconnect, in milliseconds.
	quiesce = 250
)

// A [Broker] backed by the Eclipse Paho client.
type MQTT struct {
	cfg      config.MQTTConfig // Connection settings.
	client   mqtt.Client       // Paho client, created unconnected.
	topics   []string          // Resubscribed on every connect.
	messages chan Message      // Inbound messages.
	done     chan struct{}     // Closed on disconnect to release blocked deliveries.
	once     sync.Once         // Guards done.
}

// Creates an unconnected broker client.
func NewMQTT(cfg config.MQTTConfig) *MQTT {
	m := &MQTT{
		cfg:      cfg,
		messages: make(chan Message, inboundSize),
		done:     make(chan struct{}),
	}

	opts := mqtt.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(cfg.ClientID).
		SetUsername(cfg.Username).
		SetPassword(cfg.Password).
		SetKeepAlive(cfg.KeepAlive.Std()).
		SetConnectTimeout(cfg.ConnectTimeout.Std()).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetOrderMatters(true).
		SetOnConnectHandler(m.onConnect).
		SetConnectionLostHandler(func(_ mqtt.Client, err error) {
			slog.Warn("mqtt connection lost", "error", err)
		})

	m.client = mqtt.NewClient(opts)
	return m
}

// Connects to the broker, retrying until it answers or the context ends.
//
// Publishes made before the connection is up are queued by the client.
func (m *MQTT) Connect(ctx context.Context, topics []string) (<-chan Message, error) {
	m.topics = topics

	slog.Info("connecting to mqtt", "broker", m.cfg.Broker, "client_id", m.cfg.ClientID)

	token := m.client.Connect()
	select {
	case <-token.Done():
		if err := token.Error(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrConnect, err)
		}
	case <-ctx.Done():
		m.Disconnect()
		return nil, ctx.Err()
	}

	return m.messages, nil
}

// Subscribes to every topic. Runs after each successful (re)connect, since
// the session is not persisted by the broker.
func (m *MQTT) onConnect(c mqtt.Client) {
	slog.Info("connected to mqtt")

	filters := make(map[string]byte, len(m.topics))
	for _, t := range m.topics {
		filters[t] = qos
	}

	token := c.SubscribeMultiple(filters, m.deliver)
	go func() {
		token.Wait()
		if err := token.Error(); err != nil {
			slog.Error("mqtt subscribe failed", "topics", m.topics, "error", err)
			return
		}
		slog.Debug("mqtt subscribed", "topics", m.topics)
	}()
}

// Hands a message to the reader, blocking while it is busy.
func (m *MQTT) deliver(_ mqtt.Client, msg mqtt.Message) {
	select {
	case m.messages <- Message{Topic: msg.Topic(), Payload: msg.Payload()}:
	case <-m.done:
	}
}

// Publishes and waits for the broker's acknowledgement.
func (m *MQTT) Publish(ctx context.Context, topic string, payload []byte) error {
	token := m.client.Publish(topic, qos, false, payload)

	timer := time.NewTimer(m.cfg.PublishTimeout.Std())
	defer timer.Stop()

	select {
	case <-token.Done():
		if err := token.Error(); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrPublish, topic, err)
		}
		return nil
	case <-timer.C:
		return fmt.Errorf("%w: %s: timed out", ErrPublish, topic)
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Reports whether the client holds an open connection.
func (m *MQTT) Connected() bool {
	return m.client.IsConnectionOpen()
}

// Disconnects and releases any blocked delivery.
func (m *MQTT) Disconnect() {
	m.once.Do(func() { close(m.done) })
	m.client.Disconnect(quiesce)
}

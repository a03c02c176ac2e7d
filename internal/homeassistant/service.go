package homeassistant

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/pipsimon/air-remote-mediator/internal/config"
	"github.com/pipsimon/air-remote-mediator/internal/event"
)

// How often the heartbeat fires while the broker connection is up.
const heartbeatInterval = time.Second

// Carries messages to and from an MQTT broker.
type Broker interface {

	// Connects and subscribes to topics at QoS 1, resubscribing after every
	// reconnect. Received messages arrive on the returned channel.
	Connect(ctx context.Context, topics []string) (<-chan Message, error)

	// Publishes payload at QoS 1 without the retain flag.
	Publish(ctx context.Context, topic string, payload []byte) error

	// Reports whether the connection is currently up.
	Connected() bool

	// Closes the connection.
	Disconnect()
}

// Bridges Home Assistant and the mediator.
type Service struct {
	broker    Broker                     // MQTT transport.
	sink      event.Sink                 // Receives translated statestream events.
	cfg       config.HomeAssistantConfig // Topics, entities, and names.
	hostTitle string                     // Media title payload meaning the host is selected.
	limiter   *rate.Limiter              // Throttles service calls.
	heartbeat func()                     // Liveness callback.
}

// Creates a service. The heartbeat is called periodically while the broker
// is connected; it may be nil.
func New(broker Broker, sink event.Sink, cfg config.HomeAssistantConfig, heartbeat func()) *Service {
	if heartbeat == nil {
		heartbeat = func() {}
	}
	return &Service{
		broker:    broker,
		sink:      sink,
		cfg:       cfg,
		hostTitle: quoteTitle(cfg.HostInputTitle),
		limiter:   rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst),
		heartbeat: heartbeat,
	}
}

// Connects to the broker and forwards statestream events until the context
// ends.
//
// Returns an error only if the initial connection fails. Reconnection after
// that is left to the broker; while it is down the heartbeat stops, which
// the watchdog eventually treats as fatal.
func (s *Service) Run(ctx context.Context) error {
	messages, err := s.broker.Connect(ctx, s.topics())
	if err != nil {
		return err
	}
	defer s.broker.Disconnect()

	ticker := time.NewTicker(heartbeatInterval)
	defer ticker.Stop()

	s.heartbeat()

	for {
		select {
		case <-ctx.Done():
			return nil

		case <-ticker.C:
			if s.broker.Connected() {
				s.heartbeat()
			}

		case msg, ok := <-messages:
			if !ok {
				return nil
			}
			e, err := s.translate(msg)
			if err != nil {
				slog.Error("dropping mqtt message", "error", err)
				continue
			}
			if err := s.sink.Send(ctx, e); err != nil {
				return nil
			}
		}
	}
}

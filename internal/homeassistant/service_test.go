package homeassistant

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/pipsimon/air-remote-mediator/internal/config"
	"github.com/pipsimon/air-remote-mediator/internal/event"
)

type published struct {
	topic   string
	payload string
}

type fakeBroker struct {
	mu         sync.Mutex
	messages   chan Message
	topics     []string
	published  []published
	connectErr error
	publishErr error
	connected  bool
}

func newFakeBroker() *fakeBroker {
	return &fakeBroker{messages: make(chan Message, 10), connected: true}
}

func (b *fakeBroker) Connect(ctx context.Context, topics []string) (<-chan Message, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.connectErr != nil {
		return nil, b.connectErr
	}
	b.topics = topics
	return b.messages, nil
}

func (b *fakeBroker) Publish(ctx context.Context, topic string, payload []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.publishErr != nil {
		return b.publishErr
	}
	b.published = append(b.published, published{topic, string(payload)})
	return nil
}

func (b *fakeBroker) Connected() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.connected
}

func (b *fakeBroker) Disconnect() {}

func (b *fakeBroker) last(t *testing.T) published {
	t.Helper()
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.published) == 0 {
		t.Fatal("nothing published")
	}
	return b.published[len(b.published)-1]
}

func (b *fakeBroker) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.published)
}

type chanSink chan event.Event

func (s chanSink) Send(ctx context.Context, e event.Event) error {
	select {
	case s <- e:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func newService(b Broker, sink event.Sink) *Service {
	return New(b, sink, config.Default().HomeAssistant, nil)
}

func TestServiceCallPayloads(t *testing.T) {
	tests := []struct {
		name    string
		call    func(context.Context, *Service) error
		topic   string
		payload string
	}{
		{
			name:    "script",
			call:    func(ctx context.Context, s *Service) error { return s.RunScript(ctx, "toggle_tv_and_dennis") },
			topic:   "homeassistant_cmd/run/script.turn_on",
			payload: `{"entity_id":"script.toggle_tv_and_dennis"}`,
		},
		{
			name:    "remote command",
			call:    func(ctx context.Context, s *Service) error { return s.SendRemoteCommand(ctx, Confirm) },
			topic:   "homeassistant_cmd/run/remote.send_command",
			payload: `{"entity_id":"remote.sony_bravia","command":"Confirm"}`,
		},
		{
			name:    "open app",
			call:    func(ctx context.Context, s *Service) error { return s.OpenApp(ctx, "HALauncher") },
			topic:   "homeassistant_cmd/run/media_player.play_media",
			payload: `{"entity_id":"media_player.sony_bravia","media_content_id":"HALauncher","media_content_type":"app"}`,
		},
		{
			name:    "media player",
			call:    func(ctx context.Context, s *Service) error { return s.MediaPlayer(ctx, "volume_up") },
			topic:   "homeassistant_cmd/run/media_player.volume_up",
			payload: `{"entity_id":"media_player.sony_bravia"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newFakeBroker()
			s := newService(b, make(chanSink))

			if err := tt.call(context.Background(), s); err != nil {
				t.Fatalf("call: %v", err)
			}

			got := b.last(t)
			if got.topic != tt.topic {
				t.Fatalf("topic = %q, want %q", got.topic, tt.topic)
			}
			if got.payload != tt.payload {
				t.Fatalf("payload = %s, want %s", got.payload, tt.payload)
			}
			if n := b.count(); n != 1 {
				t.Fatalf("published %d messages, want 1", n)
			}
		})
	}
}

func TestServiceCallPublishError(t *testing.T) {
	b := newFakeBroker()
	b.publishErr = ErrPublish
	s := newService(b, make(chanSink))

	if err := s.RunScript(context.Background(), "x"); !errors.Is(err, ErrPublish) {
		t.Fatalf("err = %v, want ErrPublish", err)
	}
	if n := b.count(); n != 0 {
		t.Fatalf("published %d messages, want 0", n)
	}
}

func TestServiceCallsBeyondBurstWait(t *testing.T) {
	cfg := config.Default().HomeAssistant
	cfg.RateLimit = 20
	cfg.RateBurst = 2

	b := newFakeBroker()
	s := New(b, make(chanSink), cfg, nil)

	start := time.Now()
	for i := 0; i < 4; i++ {
		if err := s.RunScript(context.Background(), "x"); err != nil {
			t.Fatalf("call %d: %v", i, err)
		}
	}
	elapsed := time.Since(start)

	// Two calls past the burst at 20/s need 100ms of tokens.
	if elapsed < 90*time.Millisecond {
		t.Fatalf("4 calls took %v, want at least 90ms", elapsed)
	}
	if n := b.count(); n != 4 {
		t.Fatalf("published %d messages, want 4", n)
	}
}

func TestServiceCallCancelledWhileThrottled(t *testing.T) {
	cfg := config.Default().HomeAssistant
	cfg.RateLimit = 0.01
	cfg.RateBurst = 1

	b := newFakeBroker()
	s := New(b, make(chanSink), cfg, nil)

	if err := s.RunScript(context.Background(), "x"); err != nil {
		t.Fatalf("first call: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	if err := s.RunScript(ctx, "x"); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if n := b.count(); n != 1 {
		t.Fatalf("published %d messages, want 1", n)
	}
}

func TestTranslate(t *testing.T) {
	cfg := config.Default().HomeAssistant
	cfg.TVOffStates = []string{"off", "unavailable"}
	s := New(newFakeBroker(), make(chanSink), cfg, nil)

	tests := []struct {
		name    string
		topic   string
		payload string
		want    event.Event
	}{
		{"tv off", cfg.StateTopic, "off", event.TVState(false)},
		{"tv unavailable", cfg.StateTopic, "unavailable", event.TVState(false)},
		{"tv idle", cfg.StateTopic, "idle", event.TVState(true)},
		{"tv unknown", cfg.StateTopic, "unknown", event.TVState(true)},
		{"host selected", cfg.InputTopic, `"HDMI 1"`, event.HostInput(true)},
		{"other input", cfg.InputTopic, `"HDMI 2"`, event.HostInput(false)},
		{"unquoted title", cfg.InputTopic, `HDMI 1`, event.HostInput(false)},
		{"smart tv", cfg.InputTopic, `"Smart TV"`, event.HostInput(false)},
		{"wake", cfg.WakeTopic, "", event.WakeHost()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.translate(Message{Topic: tt.topic, Payload: []byte(tt.payload)})
			if err != nil {
				t.Fatalf("translate: %v", err)
			}
			if got != tt.want {
				t.Fatalf("translate = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTranslateErrors(t *testing.T) {
	s := newService(newFakeBroker(), make(chanSink))

	if _, err := s.translate(Message{Topic: "elsewhere", Payload: []byte("on")}); !errors.Is(err, ErrTopic) {
		t.Fatalf("unknown topic err = %v, want ErrTopic", err)
	}

	bad := Message{Topic: s.cfg.StateTopic, Payload: []byte{0xff, 0xfe}}
	if _, err := s.translate(bad); !errors.Is(err, ErrPayload) {
		t.Fatalf("invalid UTF-8 err = %v, want ErrPayload", err)
	}
}

func TestRunForwardsEvents(t *testing.T) {
	b := newFakeBroker()
	sink := make(chanSink, 10)
	s := newService(b, sink)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	b.messages <- Message{Topic: "unknown/topic", Payload: []byte("x")}
	b.messages <- Message{Topic: s.cfg.StateTopic, Payload: []byte("on")}
	b.messages <- Message{Topic: s.cfg.WakeTopic, Payload: []byte("1")}

	for _, want := range []event.Event{event.TVState(true), event.WakeHost()} {
		select {
		case got := <-sink:
			if got != want {
				t.Fatalf("event = %v, want %v", got, want)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for %v", want)
		}
	}

	cancel()
	if err := <-done; err != nil {
		t.Fatalf("Run() = %v, want nil", err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.topics) != 3 {
		t.Fatalf("subscribed topics = %v, want 3", b.topics)
	}
}

func TestRunConnectError(t *testing.T) {
	b := newFakeBroker()
	b.connectErr = ErrConnect
	s := newService(b, make(chanSink))

	if err := s.Run(context.Background()); !errors.Is(err, ErrConnect) {
		t.Fatalf("Run() = %v, want ErrConnect", err)
	}
}

func TestRunHeartbeatsImmediately(t *testing.T) {
	beats := make(chan struct{}, 10)
	s := New(newFakeBroker(), make(chanSink), config.Default().HomeAssistant, func() {
		select {
		case beats <- struct{}{}:
		default:
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.Run(ctx)

	select {
	case <-beats:
	case <-time.After(2 * time.Second):
		t.Fatal("no heartbeat after connect")
	}
}

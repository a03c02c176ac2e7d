package homeassistant

import (
	"encoding/json"
	"fmt"
	"slices"
	"unicode/utf8"

	"github.com/pipsimon/air-remote-mediator/internal/event"
)

// One message received from the broker.
type Message struct {
	Topic   string
	Payload []byte
}

// Topics the service subscribes to.
func (s *Service) topics() []string {
	return []string{s.cfg.StateTopic, s.cfg.InputTopic, s.cfg.WakeTopic}
}

// Converts a statestream message into an event.
//
// The state topic carries the bare state ("off", "idle", ...). The media
// title topic carries a JSON string, so the host input is matched against
// the quoted title.
func (s *Service) translate(msg Message) (event.Event, error) {
	if !utf8.Valid(msg.Payload) {
		return event.Event{}, fmt.Errorf("%w: not UTF-8 on %s", ErrPayload, msg.Topic)
	}
	payload := string(msg.Payload)

	switch msg.Topic {
	case s.cfg.StateTopic:
		return event.TVState(!slices.Contains(s.cfg.TVOffStates, payload)), nil
	case s.cfg.InputTopic:
		return event.HostInput(payload == s.hostTitle), nil
	case s.cfg.WakeTopic:
		return event.WakeHost(), nil
	}
	return event.Event{}, fmt.Errorf("%w: %q", ErrTopic, msg.Topic)
}

// Returns the title as it appears on the media title topic.
func quoteTitle(title string) string {
	b, _ := json.Marshal(title)
	return string(b)
}

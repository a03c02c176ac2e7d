package mediator

import (
	"github.com/pipsimon/air-remote-mediator/internal/remote"
)

// What the mediator knows about the TV.
type State struct {
	TVOn         bool `json:"tv_on"`         // The TV is on.
	HostSelected bool `json:"host_selected"` // The host is the current input.
}

// Returns the remote command matching the state: pass keys straight to the
// host only while the TV is on and showing it.
func (s State) passThrough() byte {
	if s.TVOn && s.HostSelected {
		return remote.PassThroughOn
	}
	return remote.PassThroughOff
}

// Counters reported by the status command.
type Stats struct {
	Events         map[string]uint64 `json:"events"`          // Events handled, by kind.
	Unhandled      uint64            `json:"unhandled"`       // Keys and codes with no mapping.
	ServiceCalls   uint64            `json:"service_calls"`   // Home Assistant calls published.
	FailedCalls    uint64            `json:"failed_calls"`    // Home Assistant calls that failed.
	RemoteCommands uint64            `json:"remote_commands"` // Commands queued for the remote.
}

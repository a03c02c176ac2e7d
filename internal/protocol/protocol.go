package protocol

import (
	"encoding/json"
	"fmt"
)

// Names a request or response.
type Command string

const (
	CmdOK       Command = "ok"       // Successful response.
	CmdError    Command = "error"    // Failed response.
	CmdStatus   Command = "status"   // Report daemon state and counters.
	CmdInject   Command = "inject"   // Enqueue an event as if a peripheral sent it.
	CmdTV       Command = "tv"       // Queue a serial command for the TV.
	CmdShutdown Command = "shutdown" // Stop the daemon.
)

// One message on the wire.
type Envelope struct {
	Command Command         `json:"command"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Payload of an error response.
type ErrorResult struct {
	Message string `json:"message"`
}

// Payload of an inject request.
type InjectRequest struct {
	Kind string `json:"kind"`           // Event kind name, e.g. "key_code".
	Data int    `json:"data,omitempty"` // Key or code for data-carrying kinds.
	On   bool   `json:"on,omitempty"`   // Flag for state-carrying kinds.
}

// Payload of a tv request.
type TVRequest struct {
	Op    string `json:"op"`              // See bravia.ParseCommand for the accepted operations.
	Value int    `json:"value,omitempty"` // HDMI input, volume, or brightness.
}

// What the mediator believes about the TV.
type StateResult struct {
	TVOn         bool  `json:"tv_on"`
	HostSelected bool  `json:"host_selected"`
	TVPower      *bool `json:"tv_power,omitempty"` // Last serial reading; absent when unknown.
}

// Payload of a status response.
type StatusResult struct {
	Running        bool              `json:"running"`
	Version        string            `json:"version"`
	Pid            int               `json:"pid"`
	Uptime         string            `json:"uptime"`
	State          StateResult       `json:"state"`
	Events         map[string]uint64 `json:"events"`
	Unhandled      uint64            `json:"unhandled"`
	ServiceCalls   uint64            `json:"service_calls"`
	FailedCalls    uint64            `json:"failed_calls"`
	RemoteCommands uint64            `json:"remote_commands"`
	Heartbeats     map[string]string `json:"heartbeats"` // Age of each worker's last beat.
}

// Encodes a command and payload into an envelope. A nil payload is omitted.
func Encode(cmd Command, payload any) ([]byte, error) {
	env := Envelope{Command: cmd}

	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrEncode, err)
		}
		env.Payload = raw
	}

	data, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncode, err)
	}
	return data, nil
}

// Decodes an envelope, returning it with its raw payload.
func Decode(data []byte) (*Envelope, json.RawMessage, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if env.Command == "" {
		return nil, nil, fmt.Errorf("%w: missing command", ErrDecode)
	}
	return &env, env.Payload, nil
}

// Decodes a payload into T.
//
// An empty payload decodes to the zero value so that commands whose fields
// are all optional can be sent bare.
func DecodePayload[T any](payload json.RawMessage) (*T, error) {
	var v T
	if len(payload) == 0 {
		return &v, nil
	}
	if err := json.Unmarshal(payload, &v); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return &v, nil
}

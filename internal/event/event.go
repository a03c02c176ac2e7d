package event

import (
	"context"
	"fmt"
	"strings"
)

// Identifies what happened.
type Kind int

const (
	KindTVState      Kind = iota + 1 // Home Assistant reports the TV on or off.
	KindHostInput                    // Home Assistant reports whether the host is the TV input.
	KindWakeHost                     // Home Assistant asks the remote to wake the host.
	KindASCIIKey                     // The remote sent a printable key.
	KindConsumerCode                 // The remote sent a HID consumer control code.
	KindKeyCode                      // The remote sent a HID keyboard usage code.
	KindOKButton                     // The remote's OK button.
	KindPowerButton                  // The remote's power button.
	KindUSBReadiness                 // The host's USB link came up or went down.
	KindTVPower                      // The serial link observed the TV power state.
	KindCheck                        // Periodic liveness check.
)

var kindNames = map[Kind]string{
	KindTVState:      "tv_state",
	KindHostInput:    "host_input",
	KindWakeHost:     "wake_host",
	KindASCIIKey:     "ascii_key",
	KindConsumerCode: "consumer_code",
	KindKeyCode:      "key_code",
	KindOKButton:     "ok_button",
	KindPowerButton:  "power_button",
	KindUSBReadiness: "usb_readiness",
	KindTVPower:      "tv_power",
	KindCheck:        "check",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Returns the kind with the given name (as printed by [Kind.String]).
func ParseKind(name string) (Kind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for k, n := range kindNames {
		if n == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// Reports whether the kind carries a boolean rather than a data byte.
func (k Kind) HasFlag() bool {
	switch k {
	case KindTVState, KindHostInput, KindUSBReadiness, KindTVPower:
		return true
	}
	return false
}

// Reports whether the kind carries a data byte.
func (k Kind) HasData() bool {
	switch k {
	case KindASCIIKey, KindConsumerCode, KindKeyCode:
		return true
	}
	return false
}

// A single report from a peripheral.
type Event struct {
	Kind Kind
	Data byte // Key or code, for kinds where HasData is true.
	On   bool // State, for kinds where HasFlag is true.
}

func (e Event) String() string {
	switch {
	case e.Kind.HasFlag():
		return fmt.Sprintf("%s(%t)", e.Kind, e.On)
	case e.Kind.HasData():
		return fmt.Sprintf("%s(0x%02X)", e.Kind, e.Data)
	default:
		return e.Kind.String()
	}
}

func TVState(on bool) Event { return Event{Kind: KindTVState, On: on} }
func HostInput(selected bool) Event { return Event{Kind: KindHostInput, On: selected} }
func WakeHost() Event { return Event{Kind: KindWakeHost} }
func ASCIIKey(key byte) Event { return Event{Kind: KindASCIIKey, Data: key} }
func ConsumerCode(code byte) Event { return Event{Kind: KindConsumerCode, Data: code} }
func KeyCode(code byte) Event { return Event{Kind: KindKeyCode, Data: code} }
func OKButton() Event { return Event{Kind: KindOKButton} }
func PowerButton() Event { return Event{Kind: KindPowerButton} }
func USBReadiness(ready bool) Event { return Event{Kind: KindUSBReadiness, On: ready} }
func TVPower(on bool) Event { return Event{Kind: KindTVPower, On: on} }
func Check() Event { return Event{Kind: KindCheck} }

// Accepts events from a peripheral.
//
// Send blocks while the consumer is backed up and returns the context's
// error if it ends first.
type Sink interface {
	Send(ctx context.Context, e Event) error
}

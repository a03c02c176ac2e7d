package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pipsimon/air-remote-mediator/internal/protocol"
	"github.com/pipsimon/air-remote-mediator/internal/server"
)

// Longest a control command waits for the daemon.
const callTimeout = 5 * time.Second

// Represents the 'air-remote-mediator status' command.
type StatusCmd struct{}

// Executes the status command, printing the daemon's report as JSON.
func (c *StatusCmd) Run(ctx context.Context) error {
	raw, err := call(ctx, protocol.CmdStatus, nil)
	if err != nil {
		return err
	}

	status, err := protocol.DecodePayload[protocol.StatusResult](raw)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(status)
}

// Represents the 'air-remote-mediator inject' command.
type InjectCmd struct {
	Kind string `arg:"" help:"Event kind, e.g. consumer_code, key_code, tv_state."`
	Data string `arg:"" optional:"" help:"Code for key events; accepts 0x prefixed hex."`
	On   bool   `help:"Flag for state events such as tv_state and host_input."`
}

// Executes the inject command.
func (c *InjectCmd) Run(ctx context.Context) error {
	req := protocol.InjectRequest{Kind: c.Kind, On: c.On}

	if c.Data != "" {
		v, err := parseData(c.Data)
		if err != nil {
			return err
		}
		req.Data = v
	}

	_, err := call(ctx, protocol.CmdInject, &req)
	return err
}

// Parses a byte written in decimal or with a 0x prefix in hex. Leading
// zeros are decimal.
func parseData(s string) (int, error) {
	digits, base := s, 10
	if rest, ok := strings.CutPrefix(strings.ToLower(s), "0x"); ok {
		digits, base = rest, 16
	}

	v, err := strconv.ParseUint(digits, base, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid data %q: want 0-255 or 0x00-0xFF", s)
	}
	return int(v), nil
}

// Represents the 'air-remote-mediator tv' command.
type TVCmd struct {
	Op    string `arg:"" enum:"power_on,power_off,hdmi,volume,mute,unmute,picture_on,picture_off,brightness,display" help:"Operation: ${enum}."`
	Value int    `arg:"" optional:"" help:"HDMI input (1-4), volume (0-100), or brightness (0-100)."`
}

// Executes the tv command.
func (c *TVCmd) Run(ctx context.Context) error {
	_, err := call(ctx, protocol.CmdTV, &protocol.TVRequest{Op: c.Op, Value: c.Value})
	return err
}

// Represents the 'air-remote-mediator stop' command.
type StopCmd struct{}

// Executes the stop command.
func (c *StopCmd) Run(ctx context.Context) error {
	_, err := call(ctx, protocol.CmdShutdown, nil)
	return err
}

func call(ctx context.Context, cmd protocol.Command, payload any) (json.RawMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()
	return server.Call(ctx, RootCmd.Socket, cmd, payload)
}

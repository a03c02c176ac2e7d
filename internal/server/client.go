package server

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net"

	"github.com/pipsimon/air-remote-mediator/internal/paths"
	"github.com/pipsimon/air-remote-mediator/internal/protocol"
)

// Sends one command to a running daemon and returns the response payload.
//
// An "error" response is returned as an [ErrRemote] carrying the daemon's
// message. An empty socketPath uses the default socket.
func Call(ctx context.Context, socketPath string, cmd protocol.Command, payload any) (json.RawMessage, error) {
	if socketPath == "" {
		socketPath = paths.Socket()
	}

	var d net.Dialer
	conn, err := d.DialContext(ctx, "unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDial, err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		conn.SetDeadline(deadline)
	}

	data, err := protocol.Encode(cmd, payload)
	if err != nil {
		return nil, err
	}
	if _, err := conn.Write(append(data, '\n')); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDial, err)
	}

	line, err := bufio.NewReader(conn).ReadBytes('\n')
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDial, err)
	}

	env, raw, err := protocol.Decode(line)
	if err != nil {
		return nil, err
	}

	if env.Command == protocol.CmdError {
		res, err := protocol.DecodePayload[protocol.ErrorResult](raw)
		if err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s", ErrRemote, res.Message)
	}

	return raw, nil
}

package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"os"
	"time"

	"github.com/pipsimon/air-remote-mediator/internal"
	"github.com/pipsimon/air-remote-mediator/internal/bravia"
	"github.com/pipsimon/air-remote-mediator/internal/event"
	"github.com/pipsimon/air-remote-mediator/internal/protocol"
)

// Handles a status command.
func (s *Server) handleStatus(conn net.Conn) {
	status := s.backend.Status()

	status.Running = true
	status.Version = internal.VersionString()
	status.Pid = os.Getpid()
	status.Uptime = time.Since(s.startedAt).Truncate(time.Second).String()

	s.respond(conn, protocol.CmdOK, &status)
}

// Handles an inject command.
//
// The event is validated against its kind: data-carrying kinds need a byte
// value, and the value is ignored for the rest.
func (s *Server) handleInject(ctx context.Context, conn net.Conn, payload json.RawMessage) {
	req, err := protocol.DecodePayload[protocol.InjectRequest](payload)
	if err != nil {
		s.fail(conn, err)
		return
	}

	kind, err := event.ParseKind(req.Kind)
	if err != nil {
		s.fail(conn, err)
		return
	}

	e := event.Event{Kind: kind}
	switch {
	case kind.HasData():
		if req.Data < 0 || req.Data > 0xFF {
			s.fail(conn, fmt.Errorf("data %d does not fit in a byte", req.Data))
			return
		}
		e.Data = byte(req.Data)
	case kind.HasFlag():
		e.On = req.On
	}

	if err := s.backend.Inject(ctx, e); err != nil {
		s.fail(conn, err)
		return
	}

	slog.Info("event injected", "event", e.String())
	s.respond(conn, protocol.CmdOK, nil)
}

// Handles a tv command.
func (s *Server) handleTV(ctx context.Context, conn net.Conn, payload json.RawMessage) {
	req, err := protocol.DecodePayload[protocol.TVRequest](payload)
	if err != nil {
		s.fail(conn, err)
		return
	}

	cmd, err := bravia.ParseCommand(req.Op, req.Value)
	if err != nil {
		s.fail(conn, err)
		return
	}

	if err := s.backend.TV(ctx, cmd); err != nil {
		s.fail(conn, err)
		return
	}

	s.respond(conn, protocol.CmdOK, nil)
}

// Handles a shutdown command.
func (s *Server) handleShutdown(conn net.Conn) {
	s.respond(conn, protocol.CmdOK, nil)
	slog.Info("shutdown requested")

	s.backend.Shutdown()
}

func (s *Server) fail(conn net.Conn, err error) {
	s.respond(conn, protocol.CmdError, &protocol.ErrorResult{Message: err.Error()})
}

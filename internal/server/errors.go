package server

import "errors"

var (
	ErrServer = errors.New("control server error")
	ErrDial   = errors.New("failed to reach the daemon")
	ErrRemote = errors.New("daemon returned an error")
)

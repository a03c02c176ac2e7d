package daemon

import "errors"

var (
	ErrWorkerExited   = errors.New("worker exited")
	ErrSerialDisabled = errors.New("serial control is disabled")
)

package mediator

import "errors"

var (
	ErrRemote      = errors.New("remote command failed")
	ErrWorkerStale = errors.New("worker stopped responding")
	ErrSchedule    = errors.New("invalid check schedule")
)

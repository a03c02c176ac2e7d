package bravia

import "errors"

var (
	ErrOpen           = errors.New("failed to open serial port")
	ErrIO             = errors.New("serial i/o failed")
	ErrTimeout        = errors.New("timed out waiting for the tv")
	ErrHeader         = errors.New("unexpected response header")
	ErrAnswer         = errors.New("unexpected response answer")
	ErrChecksum       = errors.New("invalid response checksum")
	ErrEmptyChecksum  = errors.New("empty response checksum")
	ErrShortResponse  = errors.New("response too short")
	ErrUnknownCommand = errors.New("unknown tv command")
	ErrValue          = errors.New("value out of range")
)

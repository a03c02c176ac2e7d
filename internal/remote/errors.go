package remote

import "errors"

var (
	ErrBus  = errors.New("i2c bus error")
	ErrOpen = errors.New("failed to open i2c bus")
)

package protocol

import "errors"

var (
	ErrDecode = errors.New("malformed message")
	ErrEncode = errors.New("failed to encode message")
)

package bravia

import (
	"fmt"
	"io"
)

// Request headers.
const (
	controlRequest byte = 0x8C
	queryRequest   byte = 0x83
)

// Category shared by every function used here.
const category byte = 0x00

// Function codes.
const (
	powerFunction       byte = 0x00
	inputSelectFunction byte = 0x02
	volumeFunction      byte = 0x05
	mutingFunction      byte = 0x06
	pictureFunction     byte = 0x0D
	displayFunction     byte = 0x0F
	brightnessFunction  byte = 0x24
)

// Input type for HDMI inputs in an input select request.
const inputTypeHDMI byte = 0x04

// Response framing.
const (
	responseHeader byte = 0x70
	responseAnswer byte = 0x00
)

// Sums the bytes modulo 256, then reduces modulo 255.
//
// The second reduction is part of the TV's algorithm: a byte sum of 0xFF
// travels as 0x00.
func checksum(frame []byte) byte {
	var sum byte
	for _, b := range frame {
		sum += b
	}
	return sum % 255
}

// Appends the checksum to a request.
func frame(request []byte) []byte {
	out := make([]byte, 0, len(request)+1)
	out = append(out, request...)
	return append(out, checksum(request))
}

// Fills buf from r.
//
// Serial ports report a read timeout as a zero-length read with no error,
// which this turns into [ErrTimeout].
func readFull(r io.Reader, buf []byte) error {
	for n := 0; n < len(buf); {
		m, err := r.Read(buf[n:])
		n += m
		if n == len(buf) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w: %w", ErrIO, err)
		}
		if m == 0 {
			return ErrTimeout
		}
	}
	return nil
}

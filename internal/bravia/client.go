package bravia

import (
	"fmt"
	"io"
)

// Performs request-response exchanges with the TV.
//
// A Client is not safe for concurrent use; exchanges must not interleave on
// the wire.
type Client struct {
	rw io.ReadWriter
}

// Creates a client over an open port.
func NewClient(rw io.ReadWriter) *Client {
	return &Client{rw: rw}
}

// Sends a request and reads the response.
//
// For queries the data block without its checksum is returned. Control
// requests return nil data.
func (c *Client) exchange(request []byte) ([]byte, error) {
	if _, err := c.rw.Write(frame(request)); err != nil {
		return nil, fmt.Errorf("%w: write: %w", ErrIO, err)
	}

	head := make([]byte, 3)
	if err := readFull(c.rw, head); err != nil {
		return nil, err
	}

	if head[0] != responseHeader {
		return nil, fmt.Errorf("%w: 0x%02X", ErrHeader, head[0])
	}
	if head[1] != responseAnswer {
		return nil, fmt.Errorf("%w: 0x%02X", ErrAnswer, head[1])
	}

	if request[0] != queryRequest {
		if head[2] != checksum(head[:2]) {
			return nil, ErrChecksum
		}
		return nil, nil
	}

	body := make([]byte, int(head[2]))
	if err := readFull(c.rw, body); err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return nil, ErrEmptyChecksum
	}

	data, sum := body[:len(body)-1], body[len(body)-1]
	if sum != checksum(append(head, data...)) {
		return nil, ErrChecksum
	}
	return data, nil
}

func (c *Client) control(function byte, data ...byte) error {
	request := append([]byte{controlRequest, category, function, byte(len(data) + 1)}, data...)
	_, err := c.exchange(request)
	return err
}

// Reports whether the TV is powered on (not in standby).
func (c *Client) PowerOn() (bool, error) {
	data, err := c.exchange([]byte{queryRequest, category, powerFunction, 0xFF, 0xFF})
	if err != nil {
		return false, err
	}
	if len(data) == 0 {
		return false, ErrShortResponse
	}
	return data[0] == 1, nil
}

// Switches the TV on or to standby.
func (c *Client) SetPower(on bool) error {
	return c.control(powerFunction, boolByte(on))
}

// Selects HDMI input n (1-based).
func (c *Client) SelectHDMI(n int) error {
	if n < 1 || n > 0xFF {
		return fmt.Errorf("%w: hdmi %d", ErrValue, n)
	}
	return c.control(inputSelectFunction, inputTypeHDMI, byte(n))
}

// Sets the volume directly.
func (c *Client) SetVolume(v int) error {
	if v < 0 || v > 100 {
		return fmt.Errorf("%w: volume %d", ErrValue, v)
	}
	return c.control(volumeFunction, 0x01, byte(v))
}

// Mutes or unmutes the speakers.
func (c *Client) SetMute(on bool) error {
	return c.control(mutingFunction, 0x01, boolByte(on))
}

// Turns the picture on or off (audio keeps playing).
func (c *Client) SetPicture(on bool) error {
	return c.control(pictureFunction, boolByte(on))
}

// Sets the backlight brightness directly.
func (c *Client) SetBrightness(v int) error {
	if v < 0 || v > 100 {
		return fmt.Errorf("%w: brightness %d", ErrValue, v)
	}
	return c.control(brightnessFunction, 0x01, byte(v))
}

// Toggles the on-screen display.
func (c *Client) ToggleDisplay() error {
	return c.control(displayFunction, 0x00)
}

func boolByte(b bool) byte {
	if b {
		return 0x01
	}
	return 0x00
}

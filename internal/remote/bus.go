package remote

import (
	"fmt"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

// An I2C bus opened through periph.io, addressed at the remote.
type PeriphBus struct {
	bus i2c.BusCloser // Underlying bus handle.
	dev *i2c.Dev      // Device view at the remote's address.
}

// Opens the named bus and addresses the device at addr.
//
// An empty name selects the first bus the host exposes (/dev/i2c-1 on a
// Raspberry Pi).
func Open(name string, addr uint16) (*PeriphBus, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("%w: host init: %w", ErrOpen, err)
	}

	bus, err := i2creg.Open(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpen, err)
	}

	return &PeriphBus{
		bus: bus,
		dev: &i2c.Dev{Bus: bus, Addr: addr},
	}, nil
}

// Reads len(p) bytes from the remote.
func (b *PeriphBus) Read(p []byte) error {
	return b.dev.Tx(nil, p)
}

// Writes p to the remote.
func (b *PeriphBus) Write(p []byte) error {
	return b.dev.Tx(p, nil)
}

// Releases the bus.
func (b *PeriphBus) Close() error {
	return b.bus.Close()
}

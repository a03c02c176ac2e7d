package remote

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pipsimon/air-remote-mediator/internal/event"
)

const (

	// Address the remote firmware listens on.
	DefaultAddress uint16 = 0x05

	// Keys go straight to the host over USB.
	PassThroughOn byte = 'P'

	// Keys are reported to the mediator.
	PassThroughOff byte = 'p'

	// Pulse the host's USB wake line.
	Wake byte = 'R'

	// Default delay between event reads.
	DefaultInterval = 10 * time.Millisecond

	// Capacity of the outgoing command queue.
	queueSize = 10
)

// Event codes sent by the remote firmware.
const (
	codeNone         byte = 0
	codeASCII        byte = 'A'
	codeConsumer     byte = 'C'
	codeKey          byte = 'K'
	codeOK           byte = 'O'
	codePower        byte = 'W'
	codeUSBReadiness byte = 'U'

	// Data byte of a USB readiness event meaning the link is up.
	usbReady byte = 'Y'
)

// Transfers bytes with the remote.
//
// Read fills p completely or fails. Write sends p as one transaction.
type Bus interface {
	Read(p []byte) error
	Write(p []byte) error
}

// Tunes a [Remote].
type Options struct {
	Interval  time.Duration // Delay between event reads. Zero uses [DefaultInterval].
	Heartbeat func()        // Called once per poll. May be nil.
}

// Polls the remote for events and writes queued commands.
type Remote struct {
	bus       Bus           // Transport to the remote.
	sink      event.Sink    // Receives decoded events.
	out       chan byte     // Commands waiting to be written.
	interval  time.Duration // Delay between polls.
	heartbeat func()        // Liveness callback.
}

// Creates a remote reading from bus and reporting to sink.
func New(bus Bus, sink event.Sink, opts Options) *Remote {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.Heartbeat == nil {
		opts.Heartbeat = func() {}
	}
	return &Remote{
		bus:       bus,
		sink:      sink,
		out:       make(chan byte, queueSize),
		interval:  opts.Interval,
		heartbeat: opts.Heartbeat,
	}
}

// Queues a command byte for the remote.
//
// Blocks while the queue is full. Returns the context's error if it ends
// first.
func (r *Remote) Command(ctx context.Context, cmd byte) error {
	select {
	case r.out <- cmd:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Drains the backlog, then polls until the context ends or the bus fails.
//
// A bus failure is returned as an error; the remote cannot be used after it.
// When the context ends Run returns nil.
func (r *Remote) Run(ctx context.Context) error {
	slog.Info("remote connecting")

	if err := r.drain(ctx); err != nil {
		return err
	}

	slog.Info("remote ready")

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		r.heartbeat()

		if err := r.poll(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// Reads and discards events until the remote reports none pending. Events
// buffered while the mediator was down are no longer relevant.
func (r *Remote) drain(ctx context.Context) error {
	buf := make([]byte, 2)
	discarded := 0

	for {
		if ctx.Err() != nil {
			return nil
		}
		if err := r.bus.Read(buf); err != nil {
			return fmt.Errorf("%w: read: %w", ErrBus, err)
		}
		if buf[0] == codeNone {
			break
		}
		discarded++
	}

	if discarded > 0 {
		slog.Debug("discarded stale remote events", "count", discarded)
	}
	return nil
}

// Reads one event, forwards it, then writes every queued command.
func (r *Remote) poll(ctx context.Context) error {
	buf := make([]byte, 2)
	if err := r.bus.Read(buf); err != nil {
		return fmt.Errorf("%w: read: %w", ErrBus, err)
	}

	code, data := buf[0], buf[1]
	if code != codeNone {
		if e, ok := decode(code, data); ok {
			if err := r.sink.Send(ctx, e); err != nil {
				return err
			}
		} else {
			slog.Debug("unknown remote event", "code", fmt.Sprintf("0x%02X", code), "data", fmt.Sprintf("0x%02X", data))
		}
	}

	for {
		select {
		case cmd := <-r.out:
			slog.Info("remote command", "command", string(rune(cmd)))
			if err := r.bus.Write([]byte{cmd}); err != nil {
				return fmt.Errorf("%w: write: %w", ErrBus, err)
			}
		default:
			return nil
		}
	}
}

// Maps a firmware event to a mediator event.
func decode(code, data byte) (event.Event, bool) {
	switch code {
	case codeASCII:
		return event.ASCIIKey(data), true
	case codeConsumer:
		return event.ConsumerCode(data), true
	case codeKey:
		return event.KeyCode(data), true
	case codeOK:
		return event.OKButton(), true
	case codePower:
		return event.PowerButton(), true
	case codeUSBReadiness:
		return event.USBReadiness(data == usbReady), true
	}
	return event.Event{}, false
}

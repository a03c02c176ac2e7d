package bravia

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"go.bug.st/serial"

	"github.com/pipsimon/air-remote-mediator/internal/event"
)

const (

	// Serial device the TV is usually attached to.
	DefaultPort = "/dev/ttyUSB0"

	// Line speed of the control port.
	DefaultBaudRate = 9600

	// Default wait for a response before the read times out.
	DefaultReadTimeout = 500 * time.Millisecond

	// Default delay between power queries.
	DefaultPollInterval = 500 * time.Millisecond

	// Default delay before reopening a lost port.
	DefaultReconnectDelay = time.Second

	// Capacity of the command queue.
	queueSize = 10
)

// Opens the serial port. Read timeouts must be configured by the opener.
type Opener func() (io.ReadWriteCloser, error)

// Returns an [Opener] for a local serial device at 8N1.
func SerialOpener(path string, baud int, timeout time.Duration) Opener {
	return func() (io.ReadWriteCloser, error) {
		port, err := serial.Open(path, &serial.Mode{
			BaudRate: baud,
			DataBits: 8,
			Parity:   serial.NoParity,
			StopBits: serial.OneStopBit,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrOpen, path, err)
		}
		if err := port.SetReadTimeout(timeout); err != nil {
			port.Close()
			return nil, fmt.Errorf("%w: %s: %w", ErrOpen, path, err)
		}
		return port, nil
	}
}

// Names a queued TV operation.
type Op string

const (
	OpPowerOn    Op = "power_on"
	OpPowerOff   Op = "power_off"
	OpHDMI       Op = "hdmi"
	OpVolume     Op = "volume"
	OpMute       Op = "mute"
	OpUnmute     Op = "unmute"
	OpPictureOn  Op = "picture_on"
	OpPictureOff Op = "picture_off"
	OpBrightness Op = "brightness"
	OpDisplay    Op = "display"
)

// A TV operation with its argument, if any.
type Command struct {
	Op    Op  `json:"op"`
	Value int `json:"value,omitempty"`
}

// Validates a command received from outside the process.
func ParseCommand(op string, value int) (Command, error) {
	cmd := Command{Op: Op(strings.ToLower(strings.TrimSpace(op))), Value: value}
	switch cmd.Op {
	case OpPowerOn, OpPowerOff, OpMute, OpUnmute, OpPictureOn, OpPictureOff, OpDisplay:
		cmd.Value = 0
	case OpHDMI:
		if value < 1 || value > 4 {
			return Command{}, fmt.Errorf("%w: hdmi %d", ErrValue, value)
		}
	case OpVolume:
		if value < 0 || value > 100 {
			return Command{}, fmt.Errorf("%w: volume %d", ErrValue, value)
		}
	case OpBrightness:
		if value < 0 || value > 100 {
			return Command{}, fmt.Errorf("%w: brightness %d", ErrValue, value)
		}
	default:
		return Command{}, fmt.Errorf("%w: %q", ErrUnknownCommand, op)
	}
	return cmd, nil
}

// Runs the command over c.
func (cmd Command) apply(c *Client) error {
	switch cmd.Op {
	case OpPowerOn:
		return c.SetPower(true)
	case OpPowerOff:
		return c.SetPower(false)
	case OpHDMI:
		return c.SelectHDMI(cmd.Value)
	case OpVolume:
		return c.SetVolume(cmd.Value)
	case OpMute:
		return c.SetMute(true)
	case OpUnmute:
		return c.SetMute(false)
	case OpPictureOn:
		return c.SetPicture(true)
	case OpPictureOff:
		return c.SetPicture(false)
	case OpBrightness:
		return c.SetBrightness(cmd.Value)
	case OpDisplay:
		return c.ToggleDisplay()
	}
	return fmt.Errorf("%w: %q", ErrUnknownCommand, cmd.Op)
}

// Tunes a [Monitor].
type Options struct {
	PollInterval   time.Duration // Zero uses [DefaultPollInterval].
	ReconnectDelay time.Duration // Zero uses [DefaultReconnectDelay].
	Heartbeat      func()        // Called once per poll. May be nil.
}

// Owns the serial link to the TV.
type Monitor struct {
	open      Opener        // Opens the port on each (re)connect.
	sink      event.Sink    // Receives power changes.
	cmds      chan Command  // Commands waiting for the link.
	poll      time.Duration // Delay between power queries.
	reconnect time.Duration // Delay before reopening.
	heartbeat func()        // Liveness callback.

	mu    sync.Mutex // Guards power.
	power *bool      // Last observed power state, nil until the first poll.
}

// Creates a monitor. The port is not opened until [Monitor.Run].
func NewMonitor(open Opener, sink event.Sink, opts Options) *Monitor {
	if opts.PollInterval <= 0 {
		opts.PollInterval = DefaultPollInterval
	}
	if opts.ReconnectDelay <= 0 {
		opts.ReconnectDelay = DefaultReconnectDelay
	}
	if opts.Heartbeat == nil {
		opts.Heartbeat = func() {}
	}
	return &Monitor{
		open:      open,
		sink:      sink,
		cmds:      make(chan Command, queueSize),
		poll:      opts.PollInterval,
		reconnect: opts.ReconnectDelay,
		heartbeat: opts.Heartbeat,
	}
}

// Queues a command for the next poll.
//
// Blocks while the queue is full. Returns the context's error if it ends
// first.
func (m *Monitor) Submit(ctx context.Context, cmd Command) error {
	select {
	case m.cmds <- cmd:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Returns the last observed power state and whether one has been observed.
func (m *Monitor) Power() (on bool, known bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.power == nil {
		return false, false
	}
	return *m.power, true
}

// Polls the TV until the context ends.
//
// A lost link is logged and the port reopened after the reconnect delay. A
// port that cannot be opened at all is returned as an error.
func (m *Monitor) Run(ctx context.Context) error {
	for {
		slog.Info("connecting to tv serial")

		port, err := m.open()
		if err != nil {
			return err
		}

		err = m.session(ctx, NewClient(port))
		port.Close()

		if ctx.Err() != nil {
			return nil
		}

		slog.Warn("tv serial connection lost", "error", err)

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(m.reconnect):
		}
	}
}

// Polls and runs commands over one open port until it fails.
func (m *Monitor) session(ctx context.Context, c *Client) error {
	ticker := time.NewTicker(m.poll)
	defer ticker.Stop()

	for {
		m.heartbeat()

		start := time.Now()
		on, err := c.PowerOn()
		if err != nil {
			return err
		}
		slog.Debug("tv power", "on", on, "elapsed", time.Since(start))

		if m.observe(on) {
			if err := m.sink.Send(ctx, event.TVPower(on)); err != nil {
				return err
			}
		}

		if err := m.runQueued(c); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Records a power reading and reports whether it differs from the last.
func (m *Monitor) observe(on bool) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.power != nil && *m.power == on {
		return false
	}
	m.power = &on
	return true
}

// Runs every queued command without waiting for more.
func (m *Monitor) runQueued(c *Client) error {
	for {
		select {
		case cmd := <-m.cmds:
			slog.Info("tv command", "op", cmd.Op, "value", cmd.Value)
			if err := cmd.apply(c); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

package daemon

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pipsimon/air-remote-mediator/internal/bravia"
	"github.com/pipsimon/air-remote-mediator/internal/config"
	"github.com/pipsimon/air-remote-mediator/internal/event"
	"github.com/pipsimon/air-remote-mediator/internal/homeassistant"
	"github.com/pipsimon/air-remote-mediator/internal/mediator"
	"github.com/pipsimon/air-remote-mediator/internal/protocol"
	"github.com/pipsimon/air-remote-mediator/internal/remote"
	"github.com/pipsimon/air-remote-mediator/internal/server"
)

// Heartbeat names, as reported by the status command.
const (
	workerRemote = "remote"
	workerHome   = "home_assistant"
	workerTV     = "tv"
)

// Overrides for the peripheral transports. Nil fields use the real
// hardware described by the configuration.
type Transports struct {
	Broker homeassistant.Broker // MQTT broker. Nil dials the configured broker.
	Bus    remote.Bus           // I2C bus. Nil opens the configured periph bus.
	OpenTV bravia.Opener        // Serial port. Nil opens the configured port.
}

// A configured mediator process.
type Daemon struct {
	cfg        *config.Config         // Loaded configuration.
	heartbeats *mediator.Heartbeats   // Liveness of the workers.
	mediator   *mediator.Mediator     // Event loop.
	home       *homeassistant.Service // MQTT bridge.
	remote     *remote.Remote         // Nil when the remote is disabled.
	tv         *bravia.Monitor        // Nil when serial control is disabled.
	server     *server.Server         // Control socket.
	closer     io.Closer              // Bus opened by New, released by Run.

	mu     sync.Mutex         // Guards cancel.
	cancel context.CancelFunc // Stops Run; nil until Run starts.
}

// Creates the daemon and opens the I2C bus.
//
// Nothing else is opened until [Daemon.Run]: the broker is dialled and the
// serial port opened by their workers.
func New(cfg *config.Config, t Transports) (*Daemon, error) {
	d := &Daemon{
		cfg:        cfg,
		heartbeats: mediator.NewHeartbeats(),
	}

	// Peripherals report to the mediator, which is created last because it
	// needs them as command targets.
	sink := sinkFunc(func(ctx context.Context, e event.Event) error {
		return d.mediator.Send(ctx, e)
	})

	broker := t.Broker
	if broker == nil {
		broker = homeassistant.NewMQTT(cfg.MQTT)
	}
	d.home = homeassistant.New(broker, sink, cfg.HomeAssistant, d.heartbeats.Register(workerHome))

	var rc mediator.Remote
	if cfg.Remote.Enabled {
		bus := t.Bus
		if bus == nil {
			pb, err := remote.Open(cfg.Remote.Bus, cfg.Remote.Address)
			if err != nil {
				return nil, err
			}
			bus = pb
			d.closer = pb
		}
		d.remote = remote.New(bus, sink, remote.Options{
			Interval:  cfg.Remote.PollInterval.Std(),
			Heartbeat: d.heartbeats.Register(workerRemote),
		})
		rc = d.remote
	}

	if cfg.Serial.Enabled {
		open := t.OpenTV
		if open == nil {
			open = bravia.SerialOpener(cfg.Serial.Port, cfg.Serial.BaudRate, cfg.Serial.Timeout.Std())
		}
		d.tv = bravia.NewMonitor(open, sink, bravia.Options{
			PollInterval:   cfg.Serial.PollInterval.Std(),
			ReconnectDelay: cfg.Serial.ReconnectDelay.Std(),
			Heartbeat:      d.heartbeats.Register(workerTV),
		})
	}

	d.mediator = mediator.New(mediator.Options{
		Remote:             rc,
		Home:               d.home,
		Names:              mediator.NamesFrom(cfg.HomeAssistant),
		AuthoritativePower: cfg.Serial.AuthoritativePower,
		Heartbeats:         d.heartbeats,
		StaleAfter:         cfg.Watchdog.StaleAfter.Std(),
	})

	d.server = server.New(server.Config{SocketPath: cfg.Server.Socket}, d)

	return d, nil
}

// Runs every worker until the context ends, a shutdown is requested, or a
// worker fails.
//
// Returns nil on a clean stop and the first worker's error otherwise.
func (d *Daemon) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	d.mu.Lock()
	d.cancel = cancel
	d.mu.Unlock()

	if d.closer != nil {
		defer d.closer.Close()
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(supervise(gctx, "mediator", d.mediator.Run))
	g.Go(supervise(gctx, workerHome, d.home.Run))
	g.Go(supervise(gctx, "watchdog", func(ctx context.Context) error {
		return mediator.RunChecks(ctx, d.cfg.Watchdog.Schedule, d.mediator)
	}))
	g.Go(supervise(gctx, "server", d.server.Run))

	if d.remote != nil {
		g.Go(supervise(gctx, workerRemote, d.remote.Run))
	}
	if d.tv != nil {
		g.Go(supervise(gctx, workerTV, d.tv.Run))
	}

	slog.Info("mediator started",
		"remote", d.remote != nil,
		"serial", d.tv != nil,
		"socket", d.server.SocketPath(),
	)

	err := g.Wait()
	slog.Info("mediator stopped")
	return err
}

// Wraps a worker so that it counts as failed if it returns before the
// daemon is stopping. Context errors during shutdown are not failures.
func supervise(ctx context.Context, name string, run func(context.Context) error) func() error {
	return func() error {
		err := run(ctx)

		if ctx.Err() != nil && (err == nil || errors.Is(err, context.Canceled)) {
			return nil
		}
		if err == nil {
			return fmt.Errorf("%w: %s", ErrWorkerExited, name)
		}

		slog.Error("worker failed", "worker", name, "error", err)
		return fmt.Errorf("%s: %w", name, err)
	}
}

// Reports the mediator's state, counters, and worker heartbeats.
func (d *Daemon) Status() protocol.StatusResult {
	state := d.mediator.State()
	stats := d.mediator.Stats()

	result := protocol.StatusResult{
		State: protocol.StateResult{
			TVOn:         state.TVOn,
			HostSelected: state.HostSelected,
		},
		Events:         stats.Events,
		Unhandled:      stats.Unhandled,
		ServiceCalls:   stats.ServiceCalls,
		FailedCalls:    stats.FailedCalls,
		RemoteCommands: stats.RemoteCommands,
		Heartbeats:     make(map[string]string),
	}

	if d.tv != nil {
		if on, known := d.tv.Power(); known {
			result.State.TVPower = &on
		}
	}

	for name, age := range d.heartbeats.Ages() {
		result.Heartbeats[name] = age.Truncate(time.Millisecond).String()
	}

	return result
}

// Queues an event for the mediator.
func (d *Daemon) Inject(ctx context.Context, e event.Event) error {
	return d.mediator.Send(ctx, e)
}

// Queues a serial command for the TV.
func (d *Daemon) TV(ctx context.Context, cmd bravia.Command) error {
	if d.tv == nil {
		return ErrSerialDisabled
	}
	return d.tv.Submit(ctx, cmd)
}

// Stops a running daemon. Does nothing before [Daemon.Run].
func (d *Daemon) Shutdown() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.cancel != nil {
		d.cancel()
	}
}

// Adapts a function to [event.Sink].
type sinkFunc func(ctx context.Context, e event.Event) error

func (f sinkFunc) Send(ctx context.Context, e event.Event) error {
	return f(ctx, e)
}

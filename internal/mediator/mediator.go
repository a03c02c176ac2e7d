package mediator

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/pipsimon/air-remote-mediator/internal/config"
	"github.com/pipsimon/air-remote-mediator/internal/event"
	"github.com/pipsimon/air-remote-mediator/internal/homeassistant"
	"github.com/pipsimon/air-remote-mediator/internal/remote"
)

// Capacity of the event queue.
const queueSize = 100

// Accepts command bytes for the air remote.
type Remote interface {
	Command(ctx context.Context, cmd byte) error
}

// Performs Home Assistant service calls.
type HomeAssistant interface {
	RunScript(ctx context.Context, name string) error
	SendRemoteCommand(ctx context.Context, cmd homeassistant.RemoteCommand) error
	OpenApp(ctx context.Context, app string) error
	MediaPlayer(ctx context.Context, command string) error
}

// Home Assistant names the mediator refers to.
type Names struct {
	TogglePowerScript     string // Script run by the power button.
	USBReadinessOffScript string // Script run when the host's USB link goes down.
	USBReadinessOnScript  string // Script run when the host's USB link comes up.
	LauncherApp           string // App opened by the home button.
}

// Extracts the names from the Home Assistant configuration.
func NamesFrom(cfg config.HomeAssistantConfig) Names {
	return Names{
		TogglePowerScript:     cfg.Scripts.TogglePower,
		USBReadinessOffScript: cfg.Scripts.USBReadinessOff,
		USBReadinessOnScript:  cfg.Scripts.USBReadinessOn,
		LauncherApp:           cfg.LauncherApp,
	}
}

// Configures a [Mediator].
type Options struct {
	Remote             Remote        // Air remote. Nil drops remote commands.
	Home               HomeAssistant // Service call target.
	Names              Names         // Scripts and apps.
	AuthoritativePower bool          // Serial power readings update the TV state.
	Heartbeats         *Heartbeats   // Checked on every check event. Nil disables checks.
	StaleAfter         time.Duration // Zero uses [config.DefaultStaleAfter].
}

// Turns peripheral events into commands.
type Mediator struct {
	opts   Options          // Collaborators and names.
	events chan event.Event // Incoming events.

	mu    sync.Mutex            // Guards state and the counters.
	state State                 // Current TV state.
	seen  map[event.Kind]uint64 // Events handled per kind.
	stats Stats                 // Remaining counters; Events is filled on read.
}

// Creates a mediator with an empty queue and both state flags off.
func New(opts Options) *Mediator {
	if opts.StaleAfter <= 0 {
		opts.StaleAfter = config.DefaultStaleAfter
	}
	return &Mediator{
		opts:   opts,
		events: make(chan event.Event, queueSize),
		seen:   make(map[event.Kind]uint64),
	}
}

// Queues an event. Implements [event.Sink].
func (m *Mediator) Send(ctx context.Context, e event.Event) error {
	select {
	case m.events <- e:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Handles events until the context ends.
//
// Returns an error when the remote cannot take a command or a liveness
// check fails; either means the daemon must restart. Failed service calls
// are logged and counted only.
func (m *Mediator) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case e := <-m.events:
			if err := m.handle(ctx, e); err != nil {
				return err
			}
		}
	}
}

// Returns the current state.
func (m *Mediator) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Returns a copy of the counters.
func (m *Mediator) Stats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.stats
	s.Events = make(map[string]uint64, len(m.seen))
	for k, n := range m.seen {
		s.Events[k.String()] = n
	}
	return s
}

func (m *Mediator) handle(ctx context.Context, e event.Event) error {
	m.mu.Lock()
	m.seen[e.Kind]++
	m.mu.Unlock()

	slog.Debug("event", "event", e.String())

	switch e.Kind {
	case event.KindTVState:
		return m.update(ctx, func(s *State) { s.TVOn = e.On })

	case event.KindHostInput:
		return m.update(ctx, func(s *State) { s.HostSelected = e.On })

	case event.KindTVPower:
		slog.Info("tv power observed", "on", e.On)
		if m.opts.AuthoritativePower {
			return m.update(ctx, func(s *State) { s.TVOn = e.On })
		}

	case event.KindWakeHost:
		if err := m.command(ctx, remote.Wake); err != nil {
			return err
		}
		slog.Info("waking host")

	case event.KindOKButton:
		m.sony(ctx, homeassistant.Confirm)

	case event.KindPowerButton:
		m.script(ctx, m.opts.Names.TogglePowerScript)

	case event.KindConsumerCode:
		m.consumer(ctx, e.Data)

	case event.KindKeyCode:
		m.key(ctx, e.Data)

	case event.KindASCIIKey:
		m.unhandled("ascii key", e.Data)

	case event.KindUSBReadiness:
		if e.On {
			m.script(ctx, m.opts.Names.USBReadinessOnScript)
		} else {
			m.script(ctx, m.opts.Names.USBReadinessOffScript)
		}

	case event.KindCheck:
		return m.check()

	default:
		slog.Warn("unknown event", "event", e.String())
	}

	return nil
}

// Applies a change to the state and tells the remote the resulting
// pass-through mode. The mode is resent even when unchanged, which also
// resynchronises a remote that was reset.
func (m *Mediator) update(ctx context.Context, change func(*State)) error {
	m.mu.Lock()
	change(&m.state)
	state := m.state
	m.mu.Unlock()

	if err := m.command(ctx, state.passThrough()); err != nil {
		return err
	}

	slog.Info("state", "tv_on", state.TVOn, "host_selected", state.HostSelected)
	return nil
}

func (m *Mediator) consumer(ctx context.Context, code byte) {
	switch code {
	case consumerVolumeDown:
		m.mediaPlayer(ctx, "volume_down")
	case consumerVolumeUp:
		m.mediaPlayer(ctx, "volume_up")
	case consumerChannel:
		m.sony(ctx, homeassistant.Input)
	case consumerMediaSelectHome:
		m.call("media_player.play_media", m.opts.Home.OpenApp(ctx, m.opts.Names.LauncherApp))
	case consumerMenuEscape:
		m.sony(ctx, homeassistant.Return)
	case consumerPlayPause:
		// The host handles play/pause itself while it is showing.
		if !m.State().HostSelected {
			m.sony(ctx, homeassistant.Pause)
		}
	default:
		m.unhandled("consumer code", code)
	}
}

func (m *Mediator) key(ctx context.Context, code byte) {
	switch code {
	case keyArrowUp:
		m.sony(ctx, homeassistant.Up)
	case keyArrowDown:
		m.sony(ctx, homeassistant.Down)
	case keyArrowLeft:
		m.sony(ctx, homeassistant.Left)
	case keyArrowRight:
		m.sony(ctx, homeassistant.Right)
	default:
		m.unhandled("key code", code)
	}
}

func (m *Mediator) unhandled(what string, code byte) {
	m.mu.Lock()
	m.stats.Unhandled++
	m.mu.Unlock()

	slog.Info("unhandled "+what, "code", fmt.Sprintf("0x%02X", code))
}

func (m *Mediator) sony(ctx context.Context, cmd homeassistant.RemoteCommand) {
	m.call("remote.send_command", m.opts.Home.SendRemoteCommand(ctx, cmd))
}

func (m *Mediator) script(ctx context.Context, name string) {
	m.call("script.turn_on", m.opts.Home.RunScript(ctx, name))
}

func (m *Mediator) mediaPlayer(ctx context.Context, command string) {
	m.call("media_player."+command, m.opts.Home.MediaPlayer(ctx, command))
}

// Records the outcome of a service call.
func (m *Mediator) call(service string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err != nil {
		m.stats.FailedCalls++
		slog.Error("service call failed", "service", service, "error", err)
		return
	}
	m.stats.ServiceCalls++
}

func (m *Mediator) command(ctx context.Context, cmd byte) error {
	if m.opts.Remote == nil {
		slog.Debug("remote disabled, dropping command", "command", string(rune(cmd)))
		return nil
	}
	if err := m.opts.Remote.Command(ctx, cmd); err != nil {
		return fmt.Errorf("%w: %q: %w", ErrRemote, cmd, err)
	}

	m.mu.Lock()
	m.stats.RemoteCommands++
	m.mu.Unlock()
	return nil
}

// Fails when any worker has not beaten within the stale period.
func (m *Mediator) check() error {
	if m.opts.Heartbeats == nil {
		return nil
	}
	if stale := m.opts.Heartbeats.Stale(m.opts.StaleAfter); len(stale) > 0 {
		return fmt.Errorf("%w: %s", ErrWorkerStale, strings.Join(stale, ", "))
	}
	return nil
}

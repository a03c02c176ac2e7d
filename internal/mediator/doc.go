// Package mediator decides what each peripheral event means.
//
// A [Mediator] consumes one queue of events fed by the remote, Home
// Assistant, and TV workers. It owns the only mutable state in the daemon,
// whether the TV is on and whether the host is its current input, and
// translates events into commands: pass-through mode and wake requests for
// the remote, service calls for Home Assistant.
//
// Remote keys are only mediated while pass-through is off. Whenever the TV
// or input state changes the remote is told again whether to pass keys
// straight to the host, which is the case exactly when the TV is on and
// showing the host.
//
// Liveness is checked from the same queue: a cron schedule enqueues check
// events, and a check fails the mediator when a worker has stopped beating.
//
// Example usage:
//
//	m := mediator.New(mediator.Options{
//	    Remote: r,
//	    Home:   svc,
//	    Names:  mediator.NamesFrom(cfg.HomeAssistant),
//	})
//
//	go mediator.RunChecks(ctx, "@every 5s", m)
//
//	if err := m.Run(ctx); err != nil {
//	    return err
//	}
package mediator

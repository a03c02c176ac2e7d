// Package daemon assembles the mediator and its peripherals into one
// process.
//
// Every peripheral runs as a worker in an errgroup: the air remote, the
// Home Assistant bridge, the TV's serial monitor, the liveness schedule,
// the mediator itself, and the control socket. The first worker to fail
// cancels the others and its error is returned from [Daemon.Run].
//
// Example usage:
//
//	d, err := daemon.New(cfg, daemon.Transports{})
//	if err != nil {
//	    return err
//	}
//	return d.Run(ctx)
package daemon

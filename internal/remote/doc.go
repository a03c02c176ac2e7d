// Package remote talks to the air remote over I2C.
//
// The remote is a microcontroller acting as an I2C peripheral. Each read
// returns a two byte event, [code, data], where a zero code means nothing
// happened since the last read. Writes are single command bytes that switch
// the remote between pass-through and mediated mode, or ask it to wake the
// host over USB.
//
// Events queue up in the remote while nobody is reading, so [Remote.Run]
// first drains and discards the backlog, then polls at a fixed interval.
// Outgoing commands are queued with [Remote.Command] and written between
// polls.
//
// Example usage:
//
//	bus, err := remote.Open("", remote.DefaultAddress)
//	if err != nil {
//	    return err
//	}
//	defer bus.Close()
//
//	r := remote.New(bus, sink, remote.Options{})
//	go r.Run(ctx)
//
//	r.Command(ctx, remote.PassThroughOn)
package remote

// Package bravia drives a Sony Bravia TV over its RS-232C control port.
//
// Requests are short byte frames followed by a one byte checksum. Control
// requests (header 0x8C) change a setting and are answered with a three
// byte acknowledgement. Query requests (header 0x83) read a setting; the
// acknowledgement is followed by a length-prefixed data block whose last
// byte is the checksum of everything received.
//
// A [Client] performs single exchanges over any [io.ReadWriter]. A
// [Monitor] owns the port: it polls the power state, reports changes to the
// mediator, runs queued commands between polls, and reopens the port when
// the link drops.
//
// Example usage:
//
//	mon := bravia.NewMonitor(bravia.SerialOpener("/dev/ttyUSB0", 9600, 500*time.Millisecond), sink, bravia.Options{})
//	go mon.Run(ctx)
//
//	mon.Submit(ctx, bravia.Command{Op: bravia.OpHDMI, Value: 1})
package bravia

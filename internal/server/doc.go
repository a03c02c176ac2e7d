// Package server implements the mediator's control socket.
//
// The daemon listens on a Unix domain socket for JSON-encoded commands.
// Each connection carries a single request-response exchange: the client
// sends a newline-delimited JSON envelope, the server dispatches the
// command to the [Backend], and writes the result back before closing the
// connection.
//
// Supported commands report daemon status, inject events into the
// mediator's queue (useful for exercising Home Assistant automations
// without touching the remote), queue serial commands for the TV, and
// initiate shutdown.
//
// Example usage:
//
//	srv := server.New(server.Config{SocketPath: path}, backend)
//
//	// Serves until ctx ends, then removes the socket and PID file.
//	if err := srv.Run(ctx); err != nil {
//	    return err
//	}
package server

// Parses flags, configures logging, and runs the air-remote-mediator
// subcommands.
//
// The binary accepts the following flags:
//
//	-q, --quiet     Suppress informational output.
//	-v, --verbose   Add caller information to log records.
//	-d, --debug     Enable debug output.
//	-c, --config    Configuration file path.
//	-s, --socket    Unix socket path.
//
// Flags override build-time defaults set via linker flags and the logging
// section of the configuration file. The start subcommand runs the daemon;
// status, inject, tv, and stop talk to a running daemon over its control
// socket.
package cli

package cli

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/pipsimon/air-remote-mediator/internal"
	"github.com/pipsimon/air-remote-mediator/internal/config"
)

// Represents the root command for the air-remote-mediator binary.
var RootCmd struct {
	Quiet   bool       `short:"q" help:"Suppress informational output."`
	Verbose bool       `short:"v" help:"Add caller information to log records."`
	Debug   bool       `short:"d" help:"Enable debug output."`
	Config  string     `short:"c" help:"Configuration file (default: ${config})." type:"path" placeholder:"PATH"`
	Socket  string     `short:"s" help:"Override the Unix socket path." type:"path" placeholder:"PATH"`
	Start   StartCmd   `cmd:"" help:"Run the mediator daemon."`
	Status  StatusCmd  `cmd:"" help:"Show the state of a running daemon."`
	Inject  InjectCmd  `cmd:"" help:"Send an event to a running daemon."`
	TV      TVCmd      `cmd:"" name:"tv" help:"Send a serial command to the TV through a running daemon."`
	Stop    StopCmd    `cmd:"" help:"Stop a running daemon."`
	Version VersionCmd `cmd:"" help:"Show version information."`
}

// Parses arguments, configures logging, and runs the selected subcommand.
func Execute() error {

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	kongCtx := kong.Parse(&RootCmd,
		kong.Name(internal.Name),
		kong.Description("Bridges an I2C air remote, a Sony Bravia TV, and Home Assistant.\n\nThe daemon listens on a Unix domain socket for control commands."),
		kong.UsageOnError(),
		kong.Vars{
			"version": internal.VersionString(),
			"config":  configPath(),
		},
		kong.BindTo(ctx, (*context.Context)(nil)),
	)

	applyFlags()
	configureLogger(config.Default().Logging)

	return kongCtx.Run()
}

// Widens the process-wide output modes from the flags.
func applyFlags() {
	if RootCmd.Quiet {
		internal.Quiet.Enable()
	}
	if RootCmd.Verbose {
		internal.Verbose.Enable()
	}
	if RootCmd.Debug {
		internal.Debug.Enable()
	}
}

// Replaces the global logger.
func configureLogger(cfg config.LoggingConfig) {
	slog.SetDefault(NewLogger(cfg))
}

package cli

import (
	"context"
	"log/slog"

	"github.com/pipsimon/air-remote-mediator/internal"
	"github.com/pipsimon/air-remote-mediator/internal/config"
	"github.com/pipsimon/air-remote-mediator/internal/daemon"
	"github.com/pipsimon/air-remote-mediator/internal/paths"
)

// Represents the 'air-remote-mediator start' command.
type StartCmd struct{}

// Executes the start command.
//
// Loads the configuration, opens the peripherals, and blocks until the
// context is cancelled (e.g. via SIGINT or SIGTERM), a stop command arrives
// on the socket, or a worker fails.
func (c *StartCmd) Run(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	configureLogger(cfg.Logging)

	d, err := daemon.New(cfg, daemon.Transports{})
	if err != nil {
		return err
	}

	slog.Info("air-remote-mediator is running", "version", internal.VersionString())

	if err := d.Run(ctx); err != nil {
		return err
	}

	slog.Info("shutting down")
	return nil
}

// Loads the file named by --config, or the default file if it exists, and
// applies the flag overrides.
func loadConfig() (*config.Config, error) {
	path, explicit := configPath(), RootCmd.Config != ""

	cfg, err := config.Load(path, explicit)
	if err != nil {
		return nil, err
	}

	if RootCmd.Socket != "" {
		cfg.Server.Socket = RootCmd.Socket
	}

	slog.Debug("configuration loaded", "path", path, "explicit", explicit)
	return cfg, nil
}

func configPath() string {
	if RootCmd.Config != "" {
		return RootCmd.Config
	}
	return paths.ConfigFile()
}

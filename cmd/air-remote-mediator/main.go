package main

import (
	"log/slog"
	"os"

	"github.com/pipsimon/air-remote-mediator/internal"
	"github.com/pipsimon/air-remote-mediator/internal/cli"
	"github.com/pipsimon/air-remote-mediator/internal/config"
)

// The entry point for the air-remote-mediator binary.
//
// Initializes logging, displays startup information, and executes the root
// command. If any error occurs during execution, it exits with a non-zero code.
func main() {
	slog.SetDefault(cli.NewLogger(config.Default().Logging))

	slog.Debug("build", "version", internal.VersionString())

	slog.Debug("air-remote-mediator is starting",
		"pid", os.Getpid(),
		"cwd", cwd(),
		"args", os.Args,
	)

	if err := cli.Execute(); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}

// Returns the current working directory or "(unknown)".
func cwd() string {
	cwd, err := os.Getwd()
	if err != nil {
		return "(unknown)"
	}
	return cwd
}

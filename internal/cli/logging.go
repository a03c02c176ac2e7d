package cli

import (
	"log/slog"
	"os"
	"strings"

	"github.com/phuslu/log"

	"github.com/pipsimon/air-remote-mediator/internal"
	"github.com/pipsimon/air-remote-mediator/internal/config"
)

// Creates a slog logger writing to stderr through phuslu/log.
//
// The output modes take precedence over the configured level: debug wins
// over quiet, and either wins over the file. Verbose adds the caller.
func NewLogger(cfg config.LoggingConfig) *slog.Logger {
	logger := &log.Logger{
		Level:  logLevel(cfg.Level),
		Writer: logWriter(cfg.Format, os.Stderr),
	}
	if internal.Verbose.On() {
		logger.Caller = 1
	}
	return logger.Slog()
}

// Returns the level for the configured name after applying the output
// modes. Unknown names mean info.
func logLevel(name string) log.Level {
	switch {
	case internal.Debug.On():
		return log.DebugLevel
	case internal.Quiet.On():
		return log.WarnLevel
	}

	switch strings.ToLower(name) {
	case "debug":
		return log.DebugLevel
	case "warn":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	}
	return log.InfoLevel
}

// Picks the console writer for terminals and JSON lines otherwise.
func logWriter(format string, f *os.File) log.Writer {
	tty := log.IsTerminal(f.Fd())

	switch {
	case format == "json":
	case format == "console", tty:
		return &log.ConsoleWriter{
			ColorOutput:    tty,
			QuoteString:    true,
			EndWithMessage: true,
			Writer:         f,
		}
	}
	return &log.IOWriter{Writer: f}
}

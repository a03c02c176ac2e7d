package internal

import (
	"strconv"
	"sync/atomic"
)

// Link-time defaults for the output modes. Any value strconv.ParseBool
// rejects leaves the mode off.
var (
	rawQuiet   = "false"
	rawDebug   = "false"
	rawVerbose = "false"
)

// Process-wide output mode, settable from flags after startup.
type Mode struct {
	flag atomic.Bool
}

var (
	Quiet   Mode // Only warnings and errors are logged.
	Debug   Mode // Debug records are logged.
	Verbose Mode // Records carry caller information.
)

func init() {
	Quiet.parse(rawQuiet)
	Debug.parse(rawDebug)
	Verbose.parse(rawVerbose)
}

func (m *Mode) parse(raw string) {
	if v, err := strconv.ParseBool(raw); err == nil {
		m.flag.Store(v)
	}
}

// Turns the mode on. Modes are only ever widened by flags, never cleared.
func (m *Mode) Enable() {
	m.flag.Store(true)
}

// Reports whether the mode is on.
func (m *Mode) On() bool {
	return m.flag.Load()
}

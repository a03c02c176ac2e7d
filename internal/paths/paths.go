package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"

	"github.com/pipsimon/air-remote-mediator/internal"
)

const (

	// Subdirectory and file stem used under every base path.
	daemonName = internal.Name

	// Default permission mode for directories.
	DefaultDirMode os.FileMode = 0755

	// Default permission mode for files.
	DefaultFileMode os.FileMode = 0644
)

// Path to the directory for runtime files (sockets, PIDs).
//
//	Linux:   $XDG_RUNTIME_DIR/air-remote-mediator or /run/user/<uid>/air-remote-mediator
//	macOS:   ~/Library/Caches/air-remote-mediator/run
func Runtime() string {
	if xdg.RuntimeDir != "" {
		return filepath.Join(xdg.RuntimeDir, daemonName)
	}
	return filepath.Join(xdg.CacheHome, daemonName, "run")
}

// Default path to the control socket.
func Socket() string {
	return filepath.Join(Runtime(), daemonName+".sock")
}

// Path to the PID file that sits next to the given socket.
//
// Keeping the PID file beside the socket lets a socket override relocate
// both together.
func PIDFile(socketPath string) string {
	if socketPath == "" {
		socketPath = Socket()
	}
	return filepath.Join(filepath.Dir(socketPath), daemonName+".pid")
}

// Default path to the configuration file.
//
//	Linux:   $XDG_CONFIG_HOME/air-remote-mediator/config.toml
//	macOS:   ~/Library/Application Support/air-remote-mediator/config.toml
func ConfigFile() string {
	return filepath.Join(xdg.ConfigHome, daemonName, "config.toml")
}

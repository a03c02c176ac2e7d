// Resolves where the mediator keeps its files.
//
// Runtime files (control socket, PID file) live under the XDG runtime
// directory, falling back to the cache directory on systems without one.
// The configuration file lives under the XDG config directory. The daemon
// name "air-remote-mediator" is the subdirectory under each base path.
package paths

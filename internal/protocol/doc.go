// Package protocol defines the control socket wire format.
//
// Each connection carries one exchange. The client writes a single JSON
// envelope terminated by a newline; the daemon answers with one envelope
// and closes the connection. Envelopes name a command and carry an
// optional command-specific payload:
//
//	{"command":"tv","payload":{"op":"hdmi","value":1}}
//
// Responses use the "ok" command with the result as payload, or "error"
// with an [ErrorResult].
package protocol

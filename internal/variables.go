package internal

import (
	"fmt"
	"runtime"
	"strings"
)

// Name of the binary, used for the CLI, the XDG paths, and the socket group.
const Name = "air-remote-mediator"

const (

	// Placeholder for a variable that was not injected at link time.
	undefined = "(undefined)"

	// Version string reported by builds made outside the release pipeline.
	localBuild = "(local)"

	// Branch whose builds omit the stage suffix.
	releaseBranch = "main"
)

// Injected with -ldflags "-X github.com/pipsimon/air-remote-mediator/internal.<name>=<value>".
var (
	version   = "" // Release version, optionally prefixed with "v".
	stage     = "" // Git branch the binary was built from.
	gitCommit = "" // Short commit hash.
)

// Describes the binary.
type BuildInfo struct {
	Version string `json:"version"`
	Stage   string `json:"stage"`
	Commit  string `json:"commit"`
	Arch    string `json:"arch"`
}

// Returns the build description with empty link-time values replaced by
// "(undefined)". The version is lower-cased and loses any "v" prefix.
func Build() BuildInfo {
	return BuildInfo{
		Version: orUndefined(strings.TrimPrefix(strings.ToLower(strings.TrimSpace(version)), "v")),
		Stage:   orUndefined(strings.ToLower(strings.TrimSpace(stage))),
		Commit:  orUndefined(strings.TrimSpace(gitCommit)),
		Arch:    runtime.GOARCH,
	}
}

// Whether any of version, stage, or commit was left unset, which marks a
// developer build.
func (b BuildInfo) Local() bool {
	return b.Version == undefined || b.Stage == undefined || b.Commit == undefined
}

// Formats the build as "<version>[+<stage>] <commit> [<arch>]", or "(local)"
// for developer builds. Builds from the release branch carry no stage.
func (b BuildInfo) String() string {
	if b.Local() {
		return localBuild
	}

	suffix := ""
	if b.Stage != releaseBranch {
		suffix = "+" + b.Stage
	}

	return fmt.Sprintf("%s%s %s [%s]", b.Version, suffix, b.Commit, b.Arch)
}

// Shorthand for Build().String().
func VersionString() string {
	return Build().String()
}

func orUndefined(s string) string {
	if s == "" {
		return undefined
	}
	return s
}

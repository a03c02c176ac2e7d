package paths

import (
	"path/filepath"
	"testing"

	"github.com/pipsimon/air-remote-mediator/internal"
)

func TestSocketUnderRuntime(t *testing.T) {
	if filepath.Dir(Socket()) != Runtime() {
		t.Fatalf("Socket() = %q, not under %q", Socket(), Runtime())
	}
	if want := internal.Name + ".sock"; filepath.Base(Socket()) != want {
		t.Fatalf("Socket() = %q, want file %s", Socket(), want)
	}
}

func TestPIDFileFollowsSocket(t *testing.T) {
	got := PIDFile("/tmp/custom/mediator.sock")
	want := "/tmp/custom/air-remote-mediator.pid"
	if got != want {
		t.Fatalf("PIDFile = %q, want %q", got, want)
	}

	if filepath.Dir(PIDFile("")) != Runtime() {
		t.Fatalf("PIDFile(\"\") = %q, not under %q", PIDFile(""), Runtime())
	}
}

func TestConfigFile(t *testing.T) {
	p := ConfigFile()
	if filepath.Base(p) != "config.toml" {
		t.Fatalf("ConfigFile() = %q, want config.toml", p)
	}
	if filepath.Base(filepath.Dir(p)) != daemonName {
		t.Fatalf("ConfigFile() = %q, want %s directory", p, daemonName)
	}
}

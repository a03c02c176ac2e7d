package internal

import (
	"runtime"
	"testing"
)

func withBuildVars(t *testing.T, v, s, c string) {
	t.Helper()
	oldV, oldS, oldC := version, stage, gitCommit
	version, stage, gitCommit = v, s, c
	t.Cleanup(func() { version, stage, gitCommit = oldV, oldS, oldC })
}

func TestVersionStringLocal(t *testing.T) {
	withBuildVars(t, "1.2.3", "", "abc123")
	if got := VersionString(); got != "(local)" {
		t.Fatalf("VersionString() = %q, want (local)", got)
	}
}

func TestVersionStringReleaseBranch(t *testing.T) {
	withBuildVars(t, "V1.2.3", "main", "abc123")
	want := "1.2.3 abc123 [" + runtime.GOARCH + "]"
	if got := VersionString(); got != want {
		t.Fatalf("VersionString() = %q, want %q", got, want)
	}
}

func TestVersionStringStage(t *testing.T) {
	withBuildVars(t, "1.2.3", " Staging ", "abc123")
	want := "1.2.3+staging abc123 [" + runtime.GOARCH + "]"
	if got := VersionString(); got != want {
		t.Fatalf("VersionString() = %q, want %q", got, want)
	}
}

func TestBuildUndefined(t *testing.T) {
	withBuildVars(t, "", "", "")
	b := Build()
	if b.Version != undefined || b.Stage != undefined || b.Commit != undefined {
		t.Fatalf("Build() = %+v, want undefined fields", b)
	}
	if !b.Local() {
		t.Fatal("Local() = false, want true")
	}
}

func TestModeParse(t *testing.T) {
	var m Mode
	m.parse("not-a-bool")
	if m.On() {
		t.Fatal("mode on after invalid value")
	}
	m.parse("true")
	if !m.On() {
		t.Fatal("mode off after \"true\"")
	}
}

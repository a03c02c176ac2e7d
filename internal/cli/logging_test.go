package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/phuslu/log"
)

func TestLogLevel(t *testing.T) {
	tests := []struct {
		name string
		want log.Level
	}{
		{"debug", log.DebugLevel},
		{"info", log.InfoLevel},
		{"WARN", log.WarnLevel},
		{"error", log.ErrorLevel},
		{"", log.InfoLevel},
	}

	for _, tt := range tests {
		if got := logLevel(tt.name); got != tt.want {
			t.Fatalf("logLevel(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestLogWriter(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "log"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if _, ok := logWriter("json", f).(*log.IOWriter); !ok {
		t.Fatal("json format should write JSON lines")
	}
	if _, ok := logWriter("auto", f).(*log.IOWriter); !ok {
		t.Fatal("auto format on a plain file should write JSON lines")
	}

	cw, ok := logWriter("console", f).(*log.ConsoleWriter)
	if !ok {
		t.Fatal("console format should use the console writer")
	}
	if cw.ColorOutput {
		t.Fatal("console writer on a plain file should not color")
	}
}

package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/pipsimon/air-remote-mediator/internal/bravia"
	"github.com/pipsimon/air-remote-mediator/internal/remote"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMissingDefaultFile(t *testing.T) {
	t.Setenv(PasswordEnv, "secret")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"), false)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.MQTT.Password != "secret" {
		t.Fatalf("password = %q, want secret", cfg.MQTT.Password)
	}
	if cfg.Remote.Address != 0x05 {
		t.Fatalf("remote.address = %#x, want 0x05", cfg.Remote.Address)
	}
	if cfg.Serial.PollInterval.Std() != 500*time.Millisecond {
		t.Fatalf("serial.poll_interval = %v, want 500ms", cfg.Serial.PollInterval.Std())
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	t.Setenv(PasswordEnv, "secret")

	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"), true)
	if !errors.Is(err, ErrRead) {
		t.Fatalf("err = %v, want ErrRead", err)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	t.Setenv(PasswordEnv, "")

	path := writeConfig(t, `
[logging]
level = "debug"

[mqtt]
broker = "tcp://localhost:1883"
password = "from-file"
keep_alive = "10s"

[home_assistant]
tv_off_states = ["off", "unavailable"]

[serial]
enabled = false
`)

	cfg, err := Load(path, true)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("logging.level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.MQTT.Broker != "tcp://localhost:1883" {
		t.Fatalf("mqtt.broker = %q", cfg.MQTT.Broker)
	}
	if cfg.MQTT.Password != "from-file" {
		t.Fatalf("mqtt.password = %q, want from-file", cfg.MQTT.Password)
	}
	if cfg.MQTT.KeepAlive.Std() != 10*time.Second {
		t.Fatalf("mqtt.keep_alive = %v, want 10s", cfg.MQTT.KeepAlive.Std())
	}
	if len(cfg.HomeAssistant.TVOffStates) != 2 {
		t.Fatalf("tv_off_states = %v, want 2 entries", cfg.HomeAssistant.TVOffStates)
	}
	if cfg.Serial.Enabled {
		t.Fatal("serial.enabled = true, want false")
	}
	if cfg.MQTT.Username != "lcars" {
		t.Fatalf("mqtt.username = %q, default lost", cfg.MQTT.Username)
	}
}

func TestEnvPasswordWins(t *testing.T) {
	t.Setenv(PasswordEnv, "from-env")

	path := writeConfig(t, "[mqtt]\npassword = \"from-file\"\n")
	cfg, err := Load(path, true)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.MQTT.Password != "from-env" {
		t.Fatalf("password = %q, want from-env", cfg.MQTT.Password)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	t.Setenv(PasswordEnv, "secret")

	path := writeConfig(t, "[serial]\nbaud = 9600\n")
	if _, err := Load(path, true); !errors.Is(err, ErrRead) {
		t.Fatalf("err = %v, want ErrRead", err)
	}
}

func TestLoadRejectsBadDuration(t *testing.T) {
	t.Setenv(PasswordEnv, "secret")

	path := writeConfig(t, "[serial]\ntimeout = \"soon\"\n")
	if _, err := Load(path, true); err == nil {
		t.Fatal("expected error for bad duration")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"missing password", func(c *Config) { c.MQTT.Password = "" }, ErrMissingPassword},
		{"bad level", func(c *Config) { c.Logging.Level = "loud" }, ErrConfig},
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }, ErrConfig},
		{"empty broker", func(c *Config) { c.MQTT.Broker = "" }, ErrConfig},
		{"address out of range", func(c *Config) { c.Remote.Address = 0x80 }, ErrConfig},
		{"bad schedule", func(c *Config) { c.Watchdog.Schedule = "every so often" }, ErrConfig},
		{"zero rate", func(c *Config) { c.HomeAssistant.RateLimit = 0 }, ErrConfig},
		{"empty port", func(c *Config) { c.Serial.Port = "" }, ErrConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.MQTT.Password = "secret"
			tt.mutate(cfg)

			if err := cfg.Validate(); !errors.Is(err, tt.want) {
				t.Fatalf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestValidateSkipsDisabledPeripherals(t *testing.T) {
	cfg := Default()
	cfg.MQTT.Password = "secret"
	cfg.Serial.Enabled = false
	cfg.Serial.Port = ""
	cfg.Remote.Enabled = false
	cfg.Remote.Address = 0

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}
}

func TestExampleMatchesDefaults(t *testing.T) {
	t.Setenv(PasswordEnv, "secret")

	cfg, err := Load(filepath.Join("..", "..", "config.example.toml"), true)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	want := Default()
	want.MQTT.Password = "secret"

	if !reflect.DeepEqual(cfg, want) {
		t.Fatalf("example config = %+v, want defaults %+v", cfg, want)
	}
}

func TestDefaultsFollowPeripherals(t *testing.T) {
	cfg := Default()

	if cfg.Remote.Address != remote.DefaultAddress {
		t.Fatalf("remote.address = %#x, want %#x", cfg.Remote.Address, remote.DefaultAddress)
	}
	if cfg.Remote.PollInterval.Std() != remote.DefaultInterval {
		t.Fatalf("remote.poll_interval = %v, want %v", cfg.Remote.PollInterval.Std(), remote.DefaultInterval)
	}
	if cfg.Serial.Port != bravia.DefaultPort || cfg.Serial.BaudRate != bravia.DefaultBaudRate {
		t.Fatalf("serial = %s@%d, want %s@%d", cfg.Serial.Port, cfg.Serial.BaudRate, bravia.DefaultPort, bravia.DefaultBaudRate)
	}
	if cfg.Serial.PollInterval.Std() != bravia.DefaultPollInterval {
		t.Fatalf("serial.poll_interval = %v, want %v", cfg.Serial.PollInterval.Std(), bravia.DefaultPollInterval)
	}
	if cfg.Serial.ReconnectDelay.Std() != bravia.DefaultReconnectDelay {
		t.Fatalf("serial.reconnect_delay = %v, want %v", cfg.Serial.ReconnectDelay.Std(), bravia.DefaultReconnectDelay)
	}
	if cfg.Watchdog.StaleAfter.Std() != DefaultStaleAfter {
		t.Fatalf("watchdog.stale_after = %v, want %v", cfg.Watchdog.StaleAfter.Std(), DefaultStaleAfter)
	}
}

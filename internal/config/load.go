package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/robfig/cron/v3"
)

// Reads the configuration file at path over the defaults, applies the
// environment, and validates the result.
//
// A missing file is only an error when explicit is set, i.e. the user named
// the file on the command line. Unknown keys are rejected so that typos do
// not silently fall back to defaults.
func Load(path string, explicit bool) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := decode(data, cfg); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrRead, path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("%w: %w", ErrRead, err)
	}

	cfg.applyEnv(os.LookupEnv)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decode(data []byte, cfg *Config) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	if err := dec.Decode(cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return fmt.Errorf("%w: %s", ErrConfig, strict.String())
		}
		return err
	}
	return nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(PasswordEnv); ok && v != "" {
		c.MQTT.Password = v
	}
}

// Checks that the configuration can drive the daemon.
func (c *Config) Validate() error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrConfig}, args...)...))
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		fail("unknown log level %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "auto", "console", "json":
	default:
		fail("unknown log format %q", c.Logging.Format)
	}

	if c.MQTT.Broker == "" {
		fail("mqtt.broker is empty")
	}
	if c.MQTT.ClientID == "" {
		fail("mqtt.client_id is empty")
	}
	if c.MQTT.Password == "" {
		errs = append(errs, ErrMissingPassword)
	}
	if c.MQTT.KeepAlive <= 0 || c.MQTT.ConnectTimeout <= 0 || c.MQTT.PublishTimeout <= 0 {
		fail("mqtt.keep_alive, connect_timeout and publish_timeout must be positive")
	}

	ha := c.HomeAssistant
	if ha.StateTopic == "" || ha.InputTopic == "" || ha.WakeTopic == "" {
		fail("home_assistant topics must not be empty")
	}
	if ha.CommandPrefix == "" {
		fail("home_assistant.command_prefix is empty")
	}
	if ha.RateLimit <= 0 || ha.RateBurst < 1 {
		fail("home_assistant.rate_limit and rate_burst must be positive")
	}

	if c.Remote.Enabled {
		if c.Remote.Address < 0x03 || c.Remote.Address > 0x77 {
			fail("remote.address %#02x outside 7-bit range", c.Remote.Address)
		}
		if c.Remote.PollInterval <= 0 {
			fail("remote.poll_interval must be positive")
		}
	}

	if c.Serial.Enabled {
		if c.Serial.Port == "" {
			fail("serial.port is empty")
		}
		if c.Serial.BaudRate <= 0 {
			fail("serial.baud_rate must be positive")
		}
		if c.Serial.Timeout <= 0 || c.Serial.PollInterval <= 0 {
			fail("serial.timeout and serial.poll_interval must be positive")
		}
	}

	if _, err := cron.ParseStandard(c.Watchdog.Schedule); err != nil {
		fail("watchdog.schedule: %v", err)
	}
	if c.Watchdog.StaleAfter <= 0 {
		fail("watchdog.stale_after must be positive")
	}

	return errors.Join(errs...)
}

package config

import (
	"fmt"
	"time"
)

// A [time.Duration] written as a Go duration string ("500ms", "5s") in TOML.
type Duration time.Duration

// Parses a duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConfig, err)
	}
	*d = Duration(v)
	return nil
}

// Formats the duration as a Go duration string.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Returns the value as a [time.Duration].
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Package config loads the mediator configuration.
//
// Configuration is a TOML file whose sections mirror the peripherals the
// mediator talks to. Every field has a default, so an absent file yields a
// working configuration for the reference installation. The MQTT password
// is never defaulted; it comes from the file or the MQTT_PASS environment
// variable, the latter taking precedence.
//
// Example configuration:
//
//	[logging]
//	level = "debug"
//
//	[mqtt]
//	broker = "tcp://homeassistant.local:1883"
//	username = "mediator"
//
//	[serial]
//	port = "/dev/ttyUSB1"
//	authoritative_power = true
//
// Example usage:
//
//	cfg, err := config.Load(path, explicit)
//	if err != nil {
//	    return err
//	}
package config

package config

import "errors"

var (
	ErrConfig          = errors.New("invalid configuration")
	ErrRead            = errors.New("failed to read configuration")
	ErrMissingPassword = errors.New("MQTT password not set (MQTT_PASS)")
)

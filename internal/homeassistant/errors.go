package homeassistant

import "errors"

var (
	ErrConnect = errors.New("mqtt connect failed")
	ErrPublish = errors.New("mqtt publish failed")
	ErrPayload = errors.New("invalid payload")
	ErrTopic   = errors.New("message from unknown topic")
)

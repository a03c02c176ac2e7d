// Package homeassistant connects the mediator to Home Assistant over MQTT.
//
// Inbound, the statestream integration mirrors entity states onto MQTT
// topics. The TV's state and media title topics tell the mediator whether
// the TV is on and whether the host is the current input; a separate wake
// topic lets automations ask the remote to wake the host.
//
// Outbound, service calls are published as JSON to
// "<command prefix>/<domain>.<service>", where a Home Assistant automation
// picks them up and runs the service with the payload as service data.
// Calls go through a token bucket so that a stuck key cannot flood the
// broker.
//
// Example usage:
//
//	svc := homeassistant.New(homeassistant.NewMQTT(mqttCfg), sink, cfg.HomeAssistant, nil)
//	go svc.Run(ctx)
//
//	svc.SendRemoteCommand(ctx, homeassistant.Confirm)
package homeassistant

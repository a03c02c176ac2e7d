package homeassistant

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
)

// A button name understood by the Sony Bravia remote entity.
type RemoteCommand string

const (
	Confirm RemoteCommand = "Confirm"
	Input   RemoteCommand = "Input"
	Return  RemoteCommand = "Return"
	Pause   RemoteCommand = "Pause"
	Up      RemoteCommand = "Up"
	Down    RemoteCommand = "Down"
	Left    RemoteCommand = "Left"
	Right   RemoteCommand = "Right"
)

// Service data for calls that only name an entity.
type entityData struct {
	EntityID string `json:"entity_id"`
}

type remoteCommandData struct {
	EntityID string        `json:"entity_id"`
	Command  RemoteCommand `json:"command"`
}

type playMediaData struct {
	EntityID         string `json:"entity_id"`
	MediaContentID   string `json:"media_content_id"`
	MediaContentType string `json:"media_content_type"`
}

// Turns on the script with the given name (without the "script." prefix).
func (s *Service) RunScript(ctx context.Context, name string) error {
	return s.call(ctx, "script.turn_on", entityData{EntityID: "script." + name})
}

// Presses a button on the TV's remote entity.
func (s *Service) SendRemoteCommand(ctx context.Context, cmd RemoteCommand) error {
	return s.call(ctx, "remote.send_command", remoteCommandData{
		EntityID: s.cfg.RemoteEntity,
		Command:  cmd,
	})
}

// Launches an app on the TV.
func (s *Service) OpenApp(ctx context.Context, app string) error {
	return s.call(ctx, "media_player.play_media", playMediaData{
		EntityID:         s.cfg.MediaPlayerEntity,
		MediaContentID:   app,
		MediaContentType: "app",
	})
}

// Calls media_player.<command> (e.g. "volume_up") on the TV.
func (s *Service) MediaPlayer(ctx context.Context, command string) error {
	return s.call(ctx, "media_player."+command, entityData{EntityID: s.cfg.MediaPlayerEntity})
}

// Publishes a service call, waiting for the rate limiter first.
func (s *Service) call(ctx context.Context, service string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPayload, err)
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}

	topic := s.cfg.CommandPrefix + "/" + service
	slog.Info("sending service call", "topic", topic, "payload", string(payload))

	if err := s.broker.Publish(ctx, topic, payload); err != nil {
		return err
	}
	return nil
}

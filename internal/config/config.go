package config

import (
	"time"

	"github.com/pipsimon/air-remote-mediator/internal/bravia"
	"github.com/pipsimon/air-remote-mediator/internal/remote"
)

const (

	// Environment variable holding the MQTT password.
	PasswordEnv = "MQTT_PASS"

	// Default cron spec for liveness checks.
	DefaultCheckSchedule = "@every 5s"

	// Default heartbeat age at which a worker is considered dead.
	DefaultStaleAfter = 30 * time.Second
)

// Root of the configuration file.
type Config struct {
	Logging       LoggingConfig       `toml:"logging"`
	Server        ServerConfig        `toml:"server"`
	MQTT          MQTTConfig          `toml:"mqtt"`
	HomeAssistant HomeAssistantConfig `toml:"home_assistant"`
	Remote        RemoteConfig        `toml:"remote"`
	Serial        SerialConfig        `toml:"serial"`
	Watchdog      WatchdogConfig      `toml:"watchdog"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`  // "debug", "info", "warn", "error"
	Format string `toml:"format"` // "auto" (console on a TTY, JSON otherwise), "console", "json"
}

type ServerConfig struct {
	Socket string `toml:"socket"` // Control socket path. Empty uses the XDG runtime default.
}

type MQTTConfig struct {
	Broker         string   `toml:"broker"`          // Broker URL, e.g. "tcp://host:1883"
	ClientID       string   `toml:"client_id"`       //
	Username       string   `toml:"username"`        //
	Password       string   `toml:"password"`        // Overridden by MQTT_PASS
	KeepAlive      Duration `toml:"keep_alive"`      //
	ConnectTimeout Duration `toml:"connect_timeout"` // Per connection attempt
	PublishTimeout Duration `toml:"publish_timeout"` // Wait for the broker to acknowledge a QoS 1 publish
}

// Topics, entities, and names on the Home Assistant side.
type HomeAssistantConfig struct {
	StateTopic        string        `toml:"state_topic"`         // Statestream topic carrying the TV state
	InputTopic        string        `toml:"input_topic"`         // Statestream topic carrying the TV's media title
	WakeTopic         string        `toml:"wake_topic"`          // Topic that asks the mediator to wake the host
	CommandPrefix     string        `toml:"command_prefix"`      // Service calls are published to <prefix>/<service>
	RemoteEntity      string        `toml:"remote_entity"`       // Entity receiving remote.send_command
	MediaPlayerEntity string        `toml:"media_player_entity"` // Entity receiving media_player.* calls
	TVOffStates       []string      `toml:"tv_off_states"`       // State payloads that mean the TV is off
	HostInputTitle    string        `toml:"host_input_title"`    // Media title shown while the host is the input
	LauncherApp       string        `toml:"launcher_app"`        // App opened by the home button
	Scripts           ScriptsConfig `toml:"scripts"`
	RateLimit         float64       `toml:"rate_limit"` // Service calls per second
	RateBurst         int           `toml:"rate_burst"` //
}

// Home Assistant script names, without the "script." prefix.
type ScriptsConfig struct {
	TogglePower     string `toml:"toggle_power"`
	USBReadinessOff string `toml:"usb_readiness_off"`
	USBReadinessOn  string `toml:"usb_readiness_on"`
}

type RemoteConfig struct {
	Enabled      bool     `toml:"enabled"`       //
	Bus          string   `toml:"bus"`           // periph bus name; empty picks the first bus
	Address      uint16   `toml:"address"`       // 7-bit peripheral address
	PollInterval Duration `toml:"poll_interval"` //
}

type SerialConfig struct {
	Enabled            bool     `toml:"enabled"`             //
	Port               string   `toml:"port"`                //
	BaudRate           int      `toml:"baud_rate"`           //
	Timeout            Duration `toml:"timeout"`             // Read timeout per response
	PollInterval       Duration `toml:"poll_interval"`       // Delay between power queries
	ReconnectDelay     Duration `toml:"reconnect_delay"`     // Delay before reopening after a lost connection
	AuthoritativePower bool     `toml:"authoritative_power"` // Serial power readings update the TV state
}

type WatchdogConfig struct {
	Schedule   string   `toml:"schedule"`    // Cron spec for liveness checks
	StaleAfter Duration `toml:"stale_after"` // Heartbeat age at which a worker is considered dead
}

// Returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "auto",
		},
		MQTT: MQTTConfig{
			Broker:         "tcp://mqtt.sinclair.pipsimon.com:1883",
			ClientID:       "air-remote-mediator-pi",
			Username:       "lcars",
			KeepAlive:      Duration(5 * time.Second),
			ConnectTimeout: Duration(10 * time.Second),
			PublishTimeout: Duration(5 * time.Second),
		},
		HomeAssistant: HomeAssistantConfig{
			StateTopic:        "homeassistant_statestream/media_player/sony_bravia/state",
			InputTopic:        "homeassistant_statestream/media_player/sony_bravia/media_title",
			WakeTopic:         "air-remote/usb-power-on",
			CommandPrefix:     "homeassistant_cmd/run",
			RemoteEntity:      "remote.sony_bravia",
			MediaPlayerEntity: "media_player.sony_bravia",
			TVOffStates:       []string{"off"},
			HostInputTitle:    "HDMI 1",
			LauncherApp:       "HALauncher",
			Scripts: ScriptsConfig{
				TogglePower:     "toggle_tv_and_dennis",
				USBReadinessOff: "notice_dennis_usb_readiness_off",
				USBReadinessOn:  "notice_dennis_usb_readiness_on",
			},
			RateLimit: 10,
			RateBurst: 5,
		},
		Remote: RemoteConfig{
			Enabled:      true,
			Address:      remote.DefaultAddress,
			PollInterval: Duration(remote.DefaultInterval),
		},
		Serial: SerialConfig{
			Enabled:        true,
			Port:           bravia.DefaultPort,
			BaudRate:       bravia.DefaultBaudRate,
			Timeout:        Duration(bravia.DefaultReadTimeout),
			PollInterval:   Duration(bravia.DefaultPollInterval),
			ReconnectDelay: Duration(bravia.DefaultReconnectDelay),
		},
		Watchdog: WatchdogConfig{
			Schedule:   DefaultCheckSchedule,
			StaleAfter: Duration(DefaultStaleAfter),
		},
	}
}

package models

import (
	"time"

	"github.com/hazzzi/maenggu-run/internal/geometry"
)

// ServerConfig holds the command surface listener settings.
type ServerConfig struct {
	Host           string   `yaml:"host" mapstructure:"host"`
	Port           int      `yaml:"port" mapstructure:"port"` // 0 = dynamic
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
}

// DisplayConfig holds overlay geometry settings.
type DisplayConfig struct {
	PollInterval time.Duration `yaml:"poll_interval" mapstructure:"poll_interval"`
	// Monitors overrides platform enumeration when non-empty.
	Monitors []geometry.Monitor `yaml:"monitors,omitempty" mapstructure:"monitors"`
}

// UpdatesConfig holds settings for update checking.
type UpdatesConfig struct {
	CheckOnStartup bool       `yaml:"check_on_startup" mapstructure:"check_on_startup"`
	CheckFrequency string     `yaml:"check_frequency" mapstructure:"check_frequency"` // "every_launch" | "daily" | "weekly"
	LastChecked    *time.Time `yaml:"last_checked,omitempty" mapstructure:"-"`
}

// TelemetryConfig controls the opt-in error reporting.
type TelemetryConfig struct {
	Enabled   bool   `yaml:"enabled" mapstructure:"enabled"`
	APIKey    string `yaml:"api_key,omitempty" mapstructure:"api_key"`
	Endpoint  string `yaml:"endpoint,omitempty" mapstructure:"endpoint"`
	InstallID string `yaml:"install_id" mapstructure:"install_id"`
}

// Settings represents global application settings.
// This corresponds to settings.yaml in the application directory.
type Settings struct {
	Version   int             `yaml:"version" mapstructure:"version"`
	LogLevel  string          `yaml:"log_level" mapstructure:"log_level"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Display   DisplayConfig   `yaml:"display" mapstructure:"display"`
	Updates   UpdatesConfig   `yaml:"updates" mapstructure:"updates"`
	Telemetry TelemetryConfig `yaml:"telemetry" mapstructure:"telemetry"`
}

// NewSettings creates settings with default values.
func NewSettings() *Settings {
	return &Settings{
		Version:  1,
		LogLevel: "info",
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: 0,
			AllowedOrigins: []string{
				"tauri://localhost",
				"http://tauri.localhost",
				"http://localhost:1420",
			},
		},
		Display: DisplayConfig{
			PollInterval: 5 * time.Second,
		},
		Updates: UpdatesConfig{
			CheckOnStartup: true,
			CheckFrequency: "daily",
		},
		Telemetry: TelemetryConfig{
			Enabled:  false,
			Endpoint: "https://us.i.posthog.com",
		},
	}
}

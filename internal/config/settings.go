package config

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/viper"

	"github.com/hazzzi/maenggu-run/internal/models"
)

// EnvPrefix is the prefix for environment overrides, e.g.
// MAENGGU_SERVER_PORT=7777 or MAENGGU_LOG_LEVEL=debug.
const EnvPrefix = "MAENGGU"

// LoadSettings loads settings.yaml layered over the defaults, with
// MAENGGU_* environment variables taking precedence over the file.
// If the file doesn't exist, returns default settings.
func LoadSettings() (*models.Settings, error) {
	path, err := SettingsFile()
	if err != nil {
		return nil, err
	}
	return loadSettingsFrom(path)
}

func loadSettingsFrom(path string) (*models.Settings, error) {
	v := viper.New()
	setDefaults(v, models.NewSettings())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if FileExists(path) {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read settings %s: %w", path, err)
		}
	}

	settings := &models.Settings{}
	if err := v.Unmarshal(settings); err != nil {
		return nil, fmt.Errorf("failed to decode settings: %w", err)
	}

	// Decoded separately: mapstructure cannot build a *time.Time from YAML
	if t := v.GetTime("updates.last_checked"); !t.IsZero() {
		settings.Updates.LastChecked = &t
	}

	return settings, nil
}

// setDefaults registers every key so environment overrides are picked up.
func setDefaults(v *viper.Viper, d *models.Settings) {
	v.SetDefault("version", d.Version)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("server.host", d.Server.Host)
	v.SetDefault("server.port", d.Server.Port)
	v.SetDefault("server.allowed_origins", d.Server.AllowedOrigins)
	v.SetDefault("display.poll_interval", d.Display.PollInterval)
	v.SetDefault("updates.check_on_startup", d.Updates.CheckOnStartup)
	v.SetDefault("updates.check_frequency", d.Updates.CheckFrequency)
	v.SetDefault("telemetry.enabled", d.Telemetry.Enabled)
	v.SetDefault("telemetry.api_key", d.Telemetry.APIKey)
	v.SetDefault("telemetry.endpoint", d.Telemetry.Endpoint)
	v.SetDefault("telemetry.install_id", d.Telemetry.InstallID)
}

// SaveSettings saves the settings to settings.yaml.
func SaveSettings(settings *models.Settings) error {
	path, err := SettingsFile()
	if err != nil {
		return err
	}
	return SaveYAML(path, settings)
}

// EnsureSettings loads settings and, on first run, assigns an install ID
// and writes the file so users have something to edit.
func EnsureSettings() (*models.Settings, error) {
	settings, err := LoadSettings()
	if err != nil {
		return nil, err
	}

	path, err := SettingsFile()
	if err != nil {
		return nil, err
	}
	if settings.Telemetry.InstallID != "" && FileExists(path) {
		return settings, nil
	}

	if settings.Telemetry.InstallID == "" {
		settings.Telemetry.InstallID = uuid.New().String()
	}
	if err := SaveSettings(settings); err != nil {
		return nil, fmt.Errorf("failed to write default settings: %w", err)
	}
	return settings, nil
}

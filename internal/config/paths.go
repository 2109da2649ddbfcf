// Package config handles configuration loading, saving, and path management.
package config

import (
	"os"
	"path/filepath"

	"github.com/hazzzi/maenggu-run/internal/buildinfo"
)

// HomeEnv overrides the application directory (used by tests and portable installs).
const HomeEnv = "MAENGGU_HOME"

// File names
const (
	SaveFileName     = "save.json"
	SettingsFileName = "settings.yaml"
	DaemonFileName   = "daemon.yaml"
)

// AppDir returns the per-user application directory, e.g.
// ~/.config/maenggu-run on Linux or %AppData%\maenggu-run on Windows.
func AppDir() (string, error) {
	if dir := os.Getenv(HomeEnv); dir != "" {
		return dir, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, buildinfo.AppName), nil
}

// SaveFile returns the path to save.json.
func SaveFile() (string, error) {
	return appFile(SaveFileName)
}

// SettingsFile returns the path to settings.yaml.
func SettingsFile() (string, error) {
	return appFile(SettingsFileName)
}

// DaemonFile returns the path to daemon.yaml.
func DaemonFile() (string, error) {
	return appFile(DaemonFileName)
}

func appFile(name string) (string, error) {
	dir, err := AppDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

// EnsureAppDir creates the application directory if it doesn't exist.
func EnsureAppDir() error {
	dir, err := AppDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0o755)
}

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/hazzzi/maenggu-run/internal/models"
)

// LoadDaemonInfo reads daemon.yaml. A missing file yields (nil, nil).
func LoadDaemonInfo() (*models.DaemonInfo, error) {
	path, err := DaemonFile()
	if err != nil {
		return nil, err
	}
	if !FileExists(path) {
		return nil, nil
	}

	var info models.DaemonInfo
	if err := LoadYAML(path, &info); err != nil {
		return nil, fmt.Errorf("failed to read daemon info: %w", err)
	}
	return &info, nil
}

// SaveDaemonInfo publishes the running daemon's address.
func SaveDaemonInfo(info *models.DaemonInfo) error {
	path, err := DaemonFile()
	if err != nil {
		return err
	}
	return SaveYAML(path, info)
}

// RemoveDaemonInfo deletes daemon.yaml if present.
func RemoveDaemonInfo() error {
	path, err := DaemonFile()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// IsDaemonRunning reports whether daemon.yaml names a live process. A file
// left behind by a dead process is removed and its info still returned.
func IsDaemonRunning() (bool, *models.DaemonInfo, error) {
	info, err := LoadDaemonInfo()
	if err != nil || info == nil {
		return false, nil, err
	}

	if info.PID == os.Getpid() || ProcessAlive(info.PID) {
		return true, info, nil
	}

	_ = RemoveDaemonInfo()
	return false, info, nil
}

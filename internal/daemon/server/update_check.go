package server

import (
	"context"
	"sync"
	"time"

	"github.com/hazzzi/maenggu-run/internal/config"
	"github.com/hazzzi/maenggu-run/internal/models"
	"github.com/hazzzi/maenggu-run/internal/updater"
)

// UpdateState holds the result of the latest update check.
type UpdateState struct {
	mu            sync.RWMutex
	Available     bool
	LatestVersion string
	ReleaseURL    string
	LastChecked   time.Time
}

// checkDue reports whether the configured frequency allows a check now.
func checkDue(u models.UpdatesConfig, now time.Time) bool {
	if !u.CheckOnStartup {
		return false
	}
	if u.LastChecked == nil {
		return true
	}

	since := now.Sub(*u.LastChecked)
	switch u.CheckFrequency {
	case "daily":
		return since >= 24*time.Hour
	case "weekly":
		return since >= 7*24*time.Hour
	default: // "every_launch"
		return true
	}
}

// startUpdateCheck runs an update check in a background goroutine based on settings.
func (s *Server) startUpdateCheck() {
	if !checkDue(s.settings.Updates, time.Now()) {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(s.stopCtx, 30*time.Second)
		defer cancel()

		result, err := updater.CheckForUpdate(ctx)
		if err != nil {
			s.logger.Warn("update check failed", "error", err)
			return
		}

		now := time.Now()
		s.settings.Updates.LastChecked = &now
		if err := config.SaveSettings(s.settings); err != nil {
			s.logger.Warn("failed to save last_checked", "error", err)
		}

		s.updateState.mu.Lock()
		s.updateState.LastChecked = now
		s.updateState.Available = result.Available
		s.updateState.LatestVersion = result.LatestVersion
		s.updateState.ReleaseURL = result.ReleaseURL
		s.updateState.mu.Unlock()

		if result.Available {
			s.logger.Info("update available", "current", result.CurrentVersion, "latest", result.LatestVersion)
		} else {
			s.logger.Info("up to date", "version", result.CurrentVersion)
		}
	}()
}

// GetUpdateState returns the current update state.
func (s *Server) GetUpdateState() (available bool, version, url string) {
	s.updateState.mu.RLock()
	defer s.updateState.mu.RUnlock()
	return s.updateState.Available, s.updateState.LatestVersion, s.updateState.ReleaseURL
}

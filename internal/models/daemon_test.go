package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDaemonInfoAddr(t *testing.T) {
	assert.Equal(t, "127.0.0.1:4321", NewDaemonInfo("127.0.0.1", 4321, 1).Addr())
	assert.Equal(t, "[::1]:80", NewDaemonInfo("::1", 80, 1).Addr())
}

func TestDaemonInfoUptime(t *testing.T) {
	info := &DaemonInfo{StartedAt: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	now := info.StartedAt.Add(90*time.Second + 400*time.Millisecond)
	assert.Equal(t, 90*time.Second, info.Uptime(now))
}

func TestNewSaveStateDefaults(t *testing.T) {
	s := NewSaveState()
	assert.Equal(t, SaveVersion, s.Version)
	assert.Zero(t, s.Snacks)
	assert.Zero(t, s.Stats)
}

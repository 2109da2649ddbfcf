package models

import (
	"net"
	"strconv"
	"time"
)

// DaemonInfo is written to daemon.yaml while maenggud runs so clients can
// find it. At most one live daemon exists per app directory.
type DaemonInfo struct {
	Version   int       `yaml:"version"`
	Host      string    `yaml:"host"`
	Port      int       `yaml:"port"`
	PID       int       `yaml:"pid"`
	StartedAt time.Time `yaml:"started_at"`
}

// NewDaemonInfo describes the current process listening on host:port.
func NewDaemonInfo(host string, port, pid int) *DaemonInfo {
	return &DaemonInfo{
		Version:   1,
		Host:      host,
		Port:      port,
		PID:       pid,
		StartedAt: time.Now().UTC(),
	}
}

// Addr is the dialable host:port of the command surface.
func (d *DaemonInfo) Addr() string {
	return net.JoinHostPort(d.Host, strconv.Itoa(d.Port))
}

// Uptime is the time since the daemon started.
func (d *DaemonInfo) Uptime(now time.Time) time.Duration {
	return now.Sub(d.StartedAt).Truncate(time.Second)
}

// Package tray implements the system tray icon and menu for the daemon.
package tray

import "github.com/hazzzi/maenggu-run/internal/models"

// PetState gives the tray access to the running daemon.
type PetState interface {
	Port() int
	Snapshot() models.SaveState
	Summon()
	Report() string
	RequestShutdown()
}

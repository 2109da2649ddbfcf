// Package models contains shared data structures used across the application.
package models

// SaveVersion is the only save document format currently written.
const SaveVersion uint8 = 1

// SaveStats holds the usage counters stored alongside the snack total.
type SaveStats struct {
	TotalClicks     uint32 `json:"totalClicks"`
	TotalFeedings   uint32 `json:"totalFeedings"`
	PeakSnacks      uint32 `json:"peakSnacks"`
	SessionPlaytime uint32 `json:"sessionPlaytime"` // seconds
}

// SaveState is the persisted game progress.
// This corresponds to save.json in the application directory.
type SaveState struct {
	Version uint8     `json:"version"`
	Snacks  uint32    `json:"snacks"`
	Stats   SaveStats `json:"stats"`
}

// NewSaveState creates the first-run save state.
func NewSaveState() SaveState {
	return SaveState{Version: SaveVersion}
}

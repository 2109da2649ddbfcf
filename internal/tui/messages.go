package tui

import (
	pb "github.com/hazzzi/maenggu-run/proto"
)

// StateLoadedMsg carries the save state from GetState.
type StateLoadedMsg struct {
	State *pb.SaveState
}

// StatusLoadedMsg carries daemon details from GetStatus.
type StatusLoadedMsg struct {
	Status *pb.DaemonStatus
}

// BoundsLoadedMsg carries the current overlay rectangle, nil when there is none.
type BoundsLoadedMsg struct {
	Bounds *pb.Rect
}

// SubscribedMsg signals the event stream is open.
type SubscribedMsg struct{}

// EventMsg carries one event from the Subscribe stream.
type EventMsg struct {
	Event *pb.Event
}

// StreamEndedMsg signals the event stream closed while the daemon is still up.
type StreamEndedMsg struct{}

// DaemonDisconnectedMsg signals the daemon connection was lost.
type DaemonDisconnectedMsg struct{}

// SnackAddedMsg carries the result of SnackAdd.
type SnackAddedMsg struct {
	Snacks uint32
}

// SnackSpentMsg carries the result of SnackSpend.
type SnackSpentMsg struct {
	Success bool
	Snacks  uint32
}

// SummonedMsg signals a summon request was accepted.
type SummonedMsg struct{}

// ErrorMsg carries an error to display.
type ErrorMsg struct {
	Err error
}

// ClearErrorMsg clears the error display.
type ClearErrorMsg struct{}

// moodResetMsg returns the pet to idle unless a newer mood replaced it.
type moodResetMsg struct {
	seq int
}

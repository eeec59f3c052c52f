package types

import "time"

// CompanionState is the scheduler's coarse state.
type CompanionState int

const (
	// StateStopped means the companion is not scheduling displays
	StateStopped CompanionState = iota
	// StateIdle means the companion is waiting for the next display
	StateIdle
	// StateShowing means an overlay is currently visible
	StateShowing
)

// String returns a human-readable state name.
func (s CompanionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateShowing:
		return "showing"
	default:
		return "stopped"
	}
}

// Status is a snapshot of the companion scheduler.
type Status struct {
	Running     bool           // whether the display cycle is active
	State       CompanionState // stopped, idle or showing
	NextFire    time.Time      // when the next overlay is due
	DisplayEnd  time.Time      // when the current overlay hides
	ShownCount  int            // overlays displayed since start
	LastShown   string         // path of the most recent GIF
	LibrarySize int            // entries in the library at snapshot time
}

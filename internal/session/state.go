package session

import (
	"errors"

	"stride/internal/activity"
)

var (
	ErrLocationPermissionDenied = errors.New("location permission denied")
	ErrClosed                   = errors.New("session closed")
	ErrNoSource                 = errors.New("no source for activity mode")
)

// State is the controller lifecycle state.
type State int

const (
	Idle State = iota
	Running
	Paused
	// Blocked means the mode cannot run; Snapshot.Err holds the reason.
	Blocked
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Blocked:
		return "blocked"
	default:
		return "unknown"
	}
}

type event int

const (
	evStart event = iota
	evPause
	evBlock
)

// transition is the session reducer. ok is false when the event does not apply to the state.
func transition(from State, ev event) (State, bool) {
	switch ev {
	case evStart:
		return Running, true
	case evPause:
		if from == Running {
			return Paused, true
		}
		return from, false
	case evBlock:
		return Blocked, true
	}
	return from, false
}

// Snapshot is what the presentation layer sees after every change.
type Snapshot struct {
	Mode          activity.Mode
	State         State
	Metric        float64 // steps, or km for location modes
	Goal          float64
	ProgressRatio float64
	GoalReached   bool
	Steps         int
	Stats         activity.Stats
	Err           error
}

package timer

import (
	"time"

	"github.com/Padamgupta-23/YourTimer/internal/core/format"
)

// Mode is the direction time travels in.
type Mode int

const (
	// CountUp increases the value without bound (stopwatch, clock refresh).
	CountUp Mode = iota
	// CountDown decreases the value from the target toward zero.
	CountDown
)

// String returns a human-readable mode name.
func (mode Mode) String() string {
	switch mode {
	case CountUp:
		return "count_up"
	case CountDown:
		return "count_down"
	default:
		return "unknown"
	}
}

// State represents the lifecycle of a Machine.
type State string

const (
	StateIdle      State = "idle"
	StateRunning   State = "running"
	StatePaused    State = "paused"
	StateCompleted State = "completed"
)

// EventType defines the type of Machine event.
type EventType string

const (
	EventStateChange EventType = "state_change"
	EventProgress    EventType = "progress"
	EventLap         EventType = "lap"
	EventCompleted   EventType = "completed"
	EventConfigured  EventType = "configured"
)

// Snapshot is a consistent copy of the observable timer state.
type Snapshot struct {
	Name       string
	Mode       Mode
	State      State
	Target     time.Duration
	Value      time.Duration
	Resolution time.Duration
	Laps       []time.Duration
}

// Units returns the value as a whole number of time units.
func (snapshot Snapshot) Units() int64 {
	if snapshot.Resolution <= 0 {
		return int64(snapshot.Value / time.Second)
	}
	return int64(snapshot.Value / snapshot.Resolution)
}

// Display formats the value for rendering.
func (snapshot Snapshot) Display() string {
	return format.Value(snapshot.Value, snapshot.Resolution)
}

// Running reports whether the machine was running when the snapshot was taken.
func (snapshot Snapshot) Running() bool {
	return snapshot.State == StateRunning
}

// Progress returns the completed fraction of a countdown in [0, 1].
// Count-up timers have no target and report zero.
func (snapshot Snapshot) Progress() float64 {
	if snapshot.Mode != CountDown || snapshot.Target <= 0 {
		return 0
	}
	progress := float64(snapshot.Target-snapshot.Value) / float64(snapshot.Target)
	if progress < 0 {
		return 0
	}
	if progress > 1 {
		return 1
	}
	return progress
}

// Event represents a Machine update for observers.
type Event struct {
	Type     EventType
	Snapshot Snapshot
	At       time.Time
}

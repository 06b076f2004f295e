// Package timer implements the interval timer state machine shared by the
// Pomodoro, stopwatch, countdown and world clock widgets.
//
// A Machine owns one timer record. All transitions and ticks run under the
// machine's mutex, so exactly one of them executes at a time. Observers,
// the completion notifier and the completion hook are called outside the
// lock.
package timer

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-logr/logr"

	"github.com/Padamgupta-23/YourTimer/internal/core/clock"
)

var (
	// ErrInvalidDuration indicates a non-positive target duration.
	ErrInvalidDuration = errors.New("invalid timer duration")

	// ErrBusy indicates the timer has an in-flight run that a
	// configuration change would corrupt.
	ErrBusy = errors.New("timer is busy")
)

// Notifier receives completion side-effect requests. Implementations must
// tolerate missing capabilities; the machine ignores any failure.
type Notifier interface {
	NotifyCompletion(message string)
}

// Config contains construction options for a Machine.
type Config struct {
	Name       string
	Mode       Mode
	Resolution time.Duration
	Target     time.Duration

	Clock    clock.Clock
	Notifier Notifier
	Message  string

	// OnComplete runs after the machine entered StateCompleted, before the
	// notifier is called.
	OnComplete func(Snapshot)

	Logger logr.Logger
}

// Machine is the interval timer state machine.
type Machine struct {
	mu         sync.Mutex
	name       string
	mode       Mode
	resolution time.Duration
	clock      clock.Clock
	notifier   Notifier
	message    string
	onComplete func(Snapshot)
	log        logr.Logger

	state   State
	target  time.Duration
	elapsed time.Duration
	anchor  time.Time
	laps    []time.Duration

	schedule   clock.Schedule
	generation uint64
	events     []chan Event
	closed     bool
}

// New creates an idle Machine with the provided configuration.
func New(config Config) *Machine {
	if config.Resolution <= 0 {
		config.Resolution = time.Second
	}
	if config.Clock == nil {
		config.Clock = clock.Real()
	}
	if config.Logger.GetSink() == nil {
		config.Logger = logr.Discard()
	}
	target := config.Target.Truncate(config.Resolution)
	if target < 0 {
		target = 0
	}

	return &Machine{
		name:       config.Name,
		mode:       config.Mode,
		resolution: config.Resolution,
		clock:      config.Clock,
		notifier:   config.Notifier,
		message:    config.Message,
		onComplete: config.OnComplete,
		log:        config.Logger.WithValues("timer", config.Name),
		state:      StateIdle,
		target:     target,
	}
}

// Subscribe registers a new observer channel. Sends never block; a slow
// observer misses events.
func (machine *Machine) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	machine.mu.Lock()
	defer machine.mu.Unlock()
	if machine.closed {
		close(ch)
		return ch
	}
	machine.events = append(machine.events, ch)
	return ch
}

// Snapshot returns the current observable state.
func (machine *Machine) Snapshot() Snapshot {
	machine.mu.Lock()
	defer machine.mu.Unlock()
	return machine.snapshotLocked()
}

// SetMessage replaces the message passed to the notifier on completion.
func (machine *Machine) SetMessage(message string) {
	machine.mu.Lock()
	machine.message = message
	machine.mu.Unlock()
}

// Configure sets the target duration and restores the baseline value.
// It is accepted while idle or completed, and while paused with nothing
// left to count down.
func (machine *Machine) Configure(duration time.Duration) (Snapshot, error) {
	machine.mu.Lock()
	defer machine.mu.Unlock()

	duration = duration.Truncate(machine.resolution)
	if duration <= 0 {
		return machine.snapshotLocked(), fmt.Errorf("%w: %v", ErrInvalidDuration, duration)
	}

	switch machine.state {
	case StateRunning:
		return machine.snapshotLocked(), ErrBusy
	case StatePaused:
		if machine.mode != CountDown || machine.valueLocked() != 0 {
			return machine.snapshotLocked(), ErrBusy
		}
	}

	machine.target = duration
	machine.elapsed = 0
	machine.laps = nil
	machine.anchor = time.Time{}
	machine.state = StateIdle

	snapshot := machine.snapshotLocked()
	machine.emitLocked(Event{Type: EventConfigured, Snapshot: snapshot, At: machine.clock.Now()})
	return snapshot, nil
}

// Start begins or resumes the run. Calling Start while running is a no-op.
// A completed countdown restarts from its target.
func (machine *Machine) Start() Snapshot {
	machine.mu.Lock()
	defer machine.mu.Unlock()

	switch machine.state {
	case StateRunning:
		return machine.snapshotLocked()
	case StateCompleted:
		if machine.mode != CountDown {
			return machine.snapshotLocked()
		}
		machine.elapsed = 0
	}

	if machine.mode == CountDown && machine.valueLocked() <= 0 {
		machine.elapsed = 0
		if machine.target <= 0 {
			return machine.snapshotLocked()
		}
	}

	now := machine.clock.Now()
	machine.anchor = now.Add(-machine.elapsed)
	machine.state = StateRunning
	machine.armLocked()

	snapshot := machine.snapshotLocked()
	machine.emitLocked(Event{Type: EventStateChange, Snapshot: snapshot, At: now})
	machine.log.V(1).Info("timer started", "value", snapshot.Value)
	return snapshot
}

// Pause freezes a running timer. It is a no-op in any other state.
func (machine *Machine) Pause() Snapshot {
	machine.mu.Lock()
	if machine.state != StateRunning {
		snapshot := machine.snapshotLocked()
		machine.mu.Unlock()
		return snapshot
	}

	now := machine.clock.Now()
	if machine.advanceLocked(now) {
		completion := machine.completeLocked(now)
		machine.mu.Unlock()
		machine.finish(completion)
		return completion.snapshot
	}

	machine.disarmLocked()
	machine.anchor = time.Time{}
	machine.state = StatePaused

	snapshot := machine.snapshotLocked()
	machine.emitLocked(Event{Type: EventStateChange, Snapshot: snapshot, At: now})
	machine.mu.Unlock()

	machine.log.V(1).Info("timer paused", "value", snapshot.Value)
	return snapshot
}

// Reset returns the timer to idle with its baseline value and no laps.
func (machine *Machine) Reset() Snapshot {
	machine.mu.Lock()
	defer machine.mu.Unlock()

	machine.disarmLocked()
	machine.state = StateIdle
	machine.elapsed = 0
	machine.laps = nil
	machine.anchor = time.Time{}

	snapshot := machine.snapshotLocked()
	machine.emitLocked(Event{Type: EventStateChange, Snapshot: snapshot, At: machine.clock.Now()})
	return snapshot
}

// Lap records the current value. Only a running timer records laps.
func (machine *Machine) Lap() Snapshot {
	machine.mu.Lock()
	if machine.state != StateRunning {
		snapshot := machine.snapshotLocked()
		machine.mu.Unlock()
		return snapshot
	}

	now := machine.clock.Now()
	if machine.advanceLocked(now) {
		completion := machine.completeLocked(now)
		machine.mu.Unlock()
		machine.finish(completion)
		return completion.snapshot
	}
	machine.laps = append(machine.laps, machine.valueLocked())

	snapshot := machine.snapshotLocked()
	machine.emitLocked(Event{Type: EventLap, Snapshot: snapshot, At: now})
	machine.mu.Unlock()
	return snapshot
}

// Close disarms the timer and closes every observer channel.
func (machine *Machine) Close() {
	machine.mu.Lock()
	if machine.closed {
		machine.mu.Unlock()
		return
	}
	machine.disarmLocked()
	machine.closed = true
	events := machine.events
	machine.events = nil
	machine.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

func (machine *Machine) tick(generation uint64) {
	machine.mu.Lock()
	if machine.state != StateRunning || generation != machine.generation {
		machine.mu.Unlock()
		return
	}

	now := machine.clock.Now()
	if machine.advanceLocked(now) {
		completion := machine.completeLocked(now)
		machine.mu.Unlock()
		machine.finish(completion)
		return
	}

	machine.emitLocked(Event{Type: EventProgress, Snapshot: machine.snapshotLocked(), At: now})
	machine.mu.Unlock()
}

// advanceLocked derives the elapsed time from the anchor and reports
// whether a countdown has reached zero.
func (machine *Machine) advanceLocked(now time.Time) bool {
	elapsed := now.Sub(machine.anchor)
	if elapsed < 0 {
		elapsed = 0
	}
	machine.elapsed = elapsed
	return machine.mode == CountDown && machine.elapsed >= machine.target
}

type completion struct {
	snapshot   Snapshot
	notifier   Notifier
	message    string
	onComplete func(Snapshot)
}

func (machine *Machine) completeLocked(now time.Time) completion {
	machine.disarmLocked()
	machine.elapsed = machine.target
	machine.anchor = time.Time{}
	machine.state = StateCompleted

	snapshot := machine.snapshotLocked()
	machine.emitLocked(Event{Type: EventStateChange, Snapshot: snapshot, At: now})
	machine.emitLocked(Event{Type: EventCompleted, Snapshot: snapshot, At: now})

	return completion{
		snapshot:   snapshot,
		notifier:   machine.notifier,
		message:    machine.message,
		onComplete: machine.onComplete,
	}
}

func (machine *Machine) finish(done completion) {
	machine.log.Info("timer completed", "target", done.snapshot.Target)
	if done.onComplete != nil {
		done.onComplete(done.snapshot)
	}
	if done.notifier != nil {
		machine.notify(done.notifier, done.message)
	}
}

func (machine *Machine) notify(notifier Notifier, message string) {
	defer func() {
		if recovered := recover(); recovered != nil {
			machine.log.V(1).Info("completion notifier failed", "panic", recovered)
		}
	}()
	notifier.NotifyCompletion(message)
}

// armLocked is only reachable from a non-running state, so at most one
// schedule is live per machine.
func (machine *Machine) armLocked() {
	machine.disarmLocked()
	generation := machine.generation
	machine.schedule = machine.clock.Every(machine.resolution, func(time.Time) {
		machine.tick(generation)
	})
}

func (machine *Machine) disarmLocked() {
	machine.generation++
	if machine.schedule != nil {
		machine.schedule.Stop()
		machine.schedule = nil
	}
}

func (machine *Machine) valueLocked() time.Duration {
	elapsed := machine.elapsed.Truncate(machine.resolution)
	if machine.mode == CountUp {
		return elapsed
	}
	remaining := machine.target - elapsed
	if remaining < 0 {
		return 0
	}
	return remaining
}

func (machine *Machine) snapshotLocked() Snapshot {
	var laps []time.Duration
	if len(machine.laps) > 0 {
		laps = append([]time.Duration(nil), machine.laps...)
	}
	return Snapshot{
		Name:       machine.name,
		Mode:       machine.mode,
		State:      machine.state,
		Target:     machine.target,
		Value:      machine.valueLocked(),
		Resolution: machine.resolution,
		Laps:       laps,
	}
}

func (machine *Machine) emitLocked(event Event) {
	for _, ch := range machine.events {
		select {
		case ch <- event:
		default:
		}
	}
}

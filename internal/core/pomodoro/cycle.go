// Package pomodoro layers the work/break phase cycle on top of one
// count-down timer. Every LongBreakEvery-th break is a long break. A
// finished phase configures the next one and leaves it idle; nothing
// starts automatically.
package pomodoro

import (
	"fmt"
	"sync"
	"time"

	"github.com/go-logr/logr"
	"github.com/google/uuid"

	"github.com/Padamgupta-23/YourTimer/internal/core/clock"
	"github.com/Padamgupta-23/YourTimer/internal/core/model"
	"github.com/Padamgupta-23/YourTimer/internal/core/timer"
)

// Phase identifies the current part of the cycle.
type Phase string

const (
	PhaseWork       Phase = "work"
	PhaseShortBreak Phase = "short_break"
	PhaseLongBreak  Phase = "long_break"
)

// Completion messages handed to the notifier.
const (
	WorkDoneMessage  = "Great job! Take a break."
	BreakDoneMessage = "Break over! Back to work."
)

// Session is one completed phase.
type Session struct {
	ID          uuid.UUID
	Phase       Phase
	Planned     time.Duration
	CompletedAt time.Time
}

// Status is a consistent view of the cycle for rendering.
type Status struct {
	Phase   Phase
	Session int
	Breaks  int
	Label   string
	Timer   timer.Snapshot
}

// Options contains runtime collaborators for a Cycle.
type Options struct {
	Clock    clock.Clock
	Notifier timer.Notifier
	Logger   logr.Logger

	// OnPhaseChange runs after a completed phase configured the next one.
	OnPhaseChange func(Status)
}

// Cycle is the Pomodoro phase cycle.
type Cycle struct {
	mu            sync.Mutex
	config        model.PomodoroConfig
	pending       *model.PomodoroConfig
	phase         Phase
	label         string
	session       int
	breaks        int
	history       []Session
	machine       *timer.Machine
	clock         clock.Clock
	log           logr.Logger
	onPhaseChange func(Status)
}

// New creates a Cycle positioned at the first work phase.
func New(config model.PomodoroConfig, options Options) (*Cycle, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("pomodoro: %w", err)
	}
	if options.Clock == nil {
		options.Clock = clock.Real()
	}
	if options.Logger.GetSink() == nil {
		options.Logger = logr.Discard()
	}

	cycle := &Cycle{
		config:        config,
		phase:         PhaseWork,
		session:       1,
		clock:         options.Clock,
		log:           options.Logger.WithName("pomodoro"),
		onPhaseChange: options.OnPhaseChange,
	}
	cycle.label = cycle.workLabelLocked()
	cycle.machine = timer.NewPomodoroTimer(timer.Config{
		Target:     config.Work,
		Clock:      options.Clock,
		Notifier:   options.Notifier,
		Message:    WorkDoneMessage,
		OnComplete: cycle.handleComplete,
		Logger:     options.Logger,
	})
	return cycle, nil
}

// Subscribe registers an observer of the underlying timer.
func (cycle *Cycle) Subscribe(buffer int) <-chan timer.Event {
	return cycle.machine.Subscribe(buffer)
}

// Close stops the underlying timer and closes its observers.
func (cycle *Cycle) Close() {
	cycle.machine.Close()
}

// Start starts or resumes the current phase. It is ignored while a finished
// phase has not been handed over to the next one yet.
func (cycle *Cycle) Start() timer.Snapshot {
	cycle.mu.Lock()
	defer cycle.mu.Unlock()

	if snapshot := cycle.machine.Snapshot(); snapshot.State == timer.StateCompleted {
		return snapshot
	}
	return cycle.machine.Start()
}

// Pause pauses the current phase. A pause that lands on zero completes the
// phase instead, so the cycle lock must not be held here.
func (cycle *Cycle) Pause() timer.Snapshot {
	return cycle.machine.Pause()
}

// Toggle pauses a running phase and starts any other.
func (cycle *Cycle) Toggle() timer.Snapshot {
	if cycle.machine.Snapshot().Running() {
		return cycle.Pause()
	}
	return cycle.Start()
}

// Reset stops the timer and restores the full length of the current phase.
// Durations changed while the phase was running take effect here.
func (cycle *Cycle) Reset() Status {
	cycle.mu.Lock()
	settled := cycle.settleLocked()
	cycle.applyPendingLocked()
	cycle.machine.Reset()
	cycle.configurePhaseLocked()
	return cycle.release(settled)
}

// ToggleShortBreak switches between the work phase and a short break,
// stopping the timer.
func (cycle *Cycle) ToggleShortBreak() Status {
	cycle.mu.Lock()
	toBreak := cycle.phase == PhaseWork
	settled := cycle.settleLocked()
	cycle.applyPendingLocked()
	cycle.machine.Reset()
	if toBreak {
		cycle.phase = PhaseShortBreak
		cycle.label = "Short Break"
	} else {
		cycle.phase = PhaseWork
		cycle.label = cycle.workLabelLocked()
	}
	cycle.configurePhaseLocked()
	return cycle.release(settled)
}

// SetDurations replaces the phase lengths. While a phase is in progress
// the change is deferred to the next phase or reset.
func (cycle *Cycle) SetDurations(config model.PomodoroConfig) error {
	if err := config.Validate(); err != nil {
		return fmt.Errorf("pomodoro: %w", err)
	}

	cycle.mu.Lock()
	settled := cycle.settleLocked()

	switch cycle.machine.Snapshot().State {
	case timer.StateRunning, timer.StatePaused:
		cycle.pending = &config
		cycle.log.V(1).Info("durations deferred until next phase")
	default:
		cycle.config = config
		cycle.pending = nil
		cycle.configurePhaseLocked()
	}
	cycle.release(settled)
	return nil
}

// Config returns the most recently requested phase lengths.
func (cycle *Cycle) Config() model.PomodoroConfig {
	cycle.mu.Lock()
	defer cycle.mu.Unlock()
	if cycle.pending != nil {
		return *cycle.pending
	}
	return cycle.config
}

// Status returns the current cycle view.
func (cycle *Cycle) Status() Status {
	cycle.mu.Lock()
	defer cycle.mu.Unlock()
	return cycle.statusLocked()
}

// History returns the completed phases, oldest first.
func (cycle *Cycle) History() []Session {
	cycle.mu.Lock()
	defer cycle.mu.Unlock()
	return append([]Session(nil), cycle.history...)
}

func (cycle *Cycle) handleComplete(timer.Snapshot) {
	cycle.mu.Lock()
	cycle.release(cycle.settleLocked())
}

// settleLocked moves past a phase whose countdown completed. The machine
// stays in StateCompleted only until this runs, whether from the completion
// hook or from a user action that got there first.
func (cycle *Cycle) settleLocked() bool {
	snapshot := cycle.machine.Snapshot()
	if snapshot.State != timer.StateCompleted {
		return false
	}

	finished := cycle.phase
	cycle.history = append(cycle.history, Session{
		ID:          uuid.New(),
		Phase:       finished,
		Planned:     snapshot.Target,
		CompletedAt: cycle.clock.Now(),
	})
	cycle.applyPendingLocked()

	if finished == PhaseWork {
		cycle.breaks++
		cycle.session++
		if cycle.breaks%cycle.config.LongBreakEvery == 0 {
			cycle.phase = PhaseLongBreak
			cycle.label = "Long Break Time!"
		} else {
			cycle.phase = PhaseShortBreak
			cycle.label = "Break Time!"
		}
	} else {
		cycle.phase = PhaseWork
		cycle.label = cycle.workLabelLocked()
	}
	cycle.configurePhaseLocked()

	cycle.log.Info("phase finished", "finished", finished, "next", cycle.phase, "session", cycle.session)
	return true
}

// release unlocks the cycle and reports a phase change to the hook when
// settled is set.
func (cycle *Cycle) release(settled bool) Status {
	status := cycle.statusLocked()
	hook := cycle.onPhaseChange
	cycle.mu.Unlock()

	if settled && hook != nil {
		hook(status)
	}
	return status
}

func (cycle *Cycle) applyPendingLocked() {
	if cycle.pending != nil {
		cycle.config = *cycle.pending
		cycle.pending = nil
	}
}

func (cycle *Cycle) configurePhaseLocked() {
	message := BreakDoneMessage
	if cycle.phase == PhaseWork {
		message = WorkDoneMessage
	}
	cycle.machine.SetMessage(message)

	if _, err := cycle.machine.Configure(cycle.durationLocked()); err != nil {
		cycle.log.Error(err, "configure phase", "phase", cycle.phase)
	}
}

func (cycle *Cycle) durationLocked() time.Duration {
	switch cycle.phase {
	case PhaseShortBreak:
		return cycle.config.ShortBreak
	case PhaseLongBreak:
		return cycle.config.LongBreak
	default:
		return cycle.config.Work
	}
}

func (cycle *Cycle) workLabelLocked() string {
	return fmt.Sprintf("Focus Session #%d", cycle.session)
}

func (cycle *Cycle) statusLocked() Status {
	return Status{
		Phase:   cycle.phase,
		Session: cycle.session,
		Breaks:  cycle.breaks,
		Label:   cycle.label,
		Timer:   cycle.machine.Snapshot(),
	}
}

// SessionNumber returns the number of the current or upcoming focus session.
func (cycle *Cycle) SessionNumber() int {
	cycle.mu.Lock()
	defer cycle.mu.Unlock()
	return cycle.session
}

// Label returns the heading for the current phase.
func (cycle *Cycle) Label() string {
	cycle.mu.Lock()
	defer cycle.mu.Unlock()
	return cycle.label
}

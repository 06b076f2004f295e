package timer

import "time"

// Tick cadences per widget. They are fixed and not user-configurable.
const (
	SecondCadence    = time.Second
	StopwatchCadence = 10 * time.Millisecond
)

// CountdownMessage is the notifier message of the countdown widget.
const CountdownMessage = "Countdown Complete! Time's up!"

// NewStopwatch returns a count-up machine ticking at 100 Hz.
func NewStopwatch(config Config) *Machine {
	config.Mode = CountUp
	config.Resolution = StopwatchCadence
	if config.Name == "" {
		config.Name = "stopwatch"
	}
	return New(config)
}

// NewCountdown returns a count-down machine ticking at 1 Hz.
func NewCountdown(config Config) *Machine {
	config.Mode = CountDown
	config.Resolution = SecondCadence
	if config.Name == "" {
		config.Name = "countdown"
	}
	if config.Message == "" {
		config.Message = CountdownMessage
	}
	return New(config)
}

// NewPomodoroTimer returns the count-down machine driven by the Pomodoro
// phase cycle.
func NewPomodoroTimer(config Config) *Machine {
	config.Mode = CountDown
	config.Resolution = SecondCadence
	if config.Name == "" {
		config.Name = "pomodoro"
	}
	return New(config)
}

// NewClockRefresher returns a free-running 1 Hz machine whose progress
// events drive wall-clock refreshes.
func NewClockRefresher(config Config) *Machine {
	config.Mode = CountUp
	config.Resolution = SecondCadence
	config.Notifier = nil
	if config.Name == "" {
		config.Name = "clock"
	}
	return New(config)
}

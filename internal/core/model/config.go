package model

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidConfig reports a configuration value that cannot be applied.
var ErrInvalidConfig = errors.New("invalid configuration")

// DefaultZone is the world clock zone used when nothing was saved.
const DefaultZone = "Asia/Kolkata"

// PomodoroConfig contains the phase lengths of the Pomodoro cycle.
type PomodoroConfig struct {
	Work       time.Duration
	ShortBreak time.Duration
	LongBreak  time.Duration

	// LongBreakEvery escalates every n-th break to a long break.
	LongBreakEvery int
}

// DefaultPomodoroConfig returns the classic 25/5/15 cycle.
func DefaultPomodoroConfig() PomodoroConfig {
	return PomodoroConfig{
		Work:           25 * time.Minute,
		ShortBreak:     5 * time.Minute,
		LongBreak:      15 * time.Minute,
		LongBreakEvery: 4,
	}
}

// Validate rejects non-positive phase lengths.
func (config PomodoroConfig) Validate() error {
	if config.Work < time.Second {
		return fmt.Errorf("%w: work duration %v", ErrInvalidConfig, config.Work)
	}
	if config.ShortBreak < time.Second {
		return fmt.Errorf("%w: break duration %v", ErrInvalidConfig, config.ShortBreak)
	}
	if config.LongBreak < time.Second {
		return fmt.Errorf("%w: long break duration %v", ErrInvalidConfig, config.LongBreak)
	}
	if config.LongBreakEvery <= 0 {
		return fmt.Errorf("%w: long break interval %d", ErrInvalidConfig, config.LongBreakEvery)
	}
	return nil
}

// ClockConfig contains the world clock display settings.
type ClockConfig struct {
	Zone     string
	Format24 bool
}

// DefaultClockConfig returns a 12-hour clock in DefaultZone.
func DefaultClockConfig() ClockConfig {
	return ClockConfig{
		Zone:     DefaultZone,
		Format24: false,
	}
}

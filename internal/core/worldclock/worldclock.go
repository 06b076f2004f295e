// Package worldclock shows the current time of a selectable zone, refreshed
// once per second by a free-running timer machine.
package worldclock

import (
	"errors"
	"fmt"
	"sync"
	"time"
	_ "time/tzdata"

	"github.com/go-logr/logr"

	"github.com/Padamgupta-23/YourTimer/internal/core/clock"
	"github.com/Padamgupta-23/YourTimer/internal/core/format"
	"github.com/Padamgupta-23/YourTimer/internal/core/model"
	"github.com/Padamgupta-23/YourTimer/internal/core/timer"
)

// ErrUnknownZone indicates a zone name the time zone database does not know.
var ErrUnknownZone = errors.New("unknown time zone")

// Zones lists the selectable zones.
var Zones = []string{
	"Asia/Kolkata",
	"UTC",
	"America/New_York",
	"America/Chicago",
	"America/Los_Angeles",
	"America/Sao_Paulo",
	"Europe/London",
	"Europe/Paris",
	"Europe/Berlin",
	"Europe/Moscow",
	"Africa/Cairo",
	"Asia/Dubai",
	"Asia/Singapore",
	"Asia/Shanghai",
	"Asia/Tokyo",
	"Australia/Sydney",
	"Pacific/Auckland",
}

// Reading is the formatted wall-clock time of the selected zone.
type Reading struct {
	Zone string
	Time string
	Date string
	At   time.Time
}

// Options contains runtime collaborators for a Clock.
type Options struct {
	Clock  clock.Clock
	Logger logr.Logger
}

// Clock is the world clock widget state.
type Clock struct {
	mu       sync.Mutex
	zone     string
	location *time.Location
	format24 bool

	source    clock.Clock
	refresher *timer.Machine
	log       logr.Logger
}

// New creates a world clock and starts its refresher. An unknown saved zone
// falls back to model.DefaultZone.
func New(config model.ClockConfig, options Options) *Clock {
	if options.Clock == nil {
		options.Clock = clock.Real()
	}
	if options.Logger.GetSink() == nil {
		options.Logger = logr.Discard()
	}

	world := &Clock{
		format24: config.Format24,
		source:   options.Clock,
		log:      options.Logger.WithName("worldclock"),
	}
	if err := world.SetZone(config.Zone); err != nil {
		world.log.V(1).Info("saved zone rejected, using default", "zone", config.Zone, "error", err.Error())
		if err := world.SetZone(model.DefaultZone); err != nil {
			world.zone, world.location = "UTC", time.UTC
		}
	}

	world.refresher = timer.NewClockRefresher(timer.Config{
		Clock:  options.Clock,
		Logger: options.Logger,
	})
	world.refresher.Start()
	return world
}

// Subscribe registers an observer of the 1 Hz refresh events.
func (world *Clock) Subscribe(buffer int) <-chan timer.Event {
	return world.refresher.Subscribe(buffer)
}

// Close stops the refresher.
func (world *Clock) Close() {
	world.refresher.Close()
}

// SetZone selects a zone by IANA name. On error the previous zone is kept.
func (world *Clock) SetZone(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrUnknownZone)
	}
	location, err := time.LoadLocation(name)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrUnknownZone, name, err)
	}

	world.mu.Lock()
	world.zone = name
	world.location = location
	world.mu.Unlock()
	return nil
}

// SetFormat24 switches between 24-hour and 12-hour display.
func (world *Clock) SetFormat24(format24 bool) {
	world.mu.Lock()
	world.format24 = format24
	world.mu.Unlock()
}

// Config returns the current zone and format.
func (world *Clock) Config() model.ClockConfig {
	world.mu.Lock()
	defer world.mu.Unlock()
	return model.ClockConfig{Zone: world.zone, Format24: world.format24}
}

// Reading formats the current instant in the selected zone.
func (world *Clock) Reading() Reading {
	world.mu.Lock()
	zone, location, format24 := world.zone, world.location, world.format24
	world.mu.Unlock()

	now := world.source.Now().In(location)
	return Reading{
		Zone: zone,
		Time: format.Clock(now, format24),
		Date: format.Date(now),
		At:   now,
	}
}

package worldclock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Padamgupta-23/YourTimer/internal/core/clock"
	"github.com/Padamgupta-23/YourTimer/internal/core/model"
	"github.com/Padamgupta-23/YourTimer/internal/core/timer"
)

var epoch = time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

func newClock(t *testing.T, config model.ClockConfig) (*Clock, *clock.Fake) {
	t.Helper()
	fake := clock.NewFake(epoch)
	world := New(config, Options{Clock: fake})
	t.Cleanup(world.Close)
	return world, fake
}

func TestDefaultReading(t *testing.T) {
	world, _ := newClock(t, model.DefaultClockConfig())

	reading := world.Reading()
	assert.Equal(t, "Asia/Kolkata", reading.Zone)
	assert.Equal(t, "02:30:00 PM", reading.Time)
	assert.Equal(t, "Monday, January 1, 2024 IST", reading.Date)
}

func TestFormat24(t *testing.T) {
	world, _ := newClock(t, model.DefaultClockConfig())

	world.SetFormat24(true)
	assert.Equal(t, "14:30:00", world.Reading().Time)
	assert.True(t, world.Config().Format24)
}

func TestSetZone(t *testing.T) {
	world, _ := newClock(t, model.DefaultClockConfig())

	require.NoError(t, world.SetZone("America/New_York"))
	reading := world.Reading()
	assert.Equal(t, "04:00:00 AM", reading.Time)
	assert.Equal(t, "Monday, January 1, 2024 EST", reading.Date)
}

func TestSetZoneRejectsUnknown(t *testing.T) {
	world, _ := newClock(t, model.DefaultClockConfig())

	for _, name := range []string{"", "Mars/Olympus_Mons"} {
		err := world.SetZone(name)
		assert.ErrorIs(t, err, ErrUnknownZone)
	}
	assert.Equal(t, "Asia/Kolkata", world.Config().Zone)
}

func TestUnknownSavedZoneFallsBack(t *testing.T) {
	world, _ := newClock(t, model.ClockConfig{Zone: "Nowhere/Special"})
	assert.Equal(t, model.DefaultZone, world.Config().Zone)
}

func TestRefresherTicksEverySecond(t *testing.T) {
	world, fake := newClock(t, model.DefaultClockConfig())
	events := world.Subscribe(8)

	assert.Equal(t, 1, fake.Active())
	fake.Advance(3 * time.Second)

	count := 0
	for len(events) > 0 {
		if event := <-events; event.Type == timer.EventProgress {
			count++
		}
	}
	assert.Equal(t, 3, count)
	assert.Equal(t, "02:30:03 PM", world.Reading().Time)
}

func TestZonesLoad(t *testing.T) {
	for _, zone := range Zones {
		_, err := time.LoadLocation(zone)
		assert.NoError(t, err, zone)
	}
}

// Package clock supplies time readings and the periodic callback used to
// drive timer ticks. Production code uses Real; tests use Fake to control
// time deterministically.
package clock

import (
	"sync"
	"time"
)

// Clock is the time source consumed by the timer core.
type Clock interface {
	// Now returns the current reading. Readings must be consistent within
	// one run segment.
	Now() time.Time

	// Every calls fn at a fixed cadence until the returned Schedule is
	// stopped. fn receives the reading that triggered the call.
	Every(interval time.Duration, fn func(time.Time)) Schedule
}

// Schedule is an armed periodic callback.
type Schedule interface {
	// Stop disarms the schedule. It is safe to call more than once and
	// from inside the callback itself.
	Stop()
}

// Real returns a Clock backed by the time package.
func Real() Clock {
	return realClock{}
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}

func (realClock) Every(interval time.Duration, fn func(time.Time)) Schedule {
	if interval <= 0 {
		interval = time.Second
	}
	schedule := &realSchedule{
		ticker: time.NewTicker(interval),
		stopCh: make(chan struct{}),
	}
	go schedule.run(fn)
	return schedule
}

type realSchedule struct {
	ticker *time.Ticker
	stopCh chan struct{}
	once   sync.Once
}

func (schedule *realSchedule) run(fn func(time.Time)) {
	defer schedule.ticker.Stop()

	for {
		select {
		case <-schedule.stopCh:
			return
		case tickTime := <-schedule.ticker.C:
			fn(tickTime)
		}
	}
}

func (schedule *realSchedule) Stop() {
	schedule.once.Do(func() {
		close(schedule.stopCh)
	})
}

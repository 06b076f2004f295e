package clock

import (
	"sync"
	"time"
)

// Fake is a manually advanced Clock. Callbacks registered with Every run
// synchronously on the goroutine calling Advance.
type Fake struct {
	mu        sync.Mutex
	now       time.Time
	schedules []*fakeSchedule
}

type fakeSchedule struct {
	clock    *Fake
	interval time.Duration
	next     time.Time
	fn       func(time.Time)
	active   bool
}

// NewFake returns a Fake clock reading start.
func NewFake(start time.Time) *Fake {
	return &Fake{now: start}
}

// Now returns the current fake reading.
func (fake *Fake) Now() time.Time {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	return fake.now
}

// Every registers a periodic callback fired by Advance.
func (fake *Fake) Every(interval time.Duration, fn func(time.Time)) Schedule {
	if interval <= 0 {
		interval = time.Second
	}
	fake.mu.Lock()
	defer fake.mu.Unlock()

	schedule := &fakeSchedule{
		clock:    fake,
		interval: interval,
		next:     fake.now.Add(interval),
		fn:       fn,
		active:   true,
	}
	fake.schedules = append(fake.schedules, schedule)
	return schedule
}

// Advance moves the clock forward by d, firing every due callback in
// chronological order. The clock reads the fire time while a callback runs.
func (fake *Fake) Advance(d time.Duration) {
	fake.mu.Lock()
	target := fake.now.Add(d)
	fake.mu.Unlock()

	for {
		fake.mu.Lock()
		due := fake.nextDueLocked(target)
		if due == nil {
			fake.now = target
			fake.mu.Unlock()
			return
		}
		fireAt := due.next
		fake.now = fireAt
		due.next = due.next.Add(due.interval)
		fn := due.fn
		fake.mu.Unlock()

		fn(fireAt)
	}
}

// Jump moves the clock forward by d without firing callbacks, the way a
// throttled host drops ticks. Schedules resume on their cadence afterwards.
func (fake *Fake) Jump(d time.Duration) {
	fake.mu.Lock()
	defer fake.mu.Unlock()

	fake.now = fake.now.Add(d)
	for _, schedule := range fake.schedules {
		for !schedule.next.After(fake.now) {
			schedule.next = schedule.next.Add(schedule.interval)
		}
	}
}

// Active reports how many schedules are currently armed.
func (fake *Fake) Active() int {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	return len(fake.schedules)
}

func (fake *Fake) nextDueLocked(target time.Time) *fakeSchedule {
	var due *fakeSchedule
	for _, schedule := range fake.schedules {
		if schedule.next.After(target) {
			continue
		}
		if due == nil || schedule.next.Before(due.next) {
			due = schedule
		}
	}
	return due
}

func (schedule *fakeSchedule) Stop() {
	fake := schedule.clock
	fake.mu.Lock()
	defer fake.mu.Unlock()

	if !schedule.active {
		return
	}
	schedule.active = false
	for i, candidate := range fake.schedules {
		if candidate == schedule {
			fake.schedules = append(fake.schedules[:i], fake.schedules[i+1:]...)
			return
		}
	}
}

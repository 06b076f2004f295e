package pomodoro

import (
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Padamgupta-23/YourTimer/internal/core/clock"
	"github.com/Padamgupta-23/YourTimer/internal/core/model"
	"github.com/Padamgupta-23/YourTimer/internal/core/timer"
)

var epoch = time.Date(2024, 3, 4, 8, 30, 0, 0, time.UTC)

type mockNotifier struct {
	mock.Mock
}

func (notifier *mockNotifier) NotifyCompletion(message string) {
	notifier.Called(message)
}

// blockingNotifier holds the completing goroutine until released.
type blockingNotifier struct {
	entered chan struct{}
	release chan struct{}
}

func newBlockingNotifier() *blockingNotifier {
	return &blockingNotifier{entered: make(chan struct{}, 1), release: make(chan struct{})}
}

func (notifier *blockingNotifier) NotifyCompletion(string) {
	notifier.entered <- struct{}{}
	<-notifier.release
}

func waitFor(t *testing.T, ch <-chan struct{}) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for completion")
	}
}

// finishWorkInBackground runs the first work phase to zero on another
// goroutine and returns a channel closed once the clock stopped advancing.
func finishWorkInBackground(cycle *Cycle, fake *clock.Fake) <-chan struct{} {
	done := make(chan struct{})
	cycle.Start()
	go func() {
		defer close(done)
		fake.Advance(25 * time.Minute)
	}()
	return done
}

func newCycle(t *testing.T, options Options) (*Cycle, *clock.Fake) {
	t.Helper()
	fake := clock.NewFake(epoch)
	options.Clock = fake
	cycle, err := New(model.DefaultPomodoroConfig(), options)
	require.NoError(t, err)
	t.Cleanup(cycle.Close)
	return cycle, fake
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	config := model.DefaultPomodoroConfig()
	config.Work = 0

	_, err := New(config, Options{Clock: clock.NewFake(epoch)})
	assert.ErrorIs(t, err, model.ErrInvalidConfig)
}

func TestInitialStatus(t *testing.T) {
	cycle, _ := newCycle(t, Options{})

	status := cycle.Status()
	assert.Equal(t, PhaseWork, status.Phase)
	assert.Equal(t, 1, status.Session)
	assert.Equal(t, "Focus Session #1", status.Label)
	assert.Equal(t, timer.StateIdle, status.Timer.State)
	assert.Equal(t, "00:25:00", status.Timer.Display())
}

func TestWorkPhaseFlowsIntoIdleBreak(t *testing.T) {
	notifier := &mockNotifier{}
	notifier.On("NotifyCompletion", WorkDoneMessage).Once()
	cycle, fake := newCycle(t, Options{Notifier: notifier})

	cycle.Start()
	fake.Advance(1500 * time.Second)

	status := cycle.Status()
	assert.Equal(t, PhaseShortBreak, status.Phase)
	assert.Equal(t, timer.StateIdle, status.Timer.State)
	assert.Equal(t, 300*time.Second, status.Timer.Value)
	assert.Equal(t, "Break Time!", status.Label)
	assert.Equal(t, 2, status.Session)
	assert.Zero(t, fake.Active())

	fake.Advance(10 * time.Second)
	assert.Equal(t, 300*time.Second, cycle.Status().Timer.Value)
	notifier.AssertExpectations(t)
}

func TestEveryFourthBreakIsLong(t *testing.T) {
	notifier := &mockNotifier{}
	notifier.On("NotifyCompletion", WorkDoneMessage).Times(4)
	notifier.On("NotifyCompletion", BreakDoneMessage).Times(3)
	cycle, fake := newCycle(t, Options{Notifier: notifier})

	var breaks []time.Duration
	for i := 0; i < 4; i++ {
		require.Equal(t, PhaseWork, cycle.Status().Phase)
		cycle.Start()
		fake.Advance(cycle.Status().Timer.Target)

		status := cycle.Status()
		breaks = append(breaks, status.Timer.Value)
		if i < 3 {
			cycle.Start()
			fake.Advance(status.Timer.Target)
		}
	}

	assert.Equal(t, []time.Duration{300 * time.Second, 300 * time.Second, 300 * time.Second, 900 * time.Second}, breaks)
	assert.Equal(t, PhaseLongBreak, cycle.Status().Phase)
	assert.Equal(t, "Long Break Time!", cycle.Status().Label)
	notifier.AssertExpectations(t)
}

func TestBreakReturnsToWork(t *testing.T) {
	var changes []Status
	cycle, fake := newCycle(t, Options{OnPhaseChange: func(status Status) {
		changes = append(changes, status)
	}})

	cycle.Start()
	fake.Advance(25 * time.Minute)
	cycle.Start()
	fake.Advance(5 * time.Minute)

	require.Len(t, changes, 2)
	assert.Equal(t, PhaseShortBreak, changes[0].Phase)
	assert.Equal(t, PhaseWork, changes[1].Phase)
	assert.Equal(t, "Focus Session #2", changes[1].Label)
	assert.Equal(t, 25*time.Minute, changes[1].Timer.Value)
}

func TestPauseAndToggle(t *testing.T) {
	cycle, fake := newCycle(t, Options{})

	cycle.Toggle()
	fake.Advance(90 * time.Second)
	snapshot := cycle.Toggle()
	assert.Equal(t, timer.StatePaused, snapshot.State)
	assert.Equal(t, "00:23:30", snapshot.Display())

	fake.Advance(time.Minute)
	snapshot = cycle.Toggle()
	assert.Equal(t, timer.StateRunning, snapshot.State)
	fake.Advance(30 * time.Second)
	assert.Equal(t, "00:23:00", cycle.Pause().Display())
}

func TestResetRestoresCurrentPhase(t *testing.T) {
	cycle, fake := newCycle(t, Options{})

	cycle.Start()
	fake.Advance(25 * time.Minute)
	cycle.Start()
	fake.Advance(2 * time.Minute)

	status := cycle.Reset()
	assert.Equal(t, PhaseShortBreak, status.Phase)
	assert.Equal(t, timer.StateIdle, status.Timer.State)
	assert.Equal(t, 5*time.Minute, status.Timer.Value)
	assert.Zero(t, fake.Active())
}

func TestToggleShortBreak(t *testing.T) {
	cycle, fake := newCycle(t, Options{})

	cycle.Start()
	fake.Advance(time.Minute)

	status := cycle.ToggleShortBreak()
	assert.Equal(t, PhaseShortBreak, status.Phase)
	assert.Equal(t, "Short Break", status.Label)
	assert.Equal(t, timer.StateIdle, status.Timer.State)
	assert.Equal(t, 5*time.Minute, status.Timer.Value)

	status = cycle.ToggleShortBreak()
	assert.Equal(t, PhaseWork, status.Phase)
	assert.Equal(t, "Focus Session #1", status.Label)
	assert.Equal(t, 25*time.Minute, status.Timer.Value)
	assert.Empty(t, cycle.History())
}

func TestSetDurationsWhileIdleAppliesImmediately(t *testing.T) {
	cycle, _ := newCycle(t, Options{})

	config := model.DefaultPomodoroConfig()
	config.Work = 50 * time.Minute
	require.NoError(t, cycle.SetDurations(config))

	assert.Equal(t, 50*time.Minute, cycle.Status().Timer.Value)
	assert.Equal(t, config, cycle.Config())
}

func TestSetDurationsWhileRunningIsDeferred(t *testing.T) {
	cycle, fake := newCycle(t, Options{})

	cycle.Start()
	fake.Advance(time.Minute)

	config := model.DefaultPomodoroConfig()
	config.Work = 50 * time.Minute
	config.ShortBreak = 10 * time.Minute
	require.NoError(t, cycle.SetDurations(config))

	assert.Equal(t, 24*time.Minute, cycle.Pause().Value)
	assert.Equal(t, config, cycle.Config())

	cycle.Start()
	fake.Advance(24 * time.Minute)
	assert.Equal(t, 10*time.Minute, cycle.Status().Timer.Value)
}

func TestSetDurationsRejectsInvalid(t *testing.T) {
	cycle, _ := newCycle(t, Options{})

	config := model.DefaultPomodoroConfig()
	config.ShortBreak = -time.Minute
	assert.ErrorIs(t, cycle.SetDurations(config), model.ErrInvalidConfig)
	assert.Equal(t, model.DefaultPomodoroConfig(), cycle.Config())
}

func TestHistoryRecordsCompletedPhases(t *testing.T) {
	cycle, fake := newCycle(t, Options{})

	cycle.Start()
	fake.Advance(25 * time.Minute)
	cycle.Start()
	fake.Advance(5 * time.Minute)

	history := cycle.History()
	require.Len(t, history, 2)
	assert.Equal(t, PhaseWork, history[0].Phase)
	assert.Equal(t, 25*time.Minute, history[0].Planned)
	assert.Equal(t, epoch.Add(25*time.Minute), history[0].CompletedAt)
	assert.Equal(t, PhaseShortBreak, history[1].Phase)
	assert.NotEqual(t, uuid.Nil, history[0].ID)
	assert.NotEqual(t, history[0].ID, history[1].ID)
}

func TestRandomQuote(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 50; i++ {
		assert.Contains(t, Quotes, RandomQuote(rng))
	}
}

func TestStartDuringSlowNotificationRunsTheBreak(t *testing.T) {
	notifier := newBlockingNotifier()
	cycle, fake := newCycle(t, Options{Notifier: notifier})

	done := finishWorkInBackground(cycle, fake)
	waitFor(t, notifier.entered)

	snapshot := cycle.Start()
	assert.Equal(t, timer.StateRunning, snapshot.State)
	assert.Equal(t, 5*time.Minute, snapshot.Target)

	close(notifier.release)
	waitFor(t, done)

	status := cycle.Status()
	assert.Equal(t, PhaseShortBreak, status.Phase)
	assert.Equal(t, "Break Time!", status.Label)
	assert.Equal(t, 5*time.Minute, status.Timer.Target)
	require.Len(t, cycle.History(), 1)
	assert.Equal(t, PhaseWork, cycle.History()[0].Phase)
}

func TestToggleShortBreakDuringSlowNotificationKeepsHistory(t *testing.T) {
	notifier := newBlockingNotifier()
	cycle, fake := newCycle(t, Options{Notifier: notifier})

	done := finishWorkInBackground(cycle, fake)
	waitFor(t, notifier.entered)

	status := cycle.ToggleShortBreak()
	close(notifier.release)
	waitFor(t, done)

	assert.Equal(t, PhaseWork, status.Phase)
	assert.Equal(t, "Focus Session #2", status.Label)
	assert.Equal(t, 2, status.Session)
	history := cycle.History()
	require.Len(t, history, 1)
	assert.Equal(t, PhaseWork, history[0].Phase)
}

func TestActionsBeforeHandOverSettleFinishedPhase(t *testing.T) {
	var changes []Status
	cycle, fake := newCycle(t, Options{OnPhaseChange: func(status Status) {
		changes = append(changes, status)
	}})

	entered := make(chan struct{})
	release := make(chan struct{})
	cycle.machine.Close()
	cycle.machine = timer.NewPomodoroTimer(timer.Config{
		Target:  25 * time.Minute,
		Clock:   fake,
		Message: WorkDoneMessage,
		OnComplete: func(snapshot timer.Snapshot) {
			close(entered)
			<-release
			cycle.handleComplete(snapshot)
		},
	})

	done := finishWorkInBackground(cycle, fake)
	waitFor(t, entered)

	assert.Equal(t, timer.StateCompleted, cycle.Start().State)
	assert.Zero(t, fake.Active())

	status := cycle.ToggleShortBreak()
	assert.Equal(t, PhaseShortBreak, status.Phase)
	assert.Equal(t, "Short Break", status.Label)
	assert.Equal(t, 2, status.Session)
	assert.Equal(t, timer.StateIdle, status.Timer.State)

	close(release)
	waitFor(t, done)

	status = cycle.Status()
	assert.Equal(t, PhaseShortBreak, status.Phase)
	assert.Equal(t, 5*time.Minute, status.Timer.Value)
	history := cycle.History()
	require.Len(t, history, 1)
	assert.Equal(t, PhaseWork, history[0].Phase)
	require.Len(t, changes, 1)
	assert.Equal(t, PhaseShortBreak, changes[0].Phase)
}

package notify

import (
	"errors"
	"testing"

	"fyne.io/fyne/v2"
	"github.com/go-logr/logr"
	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockSender struct {
	mock.Mock
}

func (sender *mockSender) SendNotification(notification *fyne.Notification) {
	sender.Called(notification.Title, notification.Content)
}

func countSamples(streamer beep.Streamer) int {
	buffer := make([][2]float64, 512)
	total := 0
	for {
		n, ok := streamer.Stream(buffer)
		total += n
		if !ok {
			return total
		}
	}
}

func TestMultiDeliversToAll(t *testing.T) {
	var got []string
	record := Func(func(message string) { got = append(got, message) })
	exploding := Func(func(string) { panic("no device") })

	Multi(record, nil, exploding, record).NotifyCompletion("done")

	assert.Equal(t, []string{"done", "done"}, got)
}

func TestDesktopSendsNotification(t *testing.T) {
	sender := &mockSender{}
	sender.On("SendNotification", DefaultTitle, "Countdown Complete! Time's up!").Once()

	NewDesktop(sender).NotifyCompletion("Countdown Complete! Time's up!")

	sender.AssertExpectations(t)
}

func TestDesktopWithoutSender(t *testing.T) {
	assert.NotPanics(t, func() {
		NewDesktop(nil).NotifyCompletion("ignored")
	})
}

func TestPatternLength(t *testing.T) {
	rate := beep.SampleRate(1000)
	expected := rate.N(ToneLength)*2 + rate.N(ToneGap)
	assert.Equal(t, expected, countSamples(Pattern(rate)))
}

func TestSoundWithoutSpeakerIsSilent(t *testing.T) {
	played := 0
	sound := newSound(
		func(beep.SampleRate, int) error { return errors.New("no audio device") },
		func(...beep.Streamer) { played++ },
		logr.Discard(),
	)

	sound.NotifyCompletion("done")
	assert.False(t, sound.Ready())
	assert.Zero(t, played)
}

func TestSoundPlaysPattern(t *testing.T) {
	var streams []beep.Streamer
	sound := newSound(
		func(beep.SampleRate, int) error { return nil },
		func(streamers ...beep.Streamer) { streams = append(streams, streamers...) },
		logr.Discard(),
	)
	require.True(t, sound.Ready())

	sound.NotifyCompletion("done")
	sound.NotifyCompletion("done again")

	require.Len(t, streams, 2)
	expected := SampleRate.N(ToneLength)*2 + SampleRate.N(ToneGap)
	assert.Equal(t, expected, countSamples(streams[0]))
}

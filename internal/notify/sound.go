package notify

import (
	"math"
	"sync"
	"time"

	"github.com/go-logr/logr"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// Tone pattern played on completion.
const (
	SampleRate     = beep.SampleRate(44100)
	ToneFrequency  = 880.0
	ToneLength     = 300 * time.Millisecond
	ToneGap        = 150 * time.Millisecond
	toneAmplitude  = 0.3
	speakerLatency = 100 * time.Millisecond
)

// Sound plays a short two-tone pattern through the default audio device.
type Sound struct {
	mu     sync.Mutex
	ready  bool
	buffer *beep.Buffer
	play   func(...beep.Streamer)
	log    logr.Logger
}

// NewSound initialises the speaker. When no audio device is available the
// returned Sound stays silent.
func NewSound(logger logr.Logger) *Sound {
	return newSound(speaker.Init, speaker.Play, logger)
}

func newSound(initSpeaker func(beep.SampleRate, int) error, play func(...beep.Streamer), logger logr.Logger) *Sound {
	if logger.GetSink() == nil {
		logger = logr.Discard()
	}
	sound := &Sound{play: play, log: logger.WithName("sound")}

	if err := initSpeaker(SampleRate, SampleRate.N(speakerLatency)); err != nil {
		sound.log.V(1).Info("audio disabled", "error", err.Error())
		return sound
	}

	sound.buffer = beep.NewBuffer(beep.Format{SampleRate: SampleRate, NumChannels: 2, Precision: 2})
	sound.buffer.Append(Pattern(SampleRate))
	sound.ready = true
	return sound
}

// Ready reports whether the audio device was initialised.
func (sound *Sound) Ready() bool {
	return sound.ready
}

// NotifyCompletion plays the pattern. The message is not spoken.
func (sound *Sound) NotifyCompletion(string) {
	if !sound.ready {
		return
	}
	sound.mu.Lock()
	defer sound.mu.Unlock()
	sound.play(sound.buffer.Streamer(0, sound.buffer.Len()))
}

// Pattern returns tone, gap, tone.
func Pattern(rate beep.SampleRate) beep.Streamer {
	return beep.Seq(
		tone(rate, ToneFrequency, ToneLength),
		beep.Silence(rate.N(ToneGap)),
		tone(rate, ToneFrequency, ToneLength),
	)
}

func tone(rate beep.SampleRate, frequency float64, length time.Duration) beep.Streamer {
	total := rate.N(length)
	step := 2 * math.Pi * frequency / float64(rate)
	position := 0

	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if position >= total {
			return 0, false
		}
		n := 0
		for i := range samples {
			if position >= total {
				break
			}
			value := toneAmplitude * math.Sin(step*float64(position))
			samples[i][0], samples[i][1] = value, value
			position++
			n++
		}
		return n, true
	})
}

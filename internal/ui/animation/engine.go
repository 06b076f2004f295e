// Package animation runs the small time-based effects of the dashboard:
// the completion flash and the rotating motivational quote.
package animation

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/Padamgupta-23/YourTimer/internal/core/pomodoro"
)

// Config contains animation timing values.
type Config struct {
	FlashCount int
	FlashOn    time.Duration
	FlashOff   time.Duration

	QuoteInterval time.Duration
	QuoteFade     time.Duration
	FadeSteps     int
}

// DefaultConfig returns the dashboard defaults.
func DefaultConfig() Config {
	return Config{
		FlashCount:    3,
		FlashOn:       400 * time.Millisecond,
		FlashOff:      250 * time.Millisecond,
		QuoteInterval: pomodoro.QuoteInterval,
		QuoteFade:     time.Second,
		FadeSteps:     10,
	}
}

// Engine runs one animation loop at a time. Starting a loop cancels the
// previous one.
type Engine struct {
	mu     sync.Mutex
	config Config
	cancel context.CancelFunc
	rng    *rand.Rand
}

// New creates a new animation engine.
func New(config Config) *Engine {
	return &Engine{
		config: config,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// StartFlash toggles highlight on and off FlashCount times and leaves it off.
func (engine *Engine) StartFlash(ctx context.Context, highlight func(on bool)) {
	engine.start(ctx, func(runCtx context.Context) {
		defer highlight(false)
		for i := 0; i < engine.config.FlashCount; i++ {
			highlight(true)
			if !sleepWithContext(runCtx, engine.config.FlashOn) {
				return
			}
			highlight(false)
			if !sleepWithContext(runCtx, engine.config.FlashOff) {
				return
			}
		}
	})
}

// StartQuotes shows a random quote immediately and a new one every
// QuoteInterval, fading out and back in around each change. show receives
// the text and its opacity between 0 and 1.
func (engine *Engine) StartQuotes(ctx context.Context, quotes []string, show func(text string, alpha float64)) {
	if len(quotes) == 0 {
		return
	}
	engine.start(ctx, func(runCtx context.Context) {
		current := engine.pick(quotes)
		show(current, 1)
		for {
			if !sleepWithContext(runCtx, engine.config.QuoteInterval) {
				return
			}
			next := engine.pick(quotes)
			if !engine.fade(runCtx, current, 1, 0, show) {
				return
			}
			current = next
			if !engine.fade(runCtx, current, 0, 1, show) {
				return
			}
		}
	})
}

// Stop terminates any active animation.
func (engine *Engine) Stop() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.cancel != nil {
		engine.cancel()
		engine.cancel = nil
	}
}

func (engine *Engine) start(parent context.Context, run func(context.Context)) {
	engine.mu.Lock()
	if engine.cancel != nil {
		engine.cancel()
	}
	runCtx, cancel := context.WithCancel(parent)
	engine.cancel = cancel
	engine.mu.Unlock()

	go run(runCtx)
}

func (engine *Engine) pick(quotes []string) string {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return quotes[engine.rng.Intn(len(quotes))]
}

// fade steps opacity from one value to another over half of QuoteFade.
func (engine *Engine) fade(ctx context.Context, text string, from, to float64, show func(string, float64)) bool {
	steps := engine.config.FadeSteps
	if steps <= 0 {
		show(text, to)
		return true
	}
	step := engine.config.QuoteFade / 2 / time.Duration(steps)
	for i := 1; i <= steps; i++ {
		if !sleepWithContext(ctx, step) {
			return false
		}
		show(text, from+(to-from)*float64(i)/float64(steps))
	}
	return true
}

func sleepWithContext(ctx context.Context, duration time.Duration) bool {
	timer := time.NewTimer(duration)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

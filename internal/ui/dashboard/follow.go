// Package dashboard renders the four timer widgets. Each view owns no
// timer state: it issues operations on its machine and redraws from the
// snapshots the machine returns or publishes.
package dashboard

import (
	"context"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/Padamgupta-23/YourTimer/internal/core/timer"
)

const observerBuffer = 64

// follow hands every event to render on the fyne goroutine until the
// channel closes or ctx is done.
func follow(ctx context.Context, events <-chan timer.Event, render func(timer.Event)) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-events:
				if !ok {
					return
				}
				fyne.Do(func() {
					render(event)
				})
			}
		}
	}()
}

func newDigits(size float32) *canvas.Text {
	digits := canvas.NewText("00:00:00", theme.Color(theme.ColorNameForeground))
	digits.Alignment = fyne.TextAlignCenter
	digits.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	digits.TextSize = size
	return digits
}

func setDigits(digits *canvas.Text, text string) {
	if digits.Text == text {
		return
	}
	digits.Text = text
	digits.Color = theme.Color(theme.ColorNameForeground)
	digits.Refresh()
}

// setToggleFace shows Pause while running and Start otherwise.
func setToggleFace(button *widget.Button, running bool) {
	if running {
		button.SetText("Pause")
		button.SetIcon(theme.MediaPauseIcon())
		return
	}
	button.SetText("Start")
	button.SetIcon(theme.MediaPlayIcon())
}

func setEnabled(button *widget.Button, enabled bool) {
	if enabled {
		button.Enable()
		return
	}
	button.Disable()
}

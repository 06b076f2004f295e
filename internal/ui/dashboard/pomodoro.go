package dashboard

import (
	"context"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/Padamgupta-23/YourTimer/internal/core/clock"
	"github.com/Padamgupta-23/YourTimer/internal/core/format"
	"github.com/Padamgupta-23/YourTimer/internal/core/pomodoro"
	"github.com/Padamgupta-23/YourTimer/internal/core/timer"
	"github.com/Padamgupta-23/YourTimer/internal/ui/animation"
)

// PomodoroActions are handlers for actions that leave the view.
type PomodoroActions struct {
	OnFullscreen func()
	OnSettings   func()

	// OnStatus runs on the fyne goroutine after every redraw.
	OnStatus func(pomodoro.Status)

	// OnQuote receives each newly shown quote.
	OnQuote func(string)
}

// PomodoroView shows the Pomodoro cycle.
type PomodoroView struct {
	cycle      *pomodoro.Cycle
	clock      clock.Clock
	actions    PomodoroActions
	flash      *animation.Engine
	quotes     *animation.Engine
	session    *widget.Label
	date       *widget.Label
	digits     *canvas.Text
	quote      *canvas.Text
	progress   *widget.ProgressBar
	toggle     *widget.Button
	reset      *widget.Button
	shortBreak *widget.Button
	content    fyne.CanvasObject
}

// NewPomodoroView builds the view around a cycle.
func NewPomodoroView(cycle *pomodoro.Cycle, source clock.Clock, flash, quotes *animation.Engine, actions PomodoroActions) *PomodoroView {
	view := &PomodoroView{
		cycle:    cycle,
		clock:    source,
		actions:  actions,
		flash:    flash,
		quotes:   quotes,
		session:  widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
		date:     widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{}),
		digits:   newDigits(72),
		quote:    canvas.NewText("", theme.Color(theme.ColorNameForeground)),
		progress: widget.NewProgressBar(),
	}
	view.quote.Alignment = fyne.TextAlignCenter
	view.quote.TextStyle = fyne.TextStyle{Italic: true}

	view.toggle = widget.NewButtonWithIcon("Start", theme.MediaPlayIcon(), func() {
		view.cycle.Toggle()
		view.render()
	})
	view.reset = widget.NewButtonWithIcon("Reset", theme.MediaReplayIcon(), func() {
		view.cycle.Reset()
		view.render()
	})
	view.shortBreak = widget.NewButtonWithIcon("Short Break", theme.HistoryIcon(), func() {
		view.cycle.ToggleShortBreak()
		view.render()
	})
	fullscreen := widget.NewButtonWithIcon("", theme.ViewFullScreenIcon(), func() {
		if view.actions.OnFullscreen != nil {
			view.actions.OnFullscreen()
		}
	})
	settings := widget.NewButtonWithIcon("", theme.SettingsIcon(), func() {
		if view.actions.OnSettings != nil {
			view.actions.OnSettings()
		}
	})

	top := container.NewBorder(nil, nil, nil, container.NewHBox(fullscreen, settings), view.date)
	view.content = container.NewVBox(
		top,
		view.session,
		view.digits,
		view.progress,
		container.NewGridWithColumns(3, view.toggle, view.reset, view.shortBreak),
		widget.NewSeparator(),
		view.quote,
	)

	view.render()
	return view
}

// Content returns the view's root object.
func (view *PomodoroView) Content() fyne.CanvasObject {
	return view.content
}

// Follow redraws the view from cycle events and starts the quote rotation
// until ctx is done.
func (view *PomodoroView) Follow(ctx context.Context) {
	follow(ctx, view.cycle.Subscribe(observerBuffer), func(event timer.Event) {
		view.render()
		if event.Type == timer.EventCompleted && view.flash != nil {
			view.flash.StartFlash(ctx, view.highlight)
		}
	})
	if view.quotes != nil {
		view.quotes.StartQuotes(ctx, pomodoro.Quotes, view.showQuote)
	}
}

// Toggle starts or pauses the current phase.
func (view *PomodoroView) Toggle() {
	view.toggle.OnTapped()
}

func (view *PomodoroView) render() {
	status := view.cycle.Status()

	view.session.SetText(status.Label)
	view.date.SetText(format.ShortDate(view.clock.Now()))
	setDigits(view.digits, status.Timer.Display())
	view.progress.SetValue(status.Timer.Progress())
	setToggleFace(view.toggle, status.Timer.Running())

	if status.Phase == pomodoro.PhaseWork {
		view.shortBreak.SetText("Short Break")
	} else {
		view.shortBreak.SetText("Pomodoro")
	}

	if view.actions.OnStatus != nil {
		view.actions.OnStatus(status)
	}
}

func (view *PomodoroView) highlight(on bool) {
	fyne.Do(func() {
		if on {
			view.digits.Color = theme.Color(theme.ColorNamePrimary)
		} else {
			view.digits.Color = theme.Color(theme.ColorNameForeground)
		}
		view.digits.Refresh()
	})
}

func (view *PomodoroView) showQuote(text string, alpha float64) {
	fyne.Do(func() {
		view.quote.Text = text
		view.quote.Color = fade(theme.Color(theme.ColorNameForeground), alpha)
		view.quote.Refresh()
		if view.actions.OnQuote != nil {
			view.actions.OnQuote(text)
		}
	})
}

func fade(base color.Color, alpha float64) color.Color {
	r, g, b, a := base.RGBA()
	return color.NRGBA{
		R: uint8(r >> 8),
		G: uint8(g >> 8),
		B: uint8(b >> 8),
		A: uint8(float64(a>>8) * alpha),
	}
}

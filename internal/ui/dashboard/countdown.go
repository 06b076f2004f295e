package dashboard

import (
	"context"
	"errors"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/go-logr/logr"

	"github.com/Padamgupta-23/YourTimer/internal/core/format"
	"github.com/Padamgupta-23/YourTimer/internal/core/timer"
	"github.com/Padamgupta-23/YourTimer/internal/ui/animation"
)

// CountdownView shows a count-down timer configured from H/M/S fields.
type CountdownView struct {
	machine  *timer.Machine
	flash    *animation.Engine
	log      logr.Logger
	hours    *widget.Entry
	minutes  *widget.Entry
	seconds  *widget.Entry
	digits   *canvas.Text
	status   *widget.Label
	progress *widget.ProgressBar
	toggle   *widget.Button
	reset    *widget.Button
	content  fyne.CanvasObject
}

// NewCountdownView builds the view around a countdown machine.
func NewCountdownView(machine *timer.Machine, flash *animation.Engine, logger logr.Logger) *CountdownView {
	view := &CountdownView{
		machine:  machine,
		flash:    flash,
		log:      logger,
		hours:    newFieldEntry("HH"),
		minutes:  newFieldEntry("MM"),
		seconds:  newFieldEntry("SS"),
		digits:   newDigits(56),
		status:   widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Italic: true}),
		progress: widget.NewProgressBar(),
	}

	target := machine.Snapshot().Target
	view.hours.SetText(strconv.Itoa(int(target / time.Hour)))
	view.minutes.SetText(strconv.Itoa(int(target % time.Hour / time.Minute)))
	view.seconds.SetText(strconv.Itoa(int(target % time.Minute / time.Second)))
	for _, entry := range []*widget.Entry{view.hours, view.minutes, view.seconds} {
		entry.OnChanged = func(string) { view.applyInputs() }
	}

	view.toggle = widget.NewButtonWithIcon("Start", theme.MediaPlayIcon(), view.handleToggle)
	view.reset = widget.NewButtonWithIcon("Reset", theme.MediaReplayIcon(), func() {
		view.render(view.machine.Reset())
	})

	inputs := container.NewGridWithColumns(3,
		container.NewBorder(nil, nil, nil, widget.NewLabel("h"), view.hours),
		container.NewBorder(nil, nil, nil, widget.NewLabel("m"), view.minutes),
		container.NewBorder(nil, nil, nil, widget.NewLabel("s"), view.seconds),
	)
	view.content = container.NewVBox(
		widget.NewLabelWithStyle("Countdown", fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
		inputs,
		view.digits,
		view.progress,
		view.status,
		container.NewGridWithColumns(2, view.toggle, view.reset),
	)

	view.render(machine.Snapshot())
	return view
}

// Content returns the view's root object.
func (view *CountdownView) Content() fyne.CanvasObject {
	return view.content
}

// Follow redraws the view from machine events until ctx is done.
func (view *CountdownView) Follow(ctx context.Context) {
	follow(ctx, view.machine.Subscribe(observerBuffer), func(event timer.Event) {
		view.render(event.Snapshot)
		if event.Type == timer.EventCompleted && view.flash != nil {
			view.flash.StartFlash(ctx, view.highlight)
		}
	})
}

func (view *CountdownView) handleToggle() {
	snapshot := view.machine.Snapshot()
	if snapshot.Running() {
		view.render(view.machine.Pause())
		return
	}
	if snapshot.Value == 0 || snapshot.State == timer.StateIdle {
		view.applyInputs()
	}
	view.render(view.machine.Start())
}

// applyInputs configures the machine from the fields. Changes are ignored
// while a run is in progress.
func (view *CountdownView) applyInputs() {
	target := format.ParseHMS(view.hours.Text, view.minutes.Text, view.seconds.Text)
	snapshot, err := view.machine.Configure(target)
	switch {
	case err == nil:
		view.render(snapshot)
	case errors.Is(err, timer.ErrBusy), errors.Is(err, timer.ErrInvalidDuration):
		view.log.V(1).Info("countdown inputs ignored", "reason", err.Error())
	default:
		view.log.Error(err, "configure countdown")
	}
}

func (view *CountdownView) render(snapshot timer.Snapshot) {
	setDigits(view.digits, snapshot.Display())
	view.progress.SetValue(snapshot.Progress())
	setToggleFace(view.toggle, snapshot.Running())

	running := snapshot.Running()
	for _, entry := range []*widget.Entry{view.hours, view.minutes, view.seconds} {
		if running {
			entry.Disable()
		} else {
			entry.Enable()
		}
	}

	switch snapshot.State {
	case timer.StateCompleted:
		view.status.SetText(timer.CountdownMessage)
	case timer.StatePaused:
		view.status.SetText("Paused")
	default:
		view.status.SetText("")
	}
}

func (view *CountdownView) highlight(on bool) {
	fyne.Do(func() {
		if on {
			view.digits.Color = theme.Color(theme.ColorNamePrimary)
		} else {
			view.digits.Color = theme.Color(theme.ColorNameForeground)
		}
		view.digits.Refresh()
	})
}

func newFieldEntry(placeholder string) *widget.Entry {
	entry := widget.NewEntry()
	entry.SetPlaceHolder(placeholder)
	return entry
}

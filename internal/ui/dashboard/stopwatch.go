package dashboard

import (
	"context"
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/Padamgupta-23/YourTimer/internal/core/format"
	"github.com/Padamgupta-23/YourTimer/internal/core/timer"
)

// StopwatchView shows a count-up timer with laps.
type StopwatchView struct {
	machine *timer.Machine
	digits  *canvas.Text
	start   *widget.Button
	stop    *widget.Button
	lap     *widget.Button
	reset   *widget.Button
	lapList *widget.List
	laps    []time.Duration
	content fyne.CanvasObject
}

// NewStopwatchView builds the view around a stopwatch machine.
func NewStopwatchView(machine *timer.Machine) *StopwatchView {
	view := &StopwatchView{
		machine: machine,
		digits:  newDigits(56),
	}

	view.start = widget.NewButtonWithIcon("Start", theme.MediaPlayIcon(), func() {
		view.render(view.machine.Start())
	})
	view.stop = widget.NewButtonWithIcon("Stop", theme.MediaStopIcon(), func() {
		view.render(view.machine.Pause())
	})
	view.lap = widget.NewButtonWithIcon("Lap", theme.ContentAddIcon(), func() {
		view.render(view.machine.Lap())
	})
	view.reset = widget.NewButtonWithIcon("Reset", theme.MediaReplayIcon(), func() {
		view.render(view.machine.Reset())
	})

	view.lapList = widget.NewList(
		func() int { return len(view.laps) },
		func() fyne.CanvasObject {
			return container.NewBorder(nil, nil, widget.NewLabel("Lap 00"), nil, widget.NewLabel("00:00:00.00"))
		},
		func(id widget.ListItemID, item fyne.CanvasObject) {
			if id >= len(view.laps) {
				return
			}
			number, value := lapRow(id, view.laps[id])
			row := item.(*fyne.Container)
			row.Objects[1].(*widget.Label).SetText(number)
			row.Objects[0].(*widget.Label).SetText(value)
		},
	)

	controls := container.NewGridWithColumns(4, view.start, view.stop, view.lap, view.reset)
	header := container.NewVBox(
		widget.NewLabelWithStyle("Stopwatch", fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
		view.digits,
		controls,
		widget.NewSeparator(),
	)
	view.content = container.NewBorder(header, nil, nil, nil, view.lapList)

	view.render(machine.Snapshot())
	return view
}

// Content returns the view's root object.
func (view *StopwatchView) Content() fyne.CanvasObject {
	return view.content
}

// Follow redraws the view from machine events until ctx is done.
func (view *StopwatchView) Follow(ctx context.Context) {
	follow(ctx, view.machine.Subscribe(observerBuffer), func(event timer.Event) {
		view.render(event.Snapshot)
	})
}

func (view *StopwatchView) render(snapshot timer.Snapshot) {
	setDigits(view.digits, snapshot.Display())

	running := snapshot.Running()
	setEnabled(view.start, !running)
	setEnabled(view.stop, running)
	setEnabled(view.lap, running)

	if len(snapshot.Laps) != len(view.laps) {
		view.laps = snapshot.Laps
		view.lapList.Refresh()
	}
}

// lapRow formats the list row of the lap at index.
func lapRow(index int, lap time.Duration) (string, string) {
	return fmt.Sprintf("Lap %d", index+1), format.Value(lap, timer.StopwatchCadence)
}

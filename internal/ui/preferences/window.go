package preferences

import (
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"github.com/Padamgupta-23/YourTimer/internal/core/model"
)

// Window edits the Pomodoro phase lengths.
type Window struct {
	window    fyne.Window
	config    model.PomodoroConfig
	onSave    func(model.PomodoroConfig)
	work      *widget.Entry
	brk       *widget.Entry
	longBreak *widget.Entry
}

// New creates the durations window. onSave receives validated values.
func New(app fyne.App, config model.PomodoroConfig, onSave func(model.PomodoroConfig)) *Window {
	window := app.NewWindow("Timer Settings")

	work := widget.NewEntry()
	brk := widget.NewEntry()
	longBreak := widget.NewEntry()

	form := container.NewVBox(
		widget.NewLabelWithStyle("Pomodoro", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Focus session"), work, widget.NewLabel("min")),
		container.NewHBox(widget.NewLabel("Short break"), brk, widget.NewLabel("min")),
		container.NewHBox(widget.NewLabel("Long break"), longBreak, widget.NewLabel("min")),
	)

	saveButton := widget.NewButton("Save", nil)
	cancelButton := widget.NewButton("Cancel", nil)
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.Resize(fyne.NewSize(360, 220))
	window.SetCloseIntercept(window.Hide)

	prefs := &Window{
		window:    window,
		onSave:    onSave,
		work:      work,
		brk:       brk,
		longBreak: longBreak,
	}
	prefs.Update(config)

	saveButton.OnTapped = prefs.handleSave
	cancelButton.OnTapped = func() {
		prefs.Update(prefs.config)
		window.Hide()
	}

	return prefs
}

// Show displays the window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// Update replaces the field values.
func (prefs *Window) Update(config model.PomodoroConfig) {
	prefs.config = config
	prefs.work.SetText(minutesField(config.Work))
	prefs.brk.SetText(minutesField(config.ShortBreak))
	prefs.longBreak.SetText(minutesField(config.LongBreak))
}

func (prefs *Window) handleSave() {
	config, err := ParseDurations(prefs.config, prefs.work.Text, prefs.brk.Text, prefs.longBreak.Text)
	if err != nil {
		dialog.ShowError(err, prefs.window)
		return
	}

	prefs.config = config
	if prefs.onSave != nil {
		prefs.onSave(config)
	}
	prefs.window.Hide()
}

func minutesField(duration time.Duration) string {
	return strconv.Itoa(int(duration / time.Minute))
}

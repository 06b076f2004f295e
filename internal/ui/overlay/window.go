// Package overlay shows the Pomodoro timer alone in a fullscreen focus
// window.
package overlay

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/Padamgupta-23/YourTimer/internal/core/pomodoro"
)

// Callbacks defines focus window action handlers.
type Callbacks struct {
	OnToggle func()
	OnReset  func()
	OnExit   func()
}

// Window manages the focus window.
type Window struct {
	window     fyne.Window
	callbacks  Callbacks
	background *canvas.Rectangle
	label      *canvas.Text
	digits     *canvas.Text
	quote      *canvas.Text
	toggle     *widget.Button
	reset      *widget.Button
	exit       *widget.Button
	visible    bool
}

const (
	digitsHeightFraction = float32(0.22)
	labelHeightFraction  = float32(0.05)
	minDigitsSize        = float32(48)
	minLabelSize         = float32(18)
)

type splashWindowDriver interface {
	CreateSplashWindow() fyne.Window
}

// New creates the hidden focus window.
func New(app fyne.App, callbacks Callbacks) *Window {
	window := app.NewWindow("YourTimer Focus")
	if driver, ok := app.Driver().(splashWindowDriver); ok {
		// Splash window is undecorated (no native frame/buttons).
		window = driver.CreateSplashWindow()
	}
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}
	window.SetPadded(false)

	background := canvas.NewRectangle(theme.Color(theme.ColorNameBackground))

	label := canvas.NewText("", theme.Color(theme.ColorNameForeground))
	label.Alignment = fyne.TextAlignCenter
	label.TextStyle = fyne.TextStyle{Bold: true}
	label.TextSize = minLabelSize

	digits := canvas.NewText("00:00:00", theme.Color(theme.ColorNamePrimary))
	digits.Alignment = fyne.TextAlignCenter
	digits.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	digits.TextSize = minDigitsSize

	quote := canvas.NewText("", theme.Color(theme.ColorNameForeground))
	quote.Alignment = fyne.TextAlignCenter
	quote.TextStyle = fyne.TextStyle{Italic: true}

	focus := &Window{
		window:     window,
		callbacks:  callbacks,
		background: background,
		label:      label,
		digits:     digits,
		quote:      quote,
	}

	focus.toggle = widget.NewButtonWithIcon("Start", theme.MediaPlayIcon(), func() {
		if focus.callbacks.OnToggle != nil {
			focus.callbacks.OnToggle()
		}
	})
	focus.reset = widget.NewButtonWithIcon("Reset", theme.MediaReplayIcon(), func() {
		if focus.callbacks.OnReset != nil {
			focus.callbacks.OnReset()
		}
	})
	focus.exit = widget.NewButtonWithIcon("Exit", theme.ViewRestoreIcon(), focus.Hide)

	buttons := container.NewHBox(focus.toggle, focus.reset, focus.exit)
	content := container.New(&focusLayout{}, label, digits, container.NewCenter(buttons), quote)
	window.SetContent(container.NewStack(background, content))

	window.Canvas().SetOnTypedKey(focus.handleKey)
	window.SetCloseIntercept(focus.Hide)

	return focus
}

// Show enters fullscreen focus mode.
func (focus *Window) Show() {
	focus.background.FillColor = theme.Color(theme.ColorNameBackground)
	focus.background.Refresh()
	focus.window.SetFullScreen(true)
	focus.window.Show()
	focus.window.RequestFocus()
	focus.visible = true
}

// Hide leaves focus mode.
func (focus *Window) Hide() {
	if !focus.visible {
		return
	}
	focus.visible = false
	focus.window.SetFullScreen(false)
	focus.window.Hide()
	if focus.callbacks.OnExit != nil {
		focus.callbacks.OnExit()
	}
}

// Toggle shows a hidden window and hides a visible one.
func (focus *Window) Toggle() {
	if focus.visible {
		focus.Hide()
		return
	}
	focus.Show()
}

// Visible reports whether focus mode is active.
func (focus *Window) Visible() bool {
	return focus.visible
}

// Render updates the label, digits and toggle face.
func (focus *Window) Render(status pomodoro.Status) {
	if focus.label.Text != status.Label {
		focus.label.Text = status.Label
		focus.label.Refresh()
	}
	if display := status.Timer.Display(); focus.digits.Text != display {
		focus.digits.Text = display
		focus.digits.Refresh()
	}

	if status.Timer.Running() {
		focus.toggle.SetText("Pause")
		focus.toggle.SetIcon(theme.MediaPauseIcon())
	} else {
		focus.toggle.SetText("Start")
		focus.toggle.SetIcon(theme.MediaPlayIcon())
	}
}

// SetQuote updates the quote line.
func (focus *Window) SetQuote(text string) {
	if focus.quote.Text == text {
		return
	}
	focus.quote.Text = text
	focus.quote.Refresh()
}

func (focus *Window) handleKey(event *fyne.KeyEvent) {
	switch event.Name {
	case fyne.KeyEscape:
		focus.Hide()
	case fyne.KeySpace:
		focus.toggle.OnTapped()
	}
}

// focusLayout stacks label, digits, buttons and quote around the vertical
// centre, scaling the text with the window height.
type focusLayout struct{}

func (layout *focusLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	if len(objects) < 4 {
		return
	}
	label := objects[0].(*canvas.Text)
	digits := objects[1].(*canvas.Text)
	buttons := objects[2]
	quote := objects[3]

	digits.TextSize = scaledSize(size.Height, digitsHeightFraction, minDigitsSize)
	label.TextSize = scaledSize(size.Height, labelHeightFraction, minLabelSize)

	labelSize := label.MinSize()
	digitsSize := digits.MinSize()
	buttonsSize := buttons.MinSize()
	quoteSize := quote.MinSize()

	gap := size.Height * 0.03
	total := labelSize.Height + digitsSize.Height + buttonsSize.Height + gap*2
	y := (size.Height - total) / 2
	if y < 0 {
		y = 0
	}

	label.Move(fyne.NewPos(0, y))
	label.Resize(fyne.NewSize(size.Width, labelSize.Height))
	y += labelSize.Height + gap

	digits.Move(fyne.NewPos(0, y))
	digits.Resize(fyne.NewSize(size.Width, digitsSize.Height))
	y += digitsSize.Height + gap

	buttons.Move(fyne.NewPos(0, y))
	buttons.Resize(fyne.NewSize(size.Width, buttonsSize.Height))

	quoteY := size.Height - quoteSize.Height - size.Height*0.05
	if quoteY < y+buttonsSize.Height {
		quoteY = y + buttonsSize.Height
	}
	quote.Move(fyne.NewPos(0, quoteY))
	quote.Resize(fyne.NewSize(size.Width, quoteSize.Height))
}

func (layout *focusLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	if len(objects) < 4 {
		return fyne.NewSize(0, 0)
	}
	width := float32(0)
	height := float32(40)
	for _, object := range objects {
		size := object.MinSize()
		if size.Width > width {
			width = size.Width
		}
		height += size.Height
	}
	return fyne.NewSize(width+20, height)
}

func scaledSize(height, fraction, minimum float32) float32 {
	size := height * fraction
	if size < minimum {
		return minimum
	}
	return size
}

package dashboard

import (
	"context"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// Views are the widget views shown in the sidebar, in order.
type Views struct {
	Pomodoro   *PomodoroView
	Stopwatch  *StopwatchView
	Countdown  *CountdownView
	WorldClock *WorldClockView
}

// Window is the main application window: a sidebar with one tab per
// widget and a toolbar.
type Window struct {
	window fyne.Window
	tabs   *container.AppTabs
	views  Views
}

// New creates the main window. onToggleTheme runs when the theme action is
// used. Closing the window hides it.
func New(app fyne.App, views Views, onToggleTheme func()) *Window {
	window := app.NewWindow("YourTimer")

	tabs := container.NewAppTabs(
		container.NewTabItemWithIcon("Pomodoro", theme.HistoryIcon(), container.NewPadded(views.Pomodoro.Content())),
		container.NewTabItemWithIcon("Stopwatch", theme.MediaRecordIcon(), container.NewPadded(views.Stopwatch.Content())),
		container.NewTabItemWithIcon("Countdown", theme.MediaFastForwardIcon(), container.NewPadded(views.Countdown.Content())),
		container.NewTabItemWithIcon("World Clock", theme.ComputerIcon(), container.NewPadded(views.WorldClock.Content())),
	)
	tabs.SetTabLocation(container.TabLocationLeading)

	dash := &Window{window: window, tabs: tabs, views: views}

	toolbar := widget.NewToolbar(
		widget.NewToolbarSpacer(),
		widget.NewToolbarAction(theme.ColorPaletteIcon(), func() {
			if onToggleTheme != nil {
				onToggleTheme()
			}
		}),
		widget.NewToolbarAction(theme.ViewFullScreenIcon(), func() {
			window.SetFullScreen(!window.FullScreen())
		}),
	)

	window.SetContent(container.NewBorder(toolbar, nil, nil, nil, tabs))
	window.Resize(fyne.NewSize(720, 480))
	window.SetCloseIntercept(window.Hide)
	return dash
}

// Follow starts every view's event loop.
func (dash *Window) Follow(ctx context.Context) {
	dash.views.Pomodoro.Follow(ctx)
	dash.views.Stopwatch.Follow(ctx)
	dash.views.Countdown.Follow(ctx)
	dash.views.WorldClock.Follow(ctx)
}

// Show displays and focuses the window.
func (dash *Window) Show() {
	dash.window.Show()
	dash.window.RequestFocus()
}

// Select switches to the tab at index.
func (dash *Window) Select(index int) {
	dash.tabs.SelectIndex(index)
}

// Selected returns the index of the visible tab.
func (dash *Window) Selected() int {
	return dash.tabs.SelectedIndex()
}

// Window returns the underlying fyne window.
func (dash *Window) Window() fyne.Window {
	return dash.window
}

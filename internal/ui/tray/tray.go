// Package tray keeps the Pomodoro controls reachable from the system tray.
package tray

import (
	"fmt"

	"fyne.io/fyne/v2"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow       func()
	OnToggle     func()
	OnReset      func()
	OnShortBreak func()
	OnSettings   func()
	OnQuit       func()
}

// MenuSetter is the part of desktop.App used by Manager.
type MenuSetter interface {
	SetSystemTrayMenu(*fyne.Menu)
}

// Manager handles system tray state.
type Manager struct {
	app       MenuSetter
	callbacks Callbacks
	label     string
	display   string
	running   bool
	inBreak   bool
	menu      *fyne.Menu
}

// New creates a tray manager with the provided callbacks.
func New(app MenuSetter, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		callbacks: callbacks,
		label:     "Focus Session #1",
		display:   "--:--:--",
	}
	manager.refreshMenu()
	return manager
}

// SetStatus updates the phase label and remaining time.
func (manager *Manager) SetStatus(label, display string) {
	if manager.label == label && manager.display == display {
		return
	}
	manager.label = label
	manager.display = display
	manager.refreshMenu()
}

// SetRunning switches the toggle item between Start and Pause.
func (manager *Manager) SetRunning(running bool) {
	if manager.running == running {
		return
	}
	manager.running = running
	manager.refreshMenu()
}

// SetInBreak switches the break item between Short Break and Pomodoro.
func (manager *Manager) SetInBreak(inBreak bool) {
	if manager.inBreak == inBreak {
		return
	}
	manager.inBreak = inBreak
	manager.refreshMenu()
}

// Menu returns the menu last handed to the tray.
func (manager *Manager) Menu() *fyne.Menu {
	return manager.menu
}

func (manager *Manager) refreshMenu() {
	status := fyne.NewMenuItem(fmt.Sprintf("%s  %s", manager.label, manager.display), nil)
	status.Disabled = true

	toggleLabel := "Start"
	if manager.running {
		toggleLabel = "Pause"
	}
	breakLabel := "Short Break"
	if manager.inBreak {
		breakLabel = "Pomodoro"
	}

	manager.menu = fyne.NewMenu("YourTimer",
		status,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Show YourTimer", call(manager.callbacks.OnShow)),
		fyne.NewMenuItem(toggleLabel, call(manager.callbacks.OnToggle)),
		fyne.NewMenuItem("Reset", call(manager.callbacks.OnReset)),
		fyne.NewMenuItem(breakLabel, call(manager.callbacks.OnShortBreak)),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Timer Settings", call(manager.callbacks.OnSettings)),
		fyne.NewMenuItem("Quit", call(manager.callbacks.OnQuit)),
	)
	if manager.app != nil {
		manager.app.SetSystemTrayMenu(manager.menu)
	}
}

func call(fn func()) func() {
	return func() {
		if fn != nil {
			fn()
		}
	}
}

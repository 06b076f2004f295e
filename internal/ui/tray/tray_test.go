package tray

import (
	"testing"

	"fyne.io/fyne/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingApp struct {
	menus []*fyne.Menu
}

func (app *recordingApp) SetSystemTrayMenu(menu *fyne.Menu) {
	app.menus = append(app.menus, menu)
}

func labels(menu *fyne.Menu) []string {
	var out []string
	for _, item := range menu.Items {
		if item.IsSeparator {
			continue
		}
		out = append(out, item.Label)
	}
	return out
}

func findItem(t *testing.T, menu *fyne.Menu, label string) *fyne.MenuItem {
	t.Helper()
	for _, item := range menu.Items {
		if item.Label == label {
			return item
		}
	}
	require.FailNow(t, "menu item not found", label)
	return nil
}

func TestInitialMenu(t *testing.T) {
	app := &recordingApp{}
	manager := New(app, Callbacks{})

	require.Len(t, app.menus, 1)
	assert.Equal(t, []string{
		"Focus Session #1  --:--:--",
		"Show YourTimer",
		"Start",
		"Reset",
		"Short Break",
		"Timer Settings",
		"Quit",
	}, labels(manager.Menu()))
	assert.True(t, manager.Menu().Items[0].Disabled)
}

func TestStateChangesRebuildMenu(t *testing.T) {
	app := &recordingApp{}
	manager := New(app, Callbacks{})

	manager.SetStatus("Break Time!", "00:05:00")
	manager.SetRunning(true)
	manager.SetInBreak(true)
	manager.SetRunning(true)

	assert.Len(t, app.menus, 4)
	got := labels(manager.Menu())
	assert.Equal(t, "Break Time!  00:05:00", got[0])
	assert.Contains(t, got, "Pause")
	assert.Contains(t, got, "Pomodoro")
}

func TestCallbacks(t *testing.T) {
	var calls []string
	manager := New(&recordingApp{}, Callbacks{
		OnToggle: func() { calls = append(calls, "toggle") },
		OnQuit:   func() { calls = append(calls, "quit") },
	})

	findItem(t, manager.Menu(), "Start").Action()
	findItem(t, manager.Menu(), "Reset").Action()
	findItem(t, manager.Menu(), "Quit").Action()

	assert.Equal(t, []string{"toggle", "quit"}, calls)
}

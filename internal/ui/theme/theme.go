// Package theme provides the light and dark application themes and
// persists the user's choice.
package theme

import (
	"image/color"
	"sync"

	"fyne.io/fyne/v2"
	fynetheme "fyne.io/fyne/v2/theme"
	"github.com/go-logr/logr"

	"github.com/Padamgupta-23/YourTimer/internal/storage"
	"github.com/Padamgupta-23/YourTimer/internal/ui/preferences"
)

var accent = color.NRGBA{R: 0xE8, G: 0x5D, B: 0x4A, A: 0xFF}

type fixedVariant struct {
	base    fyne.Theme
	variant fyne.ThemeVariant
}

// Build returns a fyne theme locked to the light or dark variant.
func Build(choice preferences.Theme) fyne.Theme {
	variant := fynetheme.VariantLight
	if choice == preferences.ThemeDark {
		variant = fynetheme.VariantDark
	}
	return &fixedVariant{base: fynetheme.DefaultTheme(), variant: variant}
}

func (t *fixedVariant) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	switch name {
	case fynetheme.ColorNamePrimary, fynetheme.ColorNameFocus:
		return accent
	}
	return t.base.Color(name, t.variant)
}

func (t *fixedVariant) Font(style fyne.TextStyle) fyne.Resource {
	return t.base.Font(style)
}

func (t *fixedVariant) Icon(name fyne.ThemeIconName) fyne.Resource {
	return t.base.Icon(name)
}

func (t *fixedVariant) Size(name fyne.ThemeSizeName) float32 {
	return t.base.Size(name)
}

// Setter is the part of fyne.Settings used by Manager.
type Setter interface {
	SetTheme(fyne.Theme)
}

// Manager applies and persists the theme choice.
type Manager struct {
	mu      sync.Mutex
	setter  Setter
	store   storage.Store
	current preferences.Theme
	log     logr.Logger
}

// NewManager applies initial immediately.
func NewManager(setter Setter, store storage.Store, initial preferences.Theme, logger logr.Logger) *Manager {
	if logger.GetSink() == nil {
		logger = logr.Discard()
	}
	manager := &Manager{setter: setter, store: store, current: initial, log: logger.WithName("theme")}
	setter.SetTheme(Build(initial))
	return manager
}

// Current returns the applied choice.
func (manager *Manager) Current() preferences.Theme {
	manager.mu.Lock()
	defer manager.mu.Unlock()
	return manager.current
}

// Toggle switches between light and dark and saves the result.
func (manager *Manager) Toggle() preferences.Theme {
	manager.mu.Lock()
	next := manager.current.Toggle()
	manager.current = next
	manager.mu.Unlock()

	manager.setter.SetTheme(Build(next))
	if err := manager.store.Set(preferences.KeyTheme, string(next)); err != nil {
		manager.log.V(1).Info("theme not saved", "error", err.Error())
	}
	return next
}

package preferences

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Padamgupta-23/YourTimer/internal/core/model"
	"github.com/Padamgupta-23/YourTimer/internal/storage"
)

// Store keys.
const (
	KeyWorkMinutes      = "pomodoro.work_minutes"
	KeyBreakMinutes     = "pomodoro.break_minutes"
	KeyLongBreakMinutes = "pomodoro.long_break_minutes"
	KeyClockFormat      = "clock.format"
	KeyClockZone        = "clock.zone"
	KeyTheme            = "theme"
)

// Theme is the persisted colour variant.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Toggle returns the other variant.
func (theme Theme) Toggle() Theme {
	if theme == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// Settings defines editable user preferences.
type Settings struct {
	Pomodoro model.PomodoroConfig
	Clock    model.ClockConfig
	Theme    Theme
}

// DefaultSettings returns default settings for YourTimer.
func DefaultSettings() Settings {
	return Settings{
		Pomodoro: model.DefaultPomodoroConfig(),
		Clock:    model.DefaultClockConfig(),
		Theme:    ThemeLight,
	}
}

// Load reads settings from store. Missing or malformed values keep their
// defaults.
func Load(store storage.Store) Settings {
	settings := DefaultSettings()

	if minutes, ok := storedMinutes(store, KeyWorkMinutes); ok {
		settings.Pomodoro.Work = minutes
	}
	if minutes, ok := storedMinutes(store, KeyBreakMinutes); ok {
		settings.Pomodoro.ShortBreak = minutes
	}
	if minutes, ok := storedMinutes(store, KeyLongBreakMinutes); ok {
		settings.Pomodoro.LongBreak = minutes
	}

	if value, ok := store.Get(KeyClockFormat); ok {
		settings.Clock.Format24 = value == "24"
	}
	if value, ok := store.Get(KeyClockZone); ok && value != "" {
		settings.Clock.Zone = value
	}
	if value, ok := store.Get(KeyTheme); ok && Theme(value) == ThemeDark {
		settings.Theme = ThemeDark
	}

	return settings
}

// Save writes every setting to store.
func (settings Settings) Save(store storage.Store) error {
	format := "12"
	if settings.Clock.Format24 {
		format = "24"
	}
	return errors.Join(
		SaveDurations(store, settings.Pomodoro),
		set(store, KeyClockFormat, format),
		set(store, KeyClockZone, settings.Clock.Zone),
		set(store, KeyTheme, string(settings.Theme)),
	)
}

// SaveDurations writes only the Pomodoro phase lengths.
func SaveDurations(store storage.Store, config model.PomodoroConfig) error {
	return errors.Join(
		set(store, KeyWorkMinutes, minutesText(config.Work)),
		set(store, KeyBreakMinutes, minutesText(config.ShortBreak)),
		set(store, KeyLongBreakMinutes, minutesText(config.LongBreak)),
	)
}

func set(store storage.Store, key, value string) error {
	if err := store.Set(key, value); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// ParseDurations converts the minute fields of the durations form.
func ParseDurations(base model.PomodoroConfig, work, shortBreak, longBreak string) (model.PomodoroConfig, error) {
	config := base
	fields := []struct {
		name   string
		value  string
		target *time.Duration
	}{
		{"work", work, &config.Work},
		{"short break", shortBreak, &config.ShortBreak},
		{"long break", longBreak, &config.LongBreak},
	}

	for _, field := range fields {
		minutes, err := strconv.Atoi(strings.TrimSpace(field.value))
		if err != nil || minutes <= 0 {
			return base, fmt.Errorf("%w: %s must be a positive number of minutes", model.ErrInvalidConfig, field.name)
		}
		*field.target = time.Duration(minutes) * time.Minute
	}

	if err := config.Validate(); err != nil {
		return base, err
	}
	return config, nil
}

func storedMinutes(store storage.Store, key string) (time.Duration, bool) {
	value, ok := store.Get(key)
	if !ok {
		return 0, false
	}
	minutes, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || minutes <= 0 {
		return 0, false
	}
	return time.Duration(minutes) * time.Minute, true
}

func minutesText(duration time.Duration) string {
	return strconv.Itoa(int(duration / time.Minute))
}

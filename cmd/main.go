package main

import (
	"context"
	"fmt"
	"log"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/Padamgupta-23/YourTimer/internal/config"
	"github.com/Padamgupta-23/YourTimer/internal/core/clock"
	"github.com/Padamgupta-23/YourTimer/internal/core/model"
	"github.com/Padamgupta-23/YourTimer/internal/core/pomodoro"
	"github.com/Padamgupta-23/YourTimer/internal/core/timer"
	"github.com/Padamgupta-23/YourTimer/internal/core/worldclock"
	"github.com/Padamgupta-23/YourTimer/internal/metrics"
	"github.com/Padamgupta-23/YourTimer/internal/notify"
	"github.com/Padamgupta-23/YourTimer/internal/platform"
	"github.com/Padamgupta-23/YourTimer/internal/storage"
	"github.com/Padamgupta-23/YourTimer/internal/ui/animation"
	"github.com/Padamgupta-23/YourTimer/internal/ui/dashboard"
	"github.com/Padamgupta-23/YourTimer/internal/ui/overlay"
	"github.com/Padamgupta-23/YourTimer/internal/ui/preferences"
	apptheme "github.com/Padamgupta-23/YourTimer/internal/ui/theme"
	"github.com/Padamgupta-23/YourTimer/internal/ui/tray"
	"github.com/Padamgupta-23/YourTimer/resources"
)

const (
	appName = "YourTimer"
	appID   = "com.yourtimer.app"
)

func main() {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Printf("config: %v", err)
		return
	}
	logger := newLogger(cfg.LogVerbosity)

	if cfg.SingleInstance {
		instance, err := platform.Acquire(appName)
		if err != nil {
			logger.Info("another instance is running", "reason", err.Error())
			return
		}
		defer func() {
			_ = instance.Release()
		}()
		run(cfg, logger, instance)
		return
	}
	run(cfg, logger, nil)
}

func run(cfg *config.Config, logger logr.Logger, instance *platform.Instance) {
	store := openStore(cfg, logger)
	settings := preferences.Load(store)

	fyneApp := app.NewWithID(appID)
	fyneApp.SetIcon(resources.MustIcon(resources.IconActive))
	themes := apptheme.NewManager(fyneApp.Settings(), store, settings.Theme, logger)

	var notifiers []notify.Notifier
	notifiers = append(notifiers, notify.NewDesktop(fyneApp))
	if cfg.Sound {
		notifiers = append(notifiers, notify.NewSound(logger))
	}
	notifier := notify.Multi(notifiers...)
	source := clock.Real()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cycle, err := newCycle(settings.Pomodoro, pomodoro.Options{
		Clock:    source,
		Notifier: notifier,
		Logger:   logger,
	}, logger)
	if err != nil {
		logger.Error(err, "pomodoro unavailable")
		return
	}
	stopwatch := timer.NewStopwatch(timer.Config{Clock: source, Logger: logger})
	countdown := timer.NewCountdown(timer.Config{Clock: source, Notifier: notifier, Logger: logger})
	world := worldclock.New(settings.Clock, worldclock.Options{Clock: source, Logger: logger})
	defer func() {
		cycle.Close()
		stopwatch.Close()
		countdown.Close()
		world.Close()
	}()

	startMetrics(ctx, cfg, logger,
		func() <-chan timer.Event { return cycle.Subscribe(64) },
		func() <-chan timer.Event { return stopwatch.Subscribe(256) },
		func() <-chan timer.Event { return countdown.Subscribe(64) },
	)

	focus := overlay.New(fyneApp, overlay.Callbacks{
		OnToggle: func() { cycle.Toggle() },
		OnReset:  func() { cycle.Reset() },
	})

	settingsWindow := preferences.New(fyneApp, cycle.Config(), func(updated model.PomodoroConfig) {
		if err := cycle.SetDurations(updated); err != nil {
			logger.Error(err, "apply durations")
			return
		}
		if err := preferences.SaveDurations(store, updated); err != nil {
			logger.V(1).Info("durations not saved", "error", err.Error())
		}
	})
	showSettings := func() {
		settingsWindow.Update(cycle.Config())
		settingsWindow.Show()
	}

	desktopApp, hasTray := fyneApp.(desktop.App)
	activeIcon := resources.MustIcon(resources.IconActive)
	pausedIcon := resources.MustIcon(resources.IconPaused)

	var trayManager *tray.Manager
	var dash *dashboard.Window
	running := false

	pomodoroView := dashboard.NewPomodoroView(cycle, source,
		animation.New(animation.DefaultConfig()),
		animation.New(animation.DefaultConfig()),
		dashboard.PomodoroActions{
			OnFullscreen: focus.Toggle,
			OnSettings:   showSettings,
			OnQuote:      focus.SetQuote,
			OnStatus: func(status pomodoro.Status) {
				focus.Render(status)
				if trayManager == nil {
					return
				}
				trayManager.SetStatus(status.Label, status.Timer.Display())
				trayManager.SetRunning(status.Timer.Running())
				trayManager.SetInBreak(status.Phase != pomodoro.PhaseWork)
				if status.Timer.Running() != running {
					running = status.Timer.Running()
					if running {
						desktopApp.SetSystemTrayIcon(activeIcon)
					} else {
						desktopApp.SetSystemTrayIcon(pausedIcon)
					}
				}
			},
		})

	dash = dashboard.New(fyneApp, dashboard.Views{
		Pomodoro:   pomodoroView,
		Stopwatch:  dashboard.NewStopwatchView(stopwatch),
		Countdown:  dashboard.NewCountdownView(countdown, animation.New(animation.DefaultConfig()), logger),
		WorldClock: dashboard.NewWorldClockView(world, store, logger),
	}, func() {
		theme := themes.Toggle()
		logger.V(1).Info("theme changed", "theme", theme)
	})

	quit := func() {
		cancel()
		fyneApp.Quit()
	}

	if hasTray {
		trayManager = tray.New(desktopApp, tray.Callbacks{
			OnShow: func() {
				dash.Select(0)
				dash.Show()
			},
			OnToggle:     pomodoroView.Toggle,
			OnReset:      func() { cycle.Reset() },
			OnShortBreak: func() { cycle.ToggleShortBreak() },
			OnSettings:   showSettings,
			OnQuit:       quit,
		})
		desktopApp.SetSystemTrayIcon(pausedIcon)
		desktopApp.SetSystemTrayWindow(dash.Window())
	} else {
		logger.Info("system tray unsupported on this platform")
		dash.Window().SetCloseIntercept(quit)
	}

	if instance != nil {
		instance.OnActivate(func() {
			fyne.Do(dash.Show)
		})
	}

	dash.Follow(ctx)
	dash.Show()
	fyneApp.Run()
}

func newLogger(verbosity int) logr.Logger {
	return funcr.New(func(prefix, args string) {
		if prefix != "" {
			log.Printf("%s: %s", prefix, args)
			return
		}
		log.Println(args)
	}, funcr.Options{Verbosity: verbosity}).WithName(appName)
}

func openStore(cfg *config.Config, logger logr.Logger) storage.Store {
	dir, err := platform.ConfigDir(appName, cfg.ConfigDir)
	if err != nil {
		logger.Error(err, "settings will not persist")
		return storage.NewMemory()
	}

	store, err := storage.OpenYAML(filepath.Join(dir, storage.SettingsFileName))
	if err != nil {
		logger.V(1).Info("settings file ignored", "path", store.Path(), "error", err.Error())
	}
	return store
}

// newCycle builds the Pomodoro cycle from the saved durations, falling back
// to the defaults when they are rejected.
func newCycle(saved model.PomodoroConfig, options pomodoro.Options, logger logr.Logger) (*pomodoro.Cycle, error) {
	cycle, err := pomodoro.New(saved, options)
	if err == nil {
		return cycle, nil
	}
	logger.Error(err, "saved durations rejected, using defaults")

	cycle, err = pomodoro.New(model.DefaultPomodoroConfig(), options)
	if err != nil {
		return nil, fmt.Errorf("default durations: %w", err)
	}
	return cycle, nil
}

// eventSource subscribes to one timer when metrics are exported.
type eventSource func() <-chan timer.Event

// startMetrics exports timer events when a metrics address is configured.
// Without one nothing subscribes.
func startMetrics(ctx context.Context, cfg *config.Config, logger logr.Logger, sources ...eventSource) bool {
	if !cfg.MetricsEnabled() {
		return false
	}

	registry := prometheus.NewRegistry()
	exporter, err := metrics.NewExporter("", registry)
	if err != nil {
		logger.Error(err, "metrics disabled")
		return false
	}
	for _, source := range sources {
		go exporter.Watch(ctx, source())
	}

	go func() {
		if err := metrics.Serve(ctx, cfg.MetricsAddr, registry, logger); err != nil {
			logger.Error(err, "metrics endpoint stopped")
		}
	}()
	return true
}

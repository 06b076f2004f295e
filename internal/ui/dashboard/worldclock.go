package dashboard

import (
	"context"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/go-logr/logr"

	"github.com/Padamgupta-23/YourTimer/internal/core/timer"
	"github.com/Padamgupta-23/YourTimer/internal/core/worldclock"
	"github.com/Padamgupta-23/YourTimer/internal/storage"
	"github.com/Padamgupta-23/YourTimer/internal/ui/preferences"
)

const (
	format12Label = "12-hour"
	format24Label = "24-hour"
)

// WorldClockView shows the current time of a selectable zone.
type WorldClockView struct {
	clock   *worldclock.Clock
	store   storage.Store
	log     logr.Logger
	time    *canvas.Text
	date    *widget.Label
	zone    *widget.Select
	format  *widget.RadioGroup
	content fyne.CanvasObject
}

// NewWorldClockView builds the view. Zone and format changes are saved to
// store.
func NewWorldClockView(world *worldclock.Clock, store storage.Store, logger logr.Logger) *WorldClockView {
	view := &WorldClockView{
		clock: world,
		store: store,
		log:   logger,
		time:  newDigits(52),
		date:  widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{}),
	}

	config := world.Config()
	view.zone = widget.NewSelect(zoneOptions(config.Zone), view.handleZone)
	view.zone.SetSelected(config.Zone)

	view.format = widget.NewRadioGroup([]string{format12Label, format24Label}, view.handleFormat)
	view.format.Horizontal = true
	view.format.Required = true
	if config.Format24 {
		view.format.SetSelected(format24Label)
	} else {
		view.format.SetSelected(format12Label)
	}

	view.content = container.NewVBox(
		widget.NewLabelWithStyle("World Clock", fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
		view.time,
		view.date,
		container.NewCenter(view.format),
		view.zone,
	)

	view.render()
	return view
}

// Content returns the view's root object.
func (view *WorldClockView) Content() fyne.CanvasObject {
	return view.content
}

// Follow redraws the clock on every refresh tick until ctx is done.
func (view *WorldClockView) Follow(ctx context.Context) {
	follow(ctx, view.clock.Subscribe(4), func(timer.Event) {
		view.render()
	})
}

func (view *WorldClockView) handleZone(zone string) {
	if zone == view.clock.Config().Zone {
		return
	}
	if err := view.clock.SetZone(zone); err != nil {
		view.log.Error(err, "select zone")
		view.zone.SetSelected(view.clock.Config().Zone)
		return
	}
	view.save(preferences.KeyClockZone, zone)
	view.render()
}

func (view *WorldClockView) handleFormat(selected string) {
	format24 := selected == format24Label
	if format24 == view.clock.Config().Format24 {
		return
	}
	view.clock.SetFormat24(format24)
	value := "12"
	if format24 {
		value = "24"
	}
	view.save(preferences.KeyClockFormat, value)
	view.render()
}

func (view *WorldClockView) save(key, value string) {
	if err := view.store.Set(key, value); err != nil {
		view.log.V(1).Info("clock setting not saved", "key", key, "error", err.Error())
	}
}

func (view *WorldClockView) render() {
	reading := view.clock.Reading()
	setDigits(view.time, reading.Time)
	view.date.SetText(reading.Date)
}

// zoneOptions returns the selectable zones, including current when it is
// not one of them.
func zoneOptions(current string) []string {
	for _, zone := range worldclock.Zones {
		if zone == current {
			return worldclock.Zones
		}
	}
	return append([]string{current}, worldclock.Zones...)
}

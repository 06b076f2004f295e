// Package format renders timer values and wall-clock readings for display.
package format

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Granularity is the unit a count passed to Duration is expressed in.
type Granularity int

const (
	// GranularitySeconds renders HH:MM:SS.
	GranularitySeconds Granularity = iota
	// GranularityHundredths renders HH:MM:SS.ss.
	GranularityHundredths
)

// Hundredth is the stopwatch time unit.
const Hundredth = 10 * time.Millisecond

// Duration formats a non-negative count of units as zero-padded
// HH:MM:SS or HH:MM:SS.ss. Hours are not wrapped at 24. Negative counts
// render as zero.
func Duration(units int64, granularity Granularity) string {
	if units < 0 {
		units = 0
	}

	var fraction int64
	seconds := units
	if granularity == GranularityHundredths {
		seconds = units / 100
		fraction = units % 100
	}

	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	seconds = seconds % 60

	if granularity == GranularityHundredths {
		return fmt.Sprintf("%02d:%02d:%02d.%02d", hours, minutes, seconds, fraction)
	}
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}

// Value formats a duration at the given resolution. A resolution below one
// second renders hundredths, anything else renders whole seconds. The value
// is floored to the unit, never rounded up.
func Value(value, resolution time.Duration) string {
	if resolution < time.Second {
		return Duration(int64(value/Hundredth), GranularityHundredths)
	}
	return Duration(int64(value/time.Second), GranularitySeconds)
}

// Clock renders a wall-clock time, either 24-hour or 12-hour with an
// AM/PM suffix.
func Clock(t time.Time, format24 bool) string {
	if format24 {
		return fmt.Sprintf("%02d:%02d:%02d", t.Hour(), t.Minute(), t.Second())
	}

	suffix := "AM"
	if t.Hour() >= 12 {
		suffix = "PM"
	}
	hour := t.Hour() % 12
	if hour == 0 {
		hour = 12
	}
	return fmt.Sprintf("%02d:%02d:%02d %s", hour, t.Minute(), t.Second(), suffix)
}

// Date renders the long date with the zone abbreviation, for example
// "Monday, January 2, 2006 IST".
func Date(t time.Time) string {
	return t.Format("Monday, January 2, 2006 MST")
}

// ShortDate renders the compact date shown above the Pomodoro timer.
func ShortDate(t time.Time) string {
	return t.Format("Mon, Jan 2, 2006")
}

// ParseHMS converts hour, minute and second input fields into a duration.
// Fields that are empty or not integers count as zero, as do negatives.
func ParseHMS(hours, minutes, seconds string) time.Duration {
	return time.Duration(parseField(hours))*time.Hour +
		time.Duration(parseField(minutes))*time.Minute +
		time.Duration(parseField(seconds))*time.Second
}

func parseField(value string) int {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || parsed < 0 {
		return 0
	}
	return parsed
}

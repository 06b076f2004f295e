package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDuration(t *testing.T) {
	tests := []struct {
		name        string
		units       int64
		granularity Granularity
		want        string
	}{
		{name: "zero", units: 0, granularity: GranularitySeconds, want: "00:00:00"},
		{name: "hour minute second", units: 3661, granularity: GranularitySeconds, want: "01:01:01"},
		{name: "pomodoro", units: 1500, granularity: GranularitySeconds, want: "00:25:00"},
		{name: "no day rollover", units: 100 * 3600, granularity: GranularitySeconds, want: "100:00:00"},
		{name: "hundredths", units: 9005, granularity: GranularityHundredths, want: "00:01:30.05"},
		{name: "hundredths zero", units: 0, granularity: GranularityHundredths, want: "00:00:00.00"},
		{name: "negative clamps", units: -5, granularity: GranularitySeconds, want: "00:00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Duration(tt.units, tt.granularity))
		})
	}
}

func TestValueFloors(t *testing.T) {
	assert.Equal(t, "00:00:01", Value(1999*time.Millisecond, time.Second))
	assert.Equal(t, "00:00:12.34", Value(12349*time.Millisecond, Hundredth))
	assert.Equal(t, "00:00:45.67", Value(45670*time.Millisecond, Hundredth))
}

func TestClock(t *testing.T) {
	afternoon := time.Date(2024, 3, 4, 15, 4, 5, 0, time.UTC)
	midnight := time.Date(2024, 3, 4, 0, 7, 0, 0, time.UTC)
	noon := time.Date(2024, 3, 4, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "15:04:05", Clock(afternoon, true))
	assert.Equal(t, "03:04:05 PM", Clock(afternoon, false))
	assert.Equal(t, "12:07:00 AM", Clock(midnight, false))
	assert.Equal(t, "12:00:00 PM", Clock(noon, false))
}

func TestDate(t *testing.T) {
	day := time.Date(2024, 3, 4, 15, 4, 5, 0, time.UTC)
	assert.Equal(t, "Monday, March 4, 2024 UTC", Date(day))
	assert.Equal(t, "Mon, Mar 4, 2024", ShortDate(day))
}

func TestParseHMS(t *testing.T) {
	assert.Equal(t, time.Hour+2*time.Minute+3*time.Second, ParseHMS("1", "2", "3"))
	assert.Equal(t, 90*time.Second, ParseHMS("", "1", "30"))
	assert.Equal(t, 5*time.Minute, ParseHMS("abc", " 5 ", "-4"))
	assert.Equal(t, time.Duration(0), ParseHMS("", "", ""))
}

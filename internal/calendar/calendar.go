// Package calendar provides calendar-day arithmetic shared by the agenda
// projections: day identity independent of time-of-day, week anchoring with
// a configurable first weekday, and week navigation.
package calendar

import (
	"fmt"
	"strings"
	"time"
)

const dayLayout = "2006-01-02"

// Day identifies a calendar day without a time-of-day component.
type Day struct {
	Year  int
	Month time.Month
	Day   int
}

// DayOf returns the calendar day t falls on when observed in loc.
// A nil loc uses the location already attached to t.
func DayOf(t time.Time, loc *time.Location) Day {
	if loc != nil {
		t = t.In(loc)
	}
	y, m, d := t.Date()
	return Day{Year: y, Month: m, Day: d}
}

// ParseDay parses a YYYY-MM-DD string.
func ParseDay(value string) (Day, error) {
	ts, err := time.Parse(dayLayout, strings.TrimSpace(value))
	if err != nil {
		return Day{}, fmt.Errorf("calendar: invalid day %q: %w", value, err)
	}
	return DayOf(ts, time.UTC), nil
}

// Start returns midnight of the day in loc.
func (d Day) Start(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// AddDays returns the day n calendar days away from d.
func (d Day) AddDays(n int) Day {
	return DayOf(time.Date(d.Year, d.Month, d.Day+n, 12, 0, 0, 0, time.UTC), time.UTC)
}

// Weekday reports the weekday of d.
func (d Day) Weekday() time.Weekday {
	return time.Date(d.Year, d.Month, d.Day, 12, 0, 0, 0, time.UTC).Weekday()
}

// String formats d as YYYY-MM-DD.
func (d Day) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// MarshalText implements encoding.TextMarshaler so days can key JSON objects.
func (d Day) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

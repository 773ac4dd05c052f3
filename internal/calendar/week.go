package calendar

import (
	"fmt"
	"strings"
	"time"
)

// DaysPerWeek is the number of buckets in a week projection.
const DaysPerWeek = 7

// Settings carries the read-only view parameters owned by the renderer.
type Settings struct {
	// WeekStart is the first weekday of a week row. Monday by default.
	WeekStart time.Weekday
	// Location decides which calendar day an instant belongs to.
	// A nil Location means time.Local.
	Location *time.Location
}

// DefaultSettings returns Monday-start weeks observed in the local zone.
func DefaultSettings() Settings {
	return Settings{WeekStart: time.Monday, Location: time.Local}
}

// Loc returns the configured location, falling back to time.Local.
func (s Settings) Loc() *time.Location {
	if s.Location == nil {
		return time.Local
	}
	return s.Location
}

// StartOfWeek returns the first day of the week containing t.
func StartOfWeek(t time.Time, weekStart time.Weekday, loc *time.Location) Day {
	day := DayOf(t, loc)
	// Go numbers Sunday as 0; shift so weekStart lands on offset 0.
	offset := (int(day.Weekday()) - int(weekStart) + DaysPerWeek) % DaysPerWeek
	return day.AddDays(-offset)
}

// WeekDays returns the seven consecutive days of the week containing
// reference, beginning at weekStart.
func WeekDays(reference time.Time, weekStart time.Weekday, loc *time.Location) []Day {
	start := StartOfWeek(reference, weekStart, loc)
	days := make([]Day, DaysPerWeek)
	for i := range days {
		days[i] = start.AddDays(i)
	}
	return days
}

// MonthDays returns every day of the month containing reference.
func MonthDays(reference time.Time, loc *time.Location) []Day {
	first := DayOf(reference, loc)
	first.Day = 1
	days := make([]Day, 0, 31)
	for day := first; day.Month == first.Month; day = day.AddDays(1) {
		days = append(days, day)
	}
	return days
}

// NextWeek moves t forward by seven calendar days.
func NextWeek(t time.Time) time.Time {
	return t.AddDate(0, 0, DaysPerWeek)
}

// PreviousWeek moves t back by seven calendar days.
func PreviousWeek(t time.Time) time.Time {
	return t.AddDate(0, 0, -DaysPerWeek)
}

// ParseWeekday accepts English weekday names ("monday", "Sun", ...).
func ParseWeekday(value string) (time.Weekday, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	for day := time.Sunday; day <= time.Saturday; day++ {
		name := strings.ToLower(day.String())
		if normalized == name || normalized == name[:3] {
			return day, nil
		}
	}
	return time.Sunday, fmt.Errorf("calendar: unknown weekday %q", value)
}

package application

import (
	"time"

	"github.com/example/agenda/internal/calendar"
)

// MarkersByDay groups events by the calendar day of their date in loc.
// Days without events have no entry.
func MarkersByDay(events []Event, loc *time.Location) map[calendar.Day][]DayMarker {
	markers := make(map[calendar.Day][]DayMarker)
	for _, event := range events {
		day := calendar.DayOf(event.Date, loc)
		markers[day] = append(markers[day], DayMarker{
			EventID: event.ID,
			Type:    event.Type,
			Title:   event.Title,
		})
	}
	return markers
}

// FilterByType keeps events whose type equals filter exactly. FilterAll
// returns the events unchanged.
func FilterByType(events []Event, filter string) []Event {
	if filter == FilterAll {
		return events
	}
	filtered := make([]Event, 0, len(events))
	for _, event := range events {
		if event.Type == filter {
			filtered = append(filtered, event)
		}
	}
	return filtered
}

// WeekBuckets returns seven day buckets starting at the week start that
// contains reference. Events keep their relative order inside a bucket.
func WeekBuckets(events []Event, reference time.Time, weekStart time.Weekday, loc *time.Location) []WeekBucket {
	days := calendar.WeekDays(reference, weekStart, loc)
	buckets := make([]WeekBucket, len(days))
	index := make(map[calendar.Day]int, len(days))
	for i, day := range days {
		buckets[i] = WeekBucket{Day: day}
		index[day] = i
	}
	for _, event := range events {
		i, ok := index[calendar.DayOf(event.Date, loc)]
		if !ok {
			continue
		}
		buckets[i].Events = append(buckets[i].Events, event)
	}
	return buckets
}

// Package ics renders agenda events as an iCalendar feed.
//
// Recurrence tags become RRULE properties so calendar clients can display
// the repeat; occurrences are never expanded here.
package ics

import (
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/teambition/rrule-go"

	"github.com/example/agenda/internal/application"
)

// Defaults applied by Export when Options leaves a field empty.
const (
	DefaultProductID    = "-//agenda//agenda calendar//EN"
	DefaultCalendarName = "Agenda"
	DefaultDuration     = time.Hour
)

// Options tunes the rendered calendar.
type Options struct {
	ProductID    string
	CalendarName string
	// Duration is added to each event date to produce DTEND.
	Duration time.Duration
	// Now stamps DTSTAMP; time.Now when nil.
	Now func() time.Time
}

func (o Options) withDefaults() Options {
	if o.ProductID == "" {
		o.ProductID = DefaultProductID
	}
	if o.CalendarName == "" {
		o.CalendarName = DefaultCalendarName
	}
	if o.Duration <= 0 {
		o.Duration = DefaultDuration
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// Export serializes events into a VCALENDAR document, one VEVENT per event in
// the given order.
func Export(events []application.Event, opts Options) string {
	opts = opts.withDefaults()
	stamp := opts.Now().UTC()

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(opts.ProductID)
	cal.SetName(opts.CalendarName)

	for _, event := range events {
		vevent := cal.AddEvent(event.ID)
		vevent.SetDtStampTime(stamp)
		vevent.SetStartAt(event.Date)
		vevent.SetEndAt(event.Date.Add(opts.Duration))
		vevent.SetSummary(event.Title)
		if event.Description != "" {
			vevent.SetDescription(event.Description)
		}
		if event.Type != "" {
			vevent.SetProperty(ical.ComponentPropertyCategories, event.Type)
		}
		if rule, ok := RRule(event.Recurrence); ok {
			vevent.AddRrule(rule)
		}
		for _, note := range event.Notes {
			vevent.AddProperty(ical.ComponentPropertyComment, note)
		}
	}

	return cal.Serialize()
}

// RRule returns the RRULE value for a recurrence tag. It reports false for
// RecurrenceNone and unknown tags.
func RRule(recurrence application.Recurrence) (string, bool) {
	var freq rrule.Frequency
	switch recurrence {
	case application.RecurrenceDaily:
		freq = rrule.DAILY
	case application.RecurrenceWeekly:
		freq = rrule.WEEKLY
	case application.RecurrenceMonthly:
		freq = rrule.MONTHLY
	default:
		return "", false
	}
	option := rrule.ROption{Freq: freq, Interval: 1}
	return option.RRuleString(), true
}

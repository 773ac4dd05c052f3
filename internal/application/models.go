package application

import (
	"time"

	"github.com/example/agenda/internal/calendar"
)

// Recognized event types. The type set is open: any other non-empty value is
// stored as-is and rendered with the neutral color.
const (
	TypePersonal   = "personal"
	TypeWork       = "trabajo"
	TypeClass      = "clase"
	TypeExperiment = "experimento"
)

// FilterAll disables type filtering in list and calendar projections.
const FilterAll = "all"

// Recurrence is the repeat tag stored on an event. Occurrences are never
// materialized from it.
type Recurrence string

const (
	RecurrenceNone    Recurrence = "none"
	RecurrenceDaily   Recurrence = "daily"
	RecurrenceWeekly  Recurrence = "weekly"
	RecurrenceMonthly Recurrence = "monthly"
)

// Valid reports whether r is one of the supported tags.
func (r Recurrence) Valid() bool {
	switch r {
	case RecurrenceNone, RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly:
		return true
	}
	return false
}

// EventInput captures caller provided event fields.
type EventInput struct {
	Title       string
	Description string
	Date        time.Time
	Type        string
	Recurrence  Recurrence
}

// Event is a scheduled calendar item.
type Event struct {
	ID          string
	Title       string
	Description string
	Date        time.Time
	Type        string
	Recurrence  Recurrence
	// Notes mirrors, in insertion order, the content of every quick note
	// referencing this event. Nil when no note references it.
	Notes []string
}

// NoteInput captures caller provided quick note fields.
type NoteInput struct {
	Content string
	// EventID optionally links the note to an event. Empty means free-standing.
	EventID string
}

// QuickNote is an immutable short note, optionally linked to one event.
type QuickNote struct {
	ID        string
	Content   string
	CreatedAt time.Time
	EventID   string
}

// Linked reports whether the note references an event.
func (n QuickNote) Linked() bool {
	return n.EventID != ""
}

// DayMarker is the per-event indicator shown on a calendar day.
type DayMarker struct {
	EventID string
	Type    string
	Title   string
}

// WeekBucket groups the events falling on one day of a week projection.
type WeekBucket struct {
	Day    calendar.Day
	Events []Event
}

func cloneEvent(event Event) Event {
	if event.Notes != nil {
		event.Notes = append([]string(nil), event.Notes...)
	}
	return event
}

func cloneEvents(events []Event) []Event {
	if len(events) == 0 {
		return nil
	}
	out := make([]Event, len(events))
	for i, event := range events {
		out[i] = cloneEvent(event)
	}
	return out
}

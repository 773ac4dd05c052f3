package testfixtures

import (
	"time"

	"github.com/example/agenda/internal/application"
)

// EventOption configures a generated event input.
type EventOption func(*application.EventInput)

// NewEventInput returns a valid class event dated at ReferenceTime with
// optional overrides.
func NewEventInput(opts ...EventOption) application.EventInput {
	input := application.EventInput{
		Title:       "Chemistry 101",
		Description: "Weekly lecture",
		Date:        referenceTime,
		Type:        application.TypeClass,
		Recurrence:  application.RecurrenceNone,
	}
	for _, opt := range opts {
		opt(&input)
	}
	return input
}

// WithTitle overrides the event title.
func WithTitle(title string) EventOption {
	return func(in *application.EventInput) {
		in.Title = title
	}
}

// WithDescription overrides the event description.
func WithDescription(description string) EventOption {
	return func(in *application.EventInput) {
		in.Description = description
	}
}

// WithDate overrides the event date.
func WithDate(date time.Time) EventOption {
	return func(in *application.EventInput) {
		in.Date = date
	}
}

// WithType overrides the event type.
func WithType(eventType string) EventOption {
	return func(in *application.EventInput) {
		in.Type = eventType
	}
}

// WithRecurrence overrides the recurrence tag.
func WithRecurrence(recurrence application.Recurrence) EventOption {
	return func(in *application.EventInput) {
		in.Recurrence = recurrence
	}
}

// NewNoteInput returns a note input linked to eventID; an empty eventID
// yields a free-standing note.
func NewNoteInput(content, eventID string) application.NoteInput {
	return application.NoteInput{Content: content, EventID: eventID}
}

// UTC builds a UTC instant; a compact helper for table driven tests.
func UTC(year int, month time.Month, day, hour, minute int) time.Time {
	return time.Date(year, month, day, hour, minute, 0, 0, time.UTC)
}

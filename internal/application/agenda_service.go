package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/example/agenda/internal/calendar"
)

const agendaServiceName = "agenda"

// AgendaService is the session facade for events and quick notes. It owns
// both stores and routes every mutation through the note mirror. Operations
// are serialized so concurrent callers observe them in arrival order.
type AgendaService struct {
	mu          sync.RWMutex
	events      *EventStore
	notes       *NoteStore
	mirror      noteMirror
	idGenerator func() string
	now         func() time.Time
	settings    calendar.Settings
	logger      *slog.Logger
}

// NewAgendaService wires a fresh, empty session.
func NewAgendaService(idGenerator func() string, now func() time.Time, settings calendar.Settings) *AgendaService {
	return NewAgendaServiceWithLogger(idGenerator, now, settings, nil)
}

// NewAgendaServiceWithLogger wires a fresh session that logs through logger.
func NewAgendaServiceWithLogger(idGenerator func() string, now func() time.Time, settings calendar.Settings, logger *slog.Logger) *AgendaService {
	if idGenerator == nil {
		idGenerator = uuid.NewString
	}
	if now == nil {
		now = time.Now
	}
	if settings.Location == nil {
		settings.Location = time.Local
	}
	events := NewEventStore()
	notes := NewNoteStore()
	return &AgendaService{
		events:      events,
		notes:       notes,
		mirror:      noteMirror{events: events, notes: notes},
		idGenerator: idGenerator,
		now:         now,
		settings:    settings,
		logger:      defaultLogger(logger),
	}
}

// Settings returns the calendar settings used by the projections.
func (s *AgendaService) Settings() calendar.Settings {
	return s.settings
}

// CreateEvent validates input and appends a new event.
func (s *AgendaService) CreateEvent(ctx context.Context, input EventInput) (Event, error) {
	if s == nil {
		return Event{}, fmt.Errorf("AgendaService is nil")
	}
	logger := serviceLogger(ctx, s.logger, agendaServiceName, "create_event")

	input.Title = strings.TrimSpace(input.Title)
	input.Type = strings.TrimSpace(input.Type)
	if input.Recurrence == "" {
		input.Recurrence = RecurrenceNone
	}

	vErr := &ValidationError{}
	validateEventCore(input, vErr)
	if vErr.HasErrors() {
		logger.WarnContext(ctx, "event rejected", "error_kind", ErrorKind(vErr), "error", vErr)
		return Event{}, vErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	event := Event{
		ID:          s.idGenerator(),
		Title:       input.Title,
		Description: input.Description,
		Date:        input.Date,
		Type:        input.Type,
		Recurrence:  input.Recurrence,
	}
	s.events.add(event)
	// A note may already point at this id if it was created while dangling.
	s.mirror.eventReplaced(event.ID)
	event, _ = s.events.Get(event.ID)

	logger.InfoContext(ctx, "event created", "event_id", event.ID, "type", event.Type)
	return event, nil
}

// EditEvent replaces the stored event carrying event.ID. It reports false and
// changes nothing when no event matches. Notes are always recomputed from the
// note store, so a caller cannot overwrite the mirror.
func (s *AgendaService) EditEvent(ctx context.Context, event Event) (Event, bool, error) {
	if s == nil {
		return Event{}, false, fmt.Errorf("AgendaService is nil")
	}
	logger := serviceLogger(ctx, s.logger, agendaServiceName, "edit_event", "event_id", event.ID)

	event.Title = strings.TrimSpace(event.Title)
	event.Type = strings.TrimSpace(event.Type)
	if event.Recurrence == "" {
		event.Recurrence = RecurrenceNone
	}

	vErr := &ValidationError{}
	validateEventCore(EventInput{
		Title:      event.Title,
		Date:       event.Date,
		Type:       event.Type,
		Recurrence: event.Recurrence,
	}, vErr)
	if vErr.HasErrors() {
		logger.WarnContext(ctx, "event edit rejected", "error_kind", ErrorKind(vErr), "error", vErr)
		return Event{}, false, vErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.events.update(event) {
		logger.DebugContext(ctx, "no event matches edit")
		return Event{}, false, nil
	}
	s.mirror.eventReplaced(event.ID)
	updated, _ := s.events.Get(event.ID)

	logger.InfoContext(ctx, "event updated")
	return updated, true, nil
}

// RemoveEvent deletes the event and every note referencing it. It reports
// false when the id is unknown.
func (s *AgendaService) RemoveEvent(ctx context.Context, id string) bool {
	if s == nil {
		return false
	}
	logger := serviceLogger(ctx, s.logger, agendaServiceName, "remove_event", "event_id", id)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.events.remove(id); !ok {
		logger.DebugContext(ctx, "no event matches removal")
		return false
	}
	cascaded := s.mirror.eventRemoved(id)

	logger.InfoContext(ctx, "event removed", "cascaded_notes", len(cascaded))
	return true
}

// GetEvent returns the event with the given id.
func (s *AgendaService) GetEvent(ctx context.Context, id string) (Event, error) {
	if s == nil {
		return Event{}, fmt.Errorf("AgendaService is nil")
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	event, ok := s.events.Get(id)
	if !ok {
		return Event{}, ErrNotFound
	}
	return event, nil
}

// CreateNote validates input and appends a quick note, mirroring it into the
// linked event when one exists.
func (s *AgendaService) CreateNote(ctx context.Context, input NoteInput) (QuickNote, error) {
	if s == nil {
		return QuickNote{}, fmt.Errorf("AgendaService is nil")
	}
	logger := serviceLogger(ctx, s.logger, agendaServiceName, "create_note")

	content := strings.TrimSpace(input.Content)
	if content == "" {
		vErr := &ValidationError{}
		vErr.add("content", "content is required")
		logger.WarnContext(ctx, "note rejected", "error_kind", ErrorKind(vErr), "error", vErr)
		return QuickNote{}, vErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	note := QuickNote{
		ID:        s.idGenerator(),
		Content:   content,
		CreatedAt: s.now(),
		EventID:   strings.TrimSpace(input.EventID),
	}
	s.notes.add(note)
	mirrored := s.mirror.noteAdded(note)
	if note.Linked() && !mirrored {
		logger.DebugContext(ctx, "note references unknown event", "note_id", note.ID, "event_id", note.EventID)
	}

	logger.InfoContext(ctx, "note created", "note_id", note.ID, "event_id", note.EventID)
	return note, nil
}

// RemoveNote deletes the quick note and drops it from its event's mirror.
// It reports false when the id is unknown.
func (s *AgendaService) RemoveNote(ctx context.Context, id string) bool {
	if s == nil {
		return false
	}
	logger := serviceLogger(ctx, s.logger, agendaServiceName, "remove_note", "note_id", id)

	s.mu.Lock()
	defer s.mu.Unlock()

	note, ok := s.notes.remove(id)
	if !ok {
		logger.DebugContext(ctx, "no note matches removal")
		return false
	}
	s.mirror.noteRemoved(note)

	logger.InfoContext(ctx, "note removed", "event_id", note.EventID)
	return true
}

// ListNotes returns every quick note in insertion order.
func (s *AgendaService) ListNotes(ctx context.Context) []QuickNote {
	if s == nil {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.notes.List()
}

// ListEvents returns the events matching filter in stored order.
func (s *AgendaService) ListEvents(ctx context.Context, filter string) []Event {
	if s == nil {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return FilterByType(s.events.List(), normalizeFilter(filter))
}

// DayMarkers returns the calendar markers of the events matching filter.
func (s *AgendaService) DayMarkers(ctx context.Context, filter string) map[calendar.Day][]DayMarker {
	if s == nil {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return MarkersByDay(FilterByType(s.events.List(), normalizeFilter(filter)), s.settings.Loc())
}

// WeekView returns the seven day buckets of the week containing reference.
func (s *AgendaService) WeekView(ctx context.Context, reference time.Time, filter string) []WeekBucket {
	if s == nil {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	events := FilterByType(s.events.List(), normalizeFilter(filter))
	return WeekBuckets(events, reference, s.settings.WeekStart, s.settings.Loc())
}

func validateEventCore(input EventInput, vErr *ValidationError) {
	if input.Title == "" {
		vErr.add("title", "title is required")
	}
	if input.Date.IsZero() {
		vErr.add("date", "date is required")
	}
	if input.Type == "" {
		vErr.add("type", "type is required")
	}
	if !input.Recurrence.Valid() {
		vErr.add("recurrence", "recurrence must be one of none, daily, weekly, monthly")
	}
}

// normalizeFilter treats an empty filter as FilterAll.
func normalizeFilter(filter string) string {
	if filter == "" {
		return FilterAll
	}
	return filter
}

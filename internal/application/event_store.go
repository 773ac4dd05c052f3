package application

// EventStore owns the ordered event collection of a session. Mutators are
// unexported so every change flows through AgendaService and its note mirror.
type EventStore struct {
	events []Event
}

// NewEventStore returns an empty store.
func NewEventStore() *EventStore {
	return &EventStore{}
}

// List returns a copy of every event in insertion order.
func (s *EventStore) List() []Event {
	if s == nil {
		return nil
	}
	return cloneEvents(s.events)
}

// Get returns a copy of the event with the given id.
func (s *EventStore) Get(id string) (Event, bool) {
	idx := s.index(id)
	if idx < 0 {
		return Event{}, false
	}
	return cloneEvent(s.events[idx]), true
}

// Len reports the number of stored events.
func (s *EventStore) Len() int {
	if s == nil {
		return 0
	}
	return len(s.events)
}

func (s *EventStore) add(event Event) {
	s.events = append(s.events, cloneEvent(event))
}

// update replaces the matching event in place and reports whether one matched.
func (s *EventStore) update(event Event) bool {
	idx := s.index(event.ID)
	if idx < 0 {
		return false
	}
	s.events[idx] = cloneEvent(event)
	return true
}

// remove deletes the matching event without reordering the rest.
func (s *EventStore) remove(id string) (Event, bool) {
	idx := s.index(id)
	if idx < 0 {
		return Event{}, false
	}
	removed := s.events[idx]
	s.events = append(s.events[:idx], s.events[idx+1:]...)
	return removed, true
}

func (s *EventStore) setNotes(id string, notes []string) bool {
	idx := s.index(id)
	if idx < 0 {
		return false
	}
	s.events[idx].Notes = notes
	return true
}

func (s *EventStore) index(id string) int {
	if s == nil || id == "" {
		return -1
	}
	for i := range s.events {
		if s.events[i].ID == id {
			return i
		}
	}
	return -1
}

package application

// NoteStore owns the ordered quick note collection of a session. Notes are
// immutable once stored: they are only appended or removed.
type NoteStore struct {
	notes []QuickNote
}

// NewNoteStore returns an empty store.
func NewNoteStore() *NoteStore {
	return &NoteStore{}
}

// List returns a copy of every note in insertion order.
func (s *NoteStore) List() []QuickNote {
	if s == nil || len(s.notes) == 0 {
		return nil
	}
	out := make([]QuickNote, len(s.notes))
	copy(out, s.notes)
	return out
}

// ForEvent returns the notes referencing eventID in insertion order.
func (s *NoteStore) ForEvent(eventID string) []QuickNote {
	if s == nil || eventID == "" {
		return nil
	}
	var out []QuickNote
	for _, note := range s.notes {
		if note.EventID == eventID {
			out = append(out, note)
		}
	}
	return out
}

// Len reports the number of stored notes.
func (s *NoteStore) Len() int {
	if s == nil {
		return 0
	}
	return len(s.notes)
}

func (s *NoteStore) add(note QuickNote) {
	s.notes = append(s.notes, note)
}

func (s *NoteStore) remove(id string) (QuickNote, bool) {
	if s == nil || id == "" {
		return QuickNote{}, false
	}
	for i := range s.notes {
		if s.notes[i].ID == id {
			removed := s.notes[i]
			s.notes = append(s.notes[:i], s.notes[i+1:]...)
			return removed, true
		}
	}
	return QuickNote{}, false
}

// removeForEvent drops every note linked to eventID and returns them.
func (s *NoteStore) removeForEvent(eventID string) []QuickNote {
	if s == nil || eventID == "" {
		return nil
	}
	kept := s.notes[:0]
	var removed []QuickNote
	for _, note := range s.notes {
		if note.EventID == eventID {
			removed = append(removed, note)
			continue
		}
		kept = append(kept, note)
	}
	// Clear the tail so dropped notes are not retained by the backing array.
	for i := len(kept); i < len(s.notes); i++ {
		s.notes[i] = QuickNote{}
	}
	s.notes = kept
	return removed
}

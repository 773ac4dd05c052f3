package application

// noteMirror keeps Event.Notes equal to the contents of the quick notes that
// reference the event. Every mutation path that can affect the relation ends
// in refresh, so the denormalized copy cannot drift from the note store.
type noteMirror struct {
	events *EventStore
	notes  *NoteStore
}

// noteAdded runs after a note was appended to the note store.
func (m noteMirror) noteAdded(note QuickNote) bool {
	if !note.Linked() {
		return false
	}
	return m.refresh(note.EventID)
}

// noteRemoved runs after a note was removed from the note store. The mirror
// is rebuilt from the remaining notes, so only the removed note's entry goes
// away even when another note carries identical text.
func (m noteMirror) noteRemoved(note QuickNote) bool {
	if !note.Linked() {
		return false
	}
	return m.refresh(note.EventID)
}

// eventRemoved cascades an event deletion to the notes referencing it.
func (m noteMirror) eventRemoved(eventID string) []QuickNote {
	return m.notes.removeForEvent(eventID)
}

// eventReplaced restores the mirror on an event whose fields were replaced
// by a caller supplied value.
func (m noteMirror) eventReplaced(eventID string) bool {
	return m.refresh(eventID)
}

// refresh recomputes the mirror for eventID. A missing event is a valid
// outcome for a dangling reference and reports false.
func (m noteMirror) refresh(eventID string) bool {
	linked := m.notes.ForEvent(eventID)
	var contents []string
	if len(linked) > 0 {
		contents = make([]string, len(linked))
		for i, note := range linked {
			contents[i] = note.Content
		}
	}
	return m.events.setNotes(eventID, contents)
}

package testfixtures

import (
	"context"
	"testing"
	"time"
)

func TestServiceFactoryNewAgendaService(t *testing.T) {
	factory := NewServiceFactory()
	svc := factory.NewAgendaService()

	event, err := svc.CreateEvent(context.Background(), NewEventInput())
	if err != nil {
		t.Fatalf("CreateEvent returned error: %v", err)
	}
	if event.ID != "id-1" {
		t.Fatalf("expected generated ID id-1, got %q", event.ID)
	}

	note, err := svc.CreateNote(context.Background(), NewNoteInput("bring goggles", event.ID))
	if err != nil {
		t.Fatalf("CreateNote returned error: %v", err)
	}
	if note.ID != "id-2" {
		t.Fatalf("expected notes to share the id sequence, got %q", note.ID)
	}
	if !note.CreatedAt.Equal(factory.Clock.Now()) {
		t.Fatalf("expected timestamp %v, got %v", factory.Clock.Now(), note.CreatedAt)
	}
}

func TestServiceFactoryOptions(t *testing.T) {
	clock := NewClock(UTC(2024, time.January, 1, 0, 0))
	gen := NewIDGenerator("evt")
	factory := NewServiceFactory(WithClock(clock), WithIDGenerator(gen), WithWeekStart(time.Sunday))

	svc := factory.NewAgendaService()
	if svc.Settings().WeekStart != time.Sunday {
		t.Fatalf("expected Sunday week start, got %s", svc.Settings().WeekStart)
	}

	event, err := svc.CreateEvent(context.Background(), NewEventInput(WithTitle("Lab")))
	if err != nil {
		t.Fatalf("CreateEvent returned error: %v", err)
	}
	if event.ID != "evt-1" || event.Title != "Lab" {
		t.Fatalf("unexpected event: %+v", event)
	}
}

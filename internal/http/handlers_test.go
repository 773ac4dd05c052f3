package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/example/agenda/internal/application"
	"github.com/example/agenda/internal/ics"
	"github.com/example/agenda/internal/testfixtures"
)

const labBody = `{"title":"Lab","description":"","date":"2024-03-11T09:00:00Z","type":"experimento"}`

func newTestRouter(t *testing.T) (http.Handler, *application.AgendaService) {
	t.Helper()
	factory := testfixtures.NewServiceFactory()
	svc := factory.NewAgendaService()

	router := NewRouter(RouterConfig{
		Events: NewEventHandler(svc, nil),
		Notes:  NewNoteHandler(svc, nil),
		Views: NewViewHandler(svc, ViewOptions{
			Palette: map[string]string{application.TypeExperiment: "pink"},
			Export:  ics.Options{Now: factory.Clock.Now},
			Now:     factory.Clock.Now,
		}, nil),
	})
	return router, svc
}

func do(t *testing.T, handler http.Handler, method, target, body string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)
	return recorder
}

func decode[T any](t *testing.T, recorder *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(recorder.Body.Bytes(), &out); err != nil {
		t.Fatalf("failed to decode response %q: %v", recorder.Body.String(), err)
	}
	return out
}

func TestEventHandlers(t *testing.T) {
	t.Parallel()

	t.Run("create returns the stored event", func(t *testing.T) {
		t.Parallel()
		router, _ := newTestRouter(t)

		rec := do(t, router, http.MethodPost, "/events", labBody)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		event := decode[eventDTO](t, rec)
		if event.ID != "id-1" || event.Title != "Lab" || event.Date != "2024-03-11T09:00:00Z" {
			t.Fatalf("unexpected event: %+v", event)
		}
		if event.Recurrence != "none" || event.Notes == nil || len(event.Notes) != 0 {
			t.Fatalf("expected defaults for recurrence and notes, got %+v", event)
		}
		if got := rec.Header().Get("Location"); got != "/events/id-1" {
			t.Fatalf("unexpected Location header %q", got)
		}
	})

	t.Run("validation failures map to 422 with field messages", func(t *testing.T) {
		t.Parallel()
		router, svc := newTestRouter(t)

		rec := do(t, router, http.MethodPost, "/events", `{"title":" ","date":"not a date","type":"clase","recurrence":"yearly"}`)
		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", rec.Code)
		}
		resp := decode[errorResponse](t, rec)
		for _, field := range []string{"title", "date", "recurrence"} {
			if resp.Errors[field] == "" {
				t.Fatalf("expected %s error, got %v", field, resp.Errors)
			}
		}
		if len(svc.ListEvents(context.Background(), application.FilterAll)) != 0 {
			t.Fatalf("rejected event was stored")
		}
	})

	t.Run("malformed body maps to 400", func(t *testing.T) {
		t.Parallel()
		router, _ := newTestRouter(t)

		if rec := do(t, router, http.MethodPost, "/events", `{"title":`); rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("list filters by type", func(t *testing.T) {
		t.Parallel()
		router, _ := newTestRouter(t)
		do(t, router, http.MethodPost, "/events", labBody)
		do(t, router, http.MethodPost, "/events", `{"title":"Chem","date":"2024-03-12T09:00:00Z","type":"clase"}`)

		all := decode[listEventsResponse](t, do(t, router, http.MethodGet, "/events", ""))
		if len(all.Events) != 2 || all.Events[0].Title != "Lab" {
			t.Fatalf("unexpected list: %+v", all.Events)
		}
		classes := decode[listEventsResponse](t, do(t, router, http.MethodGet, "/events?type=clase", ""))
		if len(classes.Events) != 1 || classes.Events[0].Title != "Chem" {
			t.Fatalf("unexpected filtered list: %+v", classes.Events)
		}
		none := decode[listEventsResponse](t, do(t, router, http.MethodGet, "/events?type=holiday", ""))
		if none.Events == nil || len(none.Events) != 0 {
			t.Fatalf("expected empty array, got %+v", none.Events)
		}
	})

	t.Run("update keeps id and mirrored notes", func(t *testing.T) {
		t.Parallel()
		router, _ := newTestRouter(t)
		do(t, router, http.MethodPost, "/events", labBody)
		do(t, router, http.MethodPost, "/notes", `{"content":"bring goggles","event_id":"id-1"}`)

		rec := do(t, router, http.MethodPut, "/events/id-1", `{"title":"Lab II","date":"2024-03-11T10:00:00Z","type":"experimento","recurrence":"weekly"}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		event := decode[eventDTO](t, rec)
		if event.ID != "id-1" || event.Title != "Lab II" || event.Recurrence != "weekly" {
			t.Fatalf("unexpected updated event: %+v", event)
		}
		if len(event.Notes) != 1 || event.Notes[0] != "bring goggles" {
			t.Fatalf("expected mirrored note to survive edit, got %v", event.Notes)
		}
	})

	t.Run("read then unchanged update preserves the stored instant", func(t *testing.T) {
		t.Parallel()
		router, svc := newTestRouter(t)
		do(t, router, http.MethodPost, "/events", `{"title":"Lab","date":"2024-03-11T09:00:00.750Z","type":"experimento"}`)
		before, err := svc.GetEvent(context.Background(), "id-1")
		if err != nil {
			t.Fatalf("GetEvent returned error: %v", err)
		}

		read := do(t, router, http.MethodGet, "/events/id-1", "")
		if got := decode[eventDTO](t, read).Date; got != "2024-03-11T09:00:00.75Z" {
			t.Fatalf("expected fractional seconds in served date, got %q", got)
		}
		if rec := do(t, router, http.MethodPut, "/events/id-1", read.Body.String()); rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}

		after, err := svc.GetEvent(context.Background(), "id-1")
		if err != nil {
			t.Fatalf("GetEvent returned error: %v", err)
		}
		if !after.Date.Equal(before.Date) {
			t.Fatalf("expected date %v to survive the round trip, got %v", before.Date, after.Date)
		}
	})

	t.Run("unknown ids map to 404 on read and update", func(t *testing.T) {
		t.Parallel()
		router, _ := newTestRouter(t)

		if rec := do(t, router, http.MethodGet, "/events/ghost", ""); rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404 on GET, got %d", rec.Code)
		}
		if rec := do(t, router, http.MethodPut, "/events/ghost", labBody); rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404 on PUT, got %d", rec.Code)
		}
	})

	t.Run("delete is idempotent and cascades notes", func(t *testing.T) {
		t.Parallel()
		router, svc := newTestRouter(t)
		do(t, router, http.MethodPost, "/events", labBody)
		do(t, router, http.MethodPost, "/notes", `{"content":"bring goggles","event_id":"id-1"}`)

		for i := 0; i < 2; i++ {
			if rec := do(t, router, http.MethodDelete, "/events/id-1", ""); rec.Code != http.StatusNoContent {
				t.Fatalf("delete %d: expected 204, got %d", i, rec.Code)
			}
		}
		if rec := do(t, router, http.MethodGet, "/events/id-1", ""); rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404 after delete, got %d", rec.Code)
		}
		if notes := svc.ListNotes(context.Background()); len(notes) != 0 {
			t.Fatalf("expected cascade to remove notes, got %+v", notes)
		}
	})

	t.Run("unsupported methods answer 405 with Allow", func(t *testing.T) {
		t.Parallel()
		router, _ := newTestRouter(t)

		rec := do(t, router, http.MethodPatch, "/events/id-1", "")
		if rec.Code != http.StatusMethodNotAllowed {
			t.Fatalf("expected 405, got %d", rec.Code)
		}
		if got := rec.Header().Get("Allow"); got != "GET, PUT, DELETE" {
			t.Fatalf("unexpected Allow header %q", got)
		}
	})
}

func TestNoteHandlers(t *testing.T) {
	t.Parallel()

	t.Run("create mirrors into the event and list returns notes", func(t *testing.T) {
		t.Parallel()
		router, _ := newTestRouter(t)
		do(t, router, http.MethodPost, "/events", labBody)

		rec := do(t, router, http.MethodPost, "/notes", `{"content":"  bring goggles ","event_id":"id-1"}`)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		note := decode[noteDTO](t, rec)
		if note.Content != "bring goggles" || note.EventID != "id-1" || note.CreatedAt != "2024-03-13T10:00:00Z" {
			t.Fatalf("unexpected note: %+v", note)
		}

		event := decode[eventDTO](t, do(t, router, http.MethodGet, "/events/id-1", ""))
		if len(event.Notes) != 1 || event.Notes[0] != "bring goggles" {
			t.Fatalf("expected mirrored note, got %v", event.Notes)
		}

		do(t, router, http.MethodPost, "/notes", `{"content":"buy chalk"}`)
		list := decode[listNotesResponse](t, do(t, router, http.MethodGet, "/notes", ""))
		if len(list.Notes) != 2 || list.Notes[1].EventID != "" {
			t.Fatalf("unexpected notes: %+v", list.Notes)
		}
	})

	t.Run("blank content maps to 422", func(t *testing.T) {
		t.Parallel()
		router, _ := newTestRouter(t)

		rec := do(t, router, http.MethodPost, "/notes", `{"content":"   "}`)
		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", rec.Code)
		}
		if resp := decode[errorResponse](t, rec); resp.Errors["content"] == "" {
			t.Fatalf("expected content error, got %v", resp.Errors)
		}
	})

	t.Run("delete removes the mirrored entry", func(t *testing.T) {
		t.Parallel()
		router, _ := newTestRouter(t)
		do(t, router, http.MethodPost, "/events", labBody)
		do(t, router, http.MethodPost, "/notes", `{"content":"check pH","event_id":"id-1"}`)
		do(t, router, http.MethodPost, "/notes", `{"content":"check pH","event_id":"id-1"}`)

		if rec := do(t, router, http.MethodDelete, "/notes/id-2", ""); rec.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", rec.Code)
		}
		event := decode[eventDTO](t, do(t, router, http.MethodGet, "/events/id-1", ""))
		if len(event.Notes) != 1 {
			t.Fatalf("expected one remaining duplicate, got %v", event.Notes)
		}
		if rec := do(t, router, http.MethodDelete, "/notes/id-2", ""); rec.Code != http.StatusNoContent {
			t.Fatalf("expected repeated delete to answer 204, got %d", rec.Code)
		}
	})
}

func TestViewHandlers(t *testing.T) {
	t.Parallel()

	t.Run("markers are keyed by day with palette colors", func(t *testing.T) {
		t.Parallel()
		router, _ := newTestRouter(t)
		do(t, router, http.MethodPost, "/events", labBody)
		do(t, router, http.MethodPost, "/events", `{"title":"Chem","date":"2024-03-11T23:30:00Z","type":"clase"}`)

		resp := decode[markersResponse](t, do(t, router, http.MethodGet, "/views/markers", ""))
		markers := resp.Days["2024-03-11"]
		if len(markers) != 2 {
			t.Fatalf("expected two markers on 2024-03-11, got %+v", resp.Days)
		}
		if markers[0].Color != "pink" || markers[1].Color != "gray" {
			t.Fatalf("unexpected colors: %+v", markers)
		}

		filtered := decode[markersResponse](t, do(t, router, http.MethodGet, "/views/markers?type=clase", ""))
		if len(filtered.Days["2024-03-11"]) != 1 {
			t.Fatalf("expected filter to apply, got %+v", filtered.Days)
		}
	})

	t.Run("week buckets include navigation", func(t *testing.T) {
		t.Parallel()
		router, _ := newTestRouter(t)
		do(t, router, http.MethodPost, "/events", labBody)

		resp := decode[weekResponse](t, do(t, router, http.MethodGet, "/views/week?date=2024-03-13", ""))
		if resp.Start != "2024-03-11" || resp.Previous != "2024-03-06" || resp.Next != "2024-03-20" {
			t.Fatalf("unexpected navigation: %+v", resp)
		}
		if len(resp.Days) != 7 || resp.Days[6].Date != "2024-03-17" {
			t.Fatalf("unexpected days: %+v", resp.Days)
		}
		if len(resp.Days[0].Events) != 1 || resp.Days[0].Events[0].Title != "Lab" {
			t.Fatalf("expected Lab on monday, got %+v", resp.Days[0])
		}
	})

	t.Run("week defaults to the current day", func(t *testing.T) {
		t.Parallel()
		router, _ := newTestRouter(t)

		resp := decode[weekResponse](t, do(t, router, http.MethodGet, "/views/week", ""))
		if resp.Start != "2024-03-11" {
			t.Fatalf("expected week of the fixture clock, got %q", resp.Start)
		}
	})

	t.Run("malformed week date maps to 400", func(t *testing.T) {
		t.Parallel()
		router, _ := newTestRouter(t)

		if rec := do(t, router, http.MethodGet, "/views/week?date=13/03/2024", ""); rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("export serves an iCalendar feed", func(t *testing.T) {
		t.Parallel()
		router, _ := newTestRouter(t)
		do(t, router, http.MethodPost, "/events", labBody)

		rec := do(t, router, http.MethodGet, "/export.ics", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/calendar") {
			t.Fatalf("unexpected content type %q", ct)
		}
		body := rec.Body.String()
		for _, want := range []string{"BEGIN:VCALENDAR", "UID:id-1", "SUMMARY:Lab"} {
			if !strings.Contains(body, want) {
				t.Fatalf("expected %q in feed:\n%s", want, body)
			}
		}
	})

	t.Run("views reject writes", func(t *testing.T) {
		t.Parallel()
		router, _ := newTestRouter(t)

		if rec := do(t, router, http.MethodPost, "/views/week", "{}"); rec.Code != http.StatusMethodNotAllowed {
			t.Fatalf("expected 405, got %d", rec.Code)
		}
	})
}

func TestConditionalRequests(t *testing.T) {
	t.Parallel()
	router, _ := newTestRouter(t)
	do(t, router, http.MethodPost, "/events", labBody)

	first := do(t, router, http.MethodGet, "/events", "")
	tag := first.Header().Get("ETag")
	if !strings.HasPrefix(tag, `"`) || len(tag) != 66 {
		t.Fatalf("expected quoted 256-bit hex ETag, got %q", tag)
	}

	cached := do(t, router, http.MethodGet, "/events", "", "If-None-Match", tag)
	if cached.Code != http.StatusNotModified || cached.Body.Len() != 0 {
		t.Fatalf("expected empty 304, got %d with %q", cached.Code, cached.Body.String())
	}

	do(t, router, http.MethodPost, "/events", `{"title":"Chem","date":"2024-03-12T09:00:00Z","type":"clase"}`)
	changed := do(t, router, http.MethodGet, "/events", "", "If-None-Match", tag)
	if changed.Code != http.StatusOK {
		t.Fatalf("expected 200 after mutation, got %d", changed.Code)
	}
	if changed.Header().Get("ETag") == tag {
		t.Fatalf("expected ETag to change with the body")
	}
}

func TestEtagMatches(t *testing.T) {
	t.Parallel()

	tag := `"abc"`
	tests := map[string]bool{
		"":           false,
		`"abc"`:      true,
		`W/"abc"`:    true,
		`"x", "abc"`: true,
		"*":          true,
		`"abd"`:      false,
	}
	for header, want := range tests {
		if got := etagMatches(header, tag); got != want {
			t.Fatalf("etagMatches(%q) = %v, want %v", header, got, want)
		}
	}
}

package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/example/agenda/internal/application"
)

type eventService interface {
	CreateEvent(ctx context.Context, input application.EventInput) (application.Event, error)
	EditEvent(ctx context.Context, event application.Event) (application.Event, bool, error)
	RemoveEvent(ctx context.Context, id string) bool
	GetEvent(ctx context.Context, id string) (application.Event, error)
	ListEvents(ctx context.Context, filter string) []application.Event
}

type EventHandler struct {
	service   eventService
	responder responder
	logger    *slog.Logger
}

func NewEventHandler(service eventService, logger *slog.Logger) *EventHandler {
	return &EventHandler{service: service, responder: newResponder(logger), logger: logger}
}

func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req eventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	event, err := h.service.CreateEvent(r.Context(), req.toInput())
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	w.Header().Set("Location", "/events/"+event.ID)
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, toEventDTO(event))
}

func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	eventID, ok := EventIDFromContext(r.Context())
	if !ok || strings.TrimSpace(eventID) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidEventID)
		return
	}

	event, err := h.service.GetEvent(r.Context(), eventID)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeCachedJSON(w, r, toEventDTO(event))
}

// Update replaces every editable field of the event. Notes are not
// editable here; they follow the quick notes referencing the event.
func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	eventID, ok := EventIDFromContext(r.Context())
	if !ok || strings.TrimSpace(eventID) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidEventID)
		return
	}

	var req eventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	input := req.toInput()
	updated, applied, err := h.service.EditEvent(r.Context(), application.Event{
		ID:          eventID,
		Title:       input.Title,
		Description: input.Description,
		Date:        input.Date,
		Type:        input.Type,
		Recurrence:  input.Recurrence,
	})
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	if !applied {
		handlerLogger(r.Context(), h.logger, "events", "update", "event_id", eventID).
			DebugContext(r.Context(), "edit targeted unknown event")
		h.responder.handleServiceError(r.Context(), w, application.ErrNotFound)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, toEventDTO(updated))
}

// Delete is idempotent: an unknown id still answers 204.
func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	eventID, ok := EventIDFromContext(r.Context())
	if !ok || strings.TrimSpace(eventID) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidEventID)
		return
	}

	h.service.RemoveEvent(r.Context(), eventID)
	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	events := h.service.ListEvents(r.Context(), typeFilter(r))
	h.responder.writeCachedJSON(w, r, listEventsResponse{Events: toEventDTOs(events)})
}

type eventRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Type        string `json:"type"`
	Recurrence  string `json:"recurrence"`
}

func (r eventRequest) toInput() application.EventInput {
	return application.EventInput{
		Title:       strings.TrimSpace(r.Title),
		Description: r.Description,
		Date:        parseTime(r.Date),
		Type:        strings.TrimSpace(r.Type),
		Recurrence:  application.Recurrence(strings.ToLower(strings.TrimSpace(r.Recurrence))),
	}
}

// parseTime accepts RFC 3339 instants. Anything else yields the zero time,
// which validation reports as a missing date.
func parseTime(value string) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}
	}
	if ts, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return ts
	}
	return time.Time{}
}

func typeFilter(r *http.Request) string {
	if filter := strings.TrimSpace(r.URL.Query().Get("type")); filter != "" {
		return filter
	}
	return application.FilterAll
}

type listEventsResponse struct {
	Events []eventDTO `json:"events"`
}

type eventDTO struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Date        string   `json:"date"`
	Type        string   `json:"type"`
	Recurrence  string   `json:"recurrence"`
	Notes       []string `json:"notes"`
}

func toEventDTO(event application.Event) eventDTO {
	notes := make([]string, len(event.Notes))
	copy(notes, event.Notes)
	return eventDTO{
		ID:          event.ID,
		Title:       event.Title,
		Description: event.Description,
		Date:        event.Date.Format(time.RFC3339Nano),
		Type:        event.Type,
		Recurrence:  string(event.Recurrence),
		Notes:       notes,
	}
}

func toEventDTOs(events []application.Event) []eventDTO {
	out := make([]eventDTO, 0, len(events))
	for _, event := range events {
		out = append(out, toEventDTO(event))
	}
	return out
}

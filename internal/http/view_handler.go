package http

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/example/agenda/internal/application"
	"github.com/example/agenda/internal/calendar"
	"github.com/example/agenda/internal/ics"
)

type viewService interface {
	ListEvents(ctx context.Context, filter string) []application.Event
	DayMarkers(ctx context.Context, filter string) map[calendar.Day][]application.DayMarker
	WeekView(ctx context.Context, reference time.Time, filter string) []application.WeekBucket
	Settings() calendar.Settings
}

// ViewOptions configures the read-only projections.
type ViewOptions struct {
	// Palette maps event types to display colors.
	Palette map[string]string
	// Export configures the iCalendar feed.
	Export ics.Options
	// Now resolves the default week; time.Now when nil.
	Now func() time.Time
}

// ViewHandler serves calendar markers, week buckets and the iCalendar export.
type ViewHandler struct {
	service   viewService
	options   ViewOptions
	responder responder
}

func NewViewHandler(service viewService, options ViewOptions, logger *slog.Logger) *ViewHandler {
	if options.Now == nil {
		options.Now = time.Now
	}
	return &ViewHandler{service: service, options: options, responder: newResponder(logger)}
}

func (h *ViewHandler) Markers(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	markers := h.service.DayMarkers(r.Context(), typeFilter(r))
	days := make(map[string][]markerDTO, len(markers))
	for day, dayMarkers := range markers {
		out := make([]markerDTO, 0, len(dayMarkers))
		for _, marker := range dayMarkers {
			out = append(out, markerDTO{
				EventID: marker.EventID,
				Type:    marker.Type,
				Title:   marker.Title,
				Color:   h.colorFor(marker.Type),
			})
		}
		days[day.String()] = out
	}

	h.responder.writeCachedJSON(w, r, markersResponse{Days: days})
}

// Week serves the seven buckets of the week containing ?date=, defaulting to
// the current day.
func (h *ViewHandler) Week(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	loc := h.service.Settings().Loc()
	reference := h.options.Now().In(loc)
	if value := strings.TrimSpace(r.URL.Query().Get("date")); value != "" {
		day, err := calendar.ParseDay(value)
		if err != nil {
			h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidDate)
			return
		}
		reference = day.Start(loc)
	}

	buckets := h.service.WeekView(r.Context(), reference, typeFilter(r))
	response := weekResponse{
		Previous: calendar.DayOf(calendar.PreviousWeek(reference), loc).String(),
		Next:     calendar.DayOf(calendar.NextWeek(reference), loc).String(),
		Days:     make([]weekDayDTO, 0, len(buckets)),
	}
	if len(buckets) > 0 {
		response.Start = buckets[0].Day.String()
	}
	for _, bucket := range buckets {
		response.Days = append(response.Days, weekDayDTO{
			Date:   bucket.Day.String(),
			Events: toEventDTOs(bucket.Events),
		})
	}

	h.responder.writeCachedJSON(w, r, response)
}

func (h *ViewHandler) Export(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	events := h.service.ListEvents(r.Context(), typeFilter(r))
	body := ics.Export(events, h.options.Export)
	h.responder.writeCached(w, r, "text/calendar; charset=utf-8", []byte(body))
}

func (h *ViewHandler) colorFor(eventType string) string {
	if color, ok := h.options.Palette[eventType]; ok {
		return color
	}
	return "gray"
}

type markersResponse struct {
	Days map[string][]markerDTO `json:"days"`
}

type markerDTO struct {
	EventID string `json:"event_id"`
	Type    string `json:"type"`
	Title   string `json:"title"`
	Color   string `json:"color"`
}

type weekResponse struct {
	Start    string       `json:"start"`
	Previous string       `json:"previous"`
	Next     string       `json:"next"`
	Days     []weekDayDTO `json:"days"`
}

type weekDayDTO struct {
	Date   string     `json:"date"`
	Events []eventDTO `json:"events"`
}

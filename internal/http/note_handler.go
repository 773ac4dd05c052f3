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

type noteService interface {
	CreateNote(ctx context.Context, input application.NoteInput) (application.QuickNote, error)
	RemoveNote(ctx context.Context, id string) bool
	ListNotes(ctx context.Context) []application.QuickNote
}

type NoteHandler struct {
	service   noteService
	responder responder
}

func NewNoteHandler(service noteService, logger *slog.Logger) *NoteHandler {
	return &NoteHandler{service: service, responder: newResponder(logger)}
}

func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req noteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	note, err := h.service.CreateNote(r.Context(), application.NoteInput{
		Content: req.Content,
		EventID: strings.TrimSpace(req.EventID),
	})
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusCreated, toNoteDTO(note))
}

func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	noteID, ok := NoteIDFromContext(r.Context())
	if !ok || strings.TrimSpace(noteID) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidNoteID)
		return
	}

	h.service.RemoveNote(r.Context(), noteID)
	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

func (h *NoteHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	notes := h.service.ListNotes(r.Context())
	out := make([]noteDTO, 0, len(notes))
	for _, note := range notes {
		out = append(out, toNoteDTO(note))
	}
	h.responder.writeCachedJSON(w, r, listNotesResponse{Notes: out})
}

type noteRequest struct {
	Content string `json:"content"`
	EventID string `json:"event_id"`
}

type listNotesResponse struct {
	Notes []noteDTO `json:"notes"`
}

type noteDTO struct {
	ID        string `json:"id"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
	EventID   string `json:"event_id,omitempty"`
}

func toNoteDTO(note application.QuickNote) noteDTO {
	return noteDTO{
		ID:        note.ID,
		Content:   note.Content,
		CreatedAt: note.CreatedAt.UTC().Format(time.RFC3339Nano),
		EventID:   note.EventID,
	}
}

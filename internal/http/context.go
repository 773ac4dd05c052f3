package http

import (
	"context"
	"log/slog"

	"github.com/example/agenda/internal/logging"
)

type contextKey string

const (
	eventIDContextKey contextKey = "event_id"
	noteIDContextKey  contextKey = "note_id"
)

// ContextWithEventID injects the event identifier resolved from the request path.
func ContextWithEventID(ctx context.Context, eventID string) context.Context {
	return context.WithValue(ctx, eventIDContextKey, eventID)
}

// EventIDFromContext extracts an event identifier previously associated with the context.
func EventIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(eventIDContextKey).(string)
	return id, ok
}

// ContextWithNoteID injects the quick note identifier resolved from the request path.
func ContextWithNoteID(ctx context.Context, noteID string) context.Context {
	return context.WithValue(ctx, noteIDContextKey, noteID)
}

// NoteIDFromContext extracts a quick note identifier previously associated with the context.
func NoteIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(noteIDContextKey).(string)
	return id, ok
}

// ContextWithLogger attaches a request scoped logger. The application layer
// reads the same key, so service logs carry the request attributes.
func ContextWithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return logging.ContextWithLogger(ctx, logger)
}

// LoggerFromContext returns the request scoped logger, if any.
func LoggerFromContext(ctx context.Context) *slog.Logger {
	return logging.FromContext(ctx)
}

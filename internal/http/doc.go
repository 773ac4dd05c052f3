// Package http exposes an agenda session as a JSON API.
//
// The router serves the following endpoints:
//   - GET /events?type=, POST /events: list events in stored order, optionally
//     filtered by type, or create one. Body: {"title","description","date"
//     (RFC 3339),"type","recurrence"}.
//   - GET /events/{id}, PUT /events/{id}, DELETE /events/{id}: read, replace or
//     delete an event. Deleting an event deletes its quick notes. DELETE of an
//     unknown id answers 204.
//   - GET /notes, POST /notes, DELETE /notes/{id}: quick notes. Body:
//     {"content","event_id"}; an empty event_id creates a free-standing note.
//   - GET /views/markers?type=: calendar markers keyed by YYYY-MM-DD with the
//     palette color of each event type.
//   - GET /views/week?date=YYYY-MM-DD&type=: seven day buckets of the week that
//     contains date, plus the previous and next week dates.
//   - GET /export.ics?type=: the events as an iCalendar feed.
//
// Read endpoints carry a strong ETag and honor If-None-Match. Validation
// failures answer 422 with per-field messages.
package http

package http

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRequestLogger(t *testing.T) {
	t.Parallel()

	t.Run("attaches a request scoped logger and logs the status", func(t *testing.T) {
		t.Parallel()

		var out bytes.Buffer
		base := slog.New(slog.NewTextHandler(&out, nil))

		var sawLogger bool
		handler := RequestLogger(base)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sawLogger = LoggerFromContext(r.Context()) != nil
			w.WriteHeader(http.StatusTeapot)
		}))

		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/events", nil))
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/notes", nil))

		if !sawLogger {
			t.Fatalf("expected logger in handler context")
		}
		logs := out.String()
		for _, want := range []string{"request_id=1", "request_id=2", "method=GET", "path=/events", "status=418"} {
			if !strings.Contains(logs, want) {
				t.Fatalf("expected %q in logs, got %q", want, logs)
			}
		}
	})

	t.Run("defaults the status to 200 when only the body is written", func(t *testing.T) {
		t.Parallel()

		var out bytes.Buffer
		handler := RequestLogger(slog.New(slog.NewTextHandler(&out, nil)))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("ok"))
		}))
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

		if !strings.Contains(out.String(), "status=200") {
			t.Fatalf("expected status=200, got %q", out.String())
		}
	})
}

func TestRecoverer(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	handler := Recoverer(slog.New(slog.NewTextHandler(&out, nil)))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/events", nil))

	if recorder.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", recorder.Code)
	}
	if !strings.Contains(out.String(), "handler panicked") {
		t.Fatalf("expected panic to be logged, got %q", out.String())
	}
}

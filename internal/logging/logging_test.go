package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestNew_SelectsHandlerByFormat(t *testing.T) {
	t.Parallel()

	var jsonOut bytes.Buffer
	New(&jsonOut, slog.LevelInfo, FormatJSON).Info("hello", "key", "value")
	var entry map[string]any
	if err := json.Unmarshal(jsonOut.Bytes(), &entry); err != nil {
		t.Fatalf("expected JSON output, got %q: %v", jsonOut.String(), err)
	}
	if entry["msg"] != "hello" || entry["key"] != "value" {
		t.Fatalf("unexpected JSON entry: %v", entry)
	}

	var textOut bytes.Buffer
	New(&textOut, slog.LevelInfo, "TEXT").Info("hello")
	if !strings.Contains(textOut.String(), "msg=hello") {
		t.Fatalf("expected text output, got %q", textOut.String())
	}
}

func TestNew_RespectsLevel(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	logger := New(&out, slog.LevelWarn, FormatText)
	logger.Info("dropped")
	if out.Len() != 0 {
		t.Fatalf("expected info to be filtered at warn level, got %q", out.String())
	}
	logger.Warn("kept")
	if !strings.Contains(out.String(), "kept") {
		t.Fatalf("expected warn entry, got %q", out.String())
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := map[string]slog.Level{
		"":        slog.LevelInfo,
		"debug":   slog.LevelDebug,
		" INFO ":  slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	}
	for input, want := range tests {
		got, err := ParseLevel(input)
		if err != nil {
			t.Fatalf("ParseLevel(%q) returned error: %v", input, err)
		}
		if got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", input, got, want)
		}
	}

	if _, err := ParseLevel("verbose"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestContextLogger(t *testing.T) {
	t.Parallel()

	if FromContext(context.Background()) != nil {
		t.Fatalf("expected no logger on a bare context")
	}

	logger := slog.Default()
	ctx := ContextWithLogger(context.Background(), logger)
	if FromContext(ctx) != logger {
		t.Fatalf("expected logger round trip through context")
	}

	if got := ContextWithLogger(ctx, nil); got != ctx {
		t.Fatalf("expected nil logger to leave context untouched")
	}
}

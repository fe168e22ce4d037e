package logger

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestHandleRendersDiagStyleLevelLabelAndMessage(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(&buf, nil)

	log := slog.New(h)
	log.Info("compiling", "file", "main.c")

	out := buf.String()
	if !strings.Contains(out, "info:") {
		t.Errorf("want the diag-style level label rendered, got %q", out)
	}
	if !strings.Contains(out, "compiling") {
		t.Errorf("want the message rendered, got %q", out)
	}
	if !strings.Contains(out, "file=main.c") {
		t.Errorf("want attrs rendered as key=value, got %q", out)
	}
}

func TestHandleMapsWarnAndErrorToDiagLabels(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(&buf, nil)

	if err := h.Handle(nil, slog.Record{Level: slog.LevelWarn, Message: "heads up"}); err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if err := h.Handle(nil, slog.Record{Level: slog.LevelError, Message: "broke"}); err != nil {
		t.Fatalf("Handle failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "warning: heads up") {
		t.Errorf("want a warning: label, got %q", out)
	}
	if !strings.Contains(out, "error: broke") {
		t.Errorf("want an error: label, got %q", out)
	}
}

func TestHandleWritesNothingWhenOutIsNil(t *testing.T) {
	h := NewHandler(nil, nil)
	if err := h.Handle(nil, slog.Record{Level: slog.LevelInfo, Message: "ignored"}); err != nil {
		t.Errorf("want a nil out to be a silent no-op, got %v", err)
	}
}

func TestWithAttrsAndWithGroupReturnNonNilHandlers(t *testing.T) {
	h := NewHandler(&bytes.Buffer{}, nil)

	withAttrs := h.WithAttrs([]slog.Attr{slog.String("k", "v")})
	if withAttrs == nil {
		t.Fatal("want WithAttrs to return a non-nil handler")
	}
	withGroup := h.WithGroup("g")
	if withGroup == nil {
		t.Fatal("want WithGroup to return a non-nil handler")
	}
}

package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func newTestLogger(t *testing.T, format string, buf *bytes.Buffer) *slog.Logger {
	t.Helper()
	levelVar := new(slog.LevelVar)
	levelVar.Set(slog.LevelDebug)
	var handler slog.Handler
	switch format {
	case "json":
		handler = newJSONHandler(buf, levelVar)
	default:
		handler = newConsoleHandler(buf, levelVar)
	}
	return slog.New(handler)
}

func TestConsoleHandlerShape(t *testing.T) {
	var buf bytes.Buffer
	logger := NewComponentLogger(newTestLogger(t, "console", &buf), "store")

	logger.Info("collection persisted", Int("articles", 3))

	line := buf.String()
	if !strings.Contains(line, "[store]") {
		t.Fatalf("component tag missing: %q", line)
	}
	if !strings.Contains(line, "collection persisted") {
		t.Fatalf("message missing: %q", line)
	}
	if !strings.Contains(line, "articles=3") {
		t.Fatalf("attr missing: %q", line)
	}
}

func TestJSONHandlerShape(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(t, "json", &buf)

	logger.Warn("write failed", String("error", "disk full"))

	var payload map[string]any
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("json line does not parse: %v", err)
	}
	if payload["level"] != "warn" {
		t.Fatalf("level = %v", payload["level"])
	}
	if payload["msg"] != "write failed" {
		t.Fatalf("msg = %v", payload["msg"])
	}
}

func TestUnsupportedFormat(t *testing.T) {
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatal("unsupported format accepted")
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	logger := NewNop()
	if logger.Enabled(nil, slog.LevelError) {
		t.Fatal("nop logger should be disabled at every level")
	}
}

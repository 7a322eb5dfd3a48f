package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestInit_JSON(t *testing.T) {
	var buf bytes.Buffer
	Init(slog.LevelInfo, "json", &buf)

	Debug("hidden")
	Info("habit added", "habit_id", 3)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 log line, got %d: %q", len(lines), buf.String())
	}
	var rec map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatalf("expected JSON log line: %v", err)
	}
	if rec["msg"] != "habit added" || rec["habit_id"] != float64(3) {
		t.Fatalf("unexpected record %v", rec)
	}
}

func TestInit_Text(t *testing.T) {
	var buf bytes.Buffer
	Init(slog.LevelDebug, "text", &buf)

	With("component", "tracker").Debug("loaded")

	if !strings.Contains(buf.String(), "component=tracker") {
		t.Fatalf("expected text attrs, got %q", buf.String())
	}
}

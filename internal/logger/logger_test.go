package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "info", Format: "json"}, &buf)
	log.Info("query finished", "rows", 3)
	log.Debug("hidden")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1: %q", len(lines), buf.String())
	}

	var rec map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if rec["msg"] != "query finished" {
		t.Errorf("msg = %v", rec["msg"])
	}
	if rec["rows"] != float64(3) {
		t.Errorf("rows = %v", rec["rows"])
	}
}

func TestNew_Text(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "debug"}, &buf)
	log.Debug("parsed", "query", "SELECT *")

	out := buf.String()
	if !strings.Contains(out, "msg=parsed") || !strings.Contains(out, `query="SELECT *"`) {
		t.Errorf("unexpected text output %q", out)
	}
}

func TestInitReplaces(t *testing.T) {
	first := Init(Config{Level: "info"})
	second := Init(Config{Level: "debug"})
	if first == second {
		t.Error("Init() should install a new logger")
	}
	if Get() != second {
		t.Error("Get() should return the latest logger")
	}
}

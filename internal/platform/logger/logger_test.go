package logger

import (
	"bytes"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
)

func TestLogger_JSON_FiltersByLevelAndMergesFields(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: Info, Format: FormatJSON, App: "pet-matcher", Output: &buf})

	l.Debug("hidden", nil)
	l.With(map[string]any{"species": "dog", "": "skip"}).Info("matched", map[string]any{"count": 3})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d: %q", len(lines), buf.String())
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if entry["message"] != "matched" || entry["level"] != "info" {
		t.Fatalf("unexpected entry: %#v", entry)
	}
	if entry["app"] != "pet-matcher" || entry["species"] != "dog" {
		t.Fatalf("expected base fields, got %#v", entry)
	}
	if entry["count"] != float64(3) {
		t.Fatalf("expected count=3, got %#v", entry["count"])
	}
	if _, ok := entry[""]; ok {
		t.Fatalf("empty key must be dropped")
	}
}

func TestParseLevelAndFormat(t *testing.T) {
	if ParseLevel("WARNING") != Warn || ParseLevel("nope") != Info {
		t.Fatalf("unexpected level parsing")
	}
	if ParseFormat("JSON") != FormatJSON || ParseFormat("") != FormatText {
		t.Fatalf("unexpected format parsing")
	}
}

func TestNop_DoesNotPanic(t *testing.T) {
	l := NewNop().With(map[string]any{"a": 1})
	l.Error("x", map[string]any{"b": 2})
}

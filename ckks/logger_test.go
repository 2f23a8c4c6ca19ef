package ckks

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"
)

func TestSlogLogger_WritesJSONAtOrAboveMinLevel(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}
	defer r.Close()

	l := NewSlogLogger(w, LevelWarn)
	l.Log(LevelDebug, "should be dropped", nil)
	l.Log(LevelWarn, "prime advance", map[string]any{"prime_idx": 1})
	w.Close()

	var buf bytes.Buffer
	buf.ReadFrom(r)

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	if len(lines) != 1 || len(lines[0]) == 0 {
		t.Fatalf("expected exactly one record at or above WARN, got %d: %q", len(lines), buf.String())
	}

	var record map[string]any
	if err := json.Unmarshal(lines[0], &record); err != nil {
		t.Fatalf("record is not valid JSON: %v", err)
	}
	if record["msg"] != "prime advance" || record["module"] != "ckks" {
		t.Fatalf("unexpected record: %v", record)
	}
}

func TestNopLogger_DiscardsEverything(t *testing.T) {
	// NopLogger must never panic regardless of fields/level passed in.
	NopLogger{}.Log(LevelError, "ignored", map[string]any{"k": "v"})
}

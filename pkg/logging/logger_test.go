package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []LogEntry {
	t.Helper()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	entries := make([]LogEntry, 0, len(lines))
	for i, line := range lines {
		if line == "" {
			continue
		}
		var entry LogEntry
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("Failed to unmarshal line %d: %v", i, err)
		}
		entries = append(entries, entry)
	}
	return entries
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
	}{
		{"DEBUG", DebugLevel},
		{"debug", DebugLevel},
		{" Info ", InfoLevel},
		{"warn", WarnLevel},
		{"Warning", WarnLevel},
		{"ERROR", ErrorLevel},
		{"verbose", InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.expected {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}

	if Level(42).String() != "UNKNOWN" {
		t.Error("Out of range level should render as UNKNOWN")
	}
}

func TestDomainFields(t *testing.T) {
	tests := []struct {
		name  string
		field Field
		key   string
		value any
	}{
		{"EdgeID", EdgeID(7), "edge_id", uint64(7)},
		{"Expression", Expression("N*2"), "expression", "N*2"},
		{"Symbol", Symbol("N"), "symbol", "N"},
		{"RequestID", RequestID("abc"), "request_id", "abc"},
		{"Volume", Volume(1.5), "volume", 1.5},
		{"Latency", Latency(2 * time.Second), "latency", "2s"},
		{"Count", Count(4), "count", 4},
		{"Component", Component("overlay"), "component", "overlay"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.field.Key != tt.key || tt.field.Value != tt.value {
				t.Errorf("%s = %+v, want {%s %v}", tt.name, tt.field, tt.key, tt.value)
			}
		})
	}

	if f := Error(errors.New("boom")); f.Value != "boom" {
		t.Errorf("Error() = %+v", f)
	}
	if f := Error(nil); f.Value != nil {
		t.Errorf("Error(nil) = %+v", f)
	}
}

func TestJSONLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, WarnLevel)

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message")

	entries := decodeLines(t, &buf)
	if len(entries) != 2 {
		t.Fatalf("Expected 2 log entries, got %d", len(entries))
	}
	if entries[0].Level != "WARN" || entries[1].Level != "ERROR" {
		t.Errorf("Unexpected levels: %s, %s", entries[0].Level, entries[1].Level)
	}
}

func TestJSONLogger_With(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, InfoLevel)

	child := logger.With(Component("volume"), EdgeID(12))
	child.Info("edge unresolved", Expression("K*2"))

	entries := decodeLines(t, &buf)
	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}

	fields := entries[0].Fields
	if fields["component"] != "volume" {
		t.Errorf("component = %v, want volume", fields["component"])
	}
	// JSON numbers decode as float64
	if fields["edge_id"] != float64(12) {
		t.Errorf("edge_id = %v, want 12", fields["edge_id"])
	}
	if fields["expression"] != "K*2" {
		t.Errorf("expression = %v, want K*2", fields["expression"])
	}

	logger.Info("parent")
	entries = decodeLines(t, &buf)
	if _, ok := entries[1].Fields["component"]; ok {
		t.Error("Child fields leaked into parent logger")
	}
}

func TestJSONLogger_SetLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, InfoLevel)

	logger.SetLevel(ErrorLevel)
	if logger.GetLevel() != ErrorLevel {
		t.Errorf("GetLevel() = %v, want ErrorLevel", logger.GetLevel())
	}

	logger.Info("info")
	if buf.Len() != 0 {
		t.Error("Expected no output for Info at ErrorLevel")
	}
}

func TestJSONLogger_NoFieldsOmitted(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, InfoLevel)

	logger.Info("message without fields")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Failed to unmarshal: %v", err)
	}
	if _, exists := entry["fields"]; exists {
		t.Error("Expected fields key to be omitted when empty")
	}
}

func TestTimedOperation(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, DebugLevel)

	timer := StartTimer(logger, "volume pass", Component("volume"))
	elapsed := timer.End(Count(3))
	if elapsed < 0 {
		t.Errorf("negative elapsed time %v", elapsed)
	}

	timer = StartTimer(logger, "render pass")
	timer.EndDebug()

	entries := decodeLines(t, &buf)
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	if entries[0].Level != "INFO" || entries[1].Level != "DEBUG" {
		t.Errorf("Unexpected levels: %s, %s", entries[0].Level, entries[1].Level)
	}
	if _, ok := entries[0].Fields["latency"]; !ok {
		t.Error("End should attach a latency field")
	}
	if entries[0].Fields["count"] != float64(3) {
		t.Errorf("count = %v, want 3", entries[0].Fields["count"])
	}
}

func TestDefaultLogger(t *testing.T) {
	var buf bytes.Buffer
	SetDefaultLogger(NewJSONLogger(&buf, InfoLevel))
	defer SetDefaultLogger(nil)

	DefaultLogger().Info("through default")
	if !strings.Contains(buf.String(), "through default") {
		t.Error("DefaultLogger did not return the configured logger")
	}

	SetDefaultLogger(nil)
	if DefaultLogger() == nil {
		t.Fatal("DefaultLogger() returned nil")
	}
}

func TestNopLogger(t *testing.T) {
	logger := NewNopLogger()
	logger.Info("ignored")
	if logger.With(Count(1)) == nil {
		t.Error("NopLogger.With returned nil")
	}
	if logger.GetLevel() != InfoLevel {
		t.Error("NopLogger should report InfoLevel")
	}
}

func BenchmarkJSONLogger_Info(b *testing.B) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, InfoLevel)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.Info("benchmark message", EdgeID(uint64(i)), Volume(42))
	}
}

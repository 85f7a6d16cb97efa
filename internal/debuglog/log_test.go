package debuglog

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLogLevelString(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{LevelOff, "OFF"},
		{LogLevel(42), "UNKNOWN"},
	}

	for _, test := range tests {
		if got := test.level.String(); got != test.expected {
			t.Errorf("LogLevel.String() = %q, want %q", got, test.expected)
		}
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected LogLevel
	}{
		{"DEBUG", LevelDebug},
		{"debug", LevelDebug},
		{" info ", LevelInfo},
		{"WARN", LevelWarn},
		{"warning", LevelWarn},
		{"error", LevelError},
		{"off", LevelOff},
		{"verbose", LevelOff},
		{"", LevelOff},
	}

	for _, test := range tests {
		if got := ParseLogLevel(test.input); got != test.expected {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", test.input, got, test.expected)
		}
	}
}

func TestSetupWritesFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "logs", "test.log")

	if err := Setup(LevelInfo, logPath); err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	if GetLevel() != LevelInfo {
		t.Errorf("GetLevel() = %v, want %v", GetLevel(), LevelInfo)
	}

	Debugf("debug message")
	Infof("info message")
	Warnf("warn message")
	Errorf("error message")

	if err := Close(); err != nil {
		t.Errorf("Close() failed: %v", err)
	}

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatal(err)
	}

	logContent := string(content)
	if strings.Contains(logContent, "debug message") {
		t.Error("DEBUG message should not appear with INFO level")
	}
	for _, want := range []string{"[INFO] info message", "[WARN] warn message", "[ERROR] error message"} {
		if !strings.Contains(logContent, want) {
			t.Errorf("log file missing %q", want)
		}
	}
}

func TestSetupOff(t *testing.T) {
	if err := Setup(LevelOff, ""); err != nil {
		t.Fatalf("Setup with LevelOff failed: %v", err)
	}
	if GetLevel() != LevelOff {
		t.Errorf("GetLevel() = %v, want %v", GetLevel(), LevelOff)
	}

	// Must be a no-op without a logger
	Errorf("error message")
}

func TestFieldLoggerSortsFields(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(LevelDebug, &buf)
	defer SetOutput(LevelOff, nil)

	WithFields(map[string]any{
		"path":       "/articles/search_by_similarity",
		"count":      42,
		"request_id": "abc",
	}).Debugf("GET %d", 200)

	got := buf.String()
	want := "[DEBUG] GET 200 [count=42 path=/articles/search_by_similarity request_id=abc]"
	if !strings.Contains(got, want) {
		t.Errorf("field log = %q, want it to contain %q", got, want)
	}
}

func TestFieldLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(LevelWarn, &buf)
	defer SetOutput(LevelOff, nil)

	fl := WithFields(map[string]any{"component": "test"})
	fl.Infof("hidden")
	fl.Warnf("shown")

	got := buf.String()
	if strings.Contains(got, "hidden") {
		t.Error("INFO message should be filtered at WARN level")
	}
	if !strings.Contains(got, "shown [component=test]") {
		t.Errorf("expected WARN message with fields, got %q", got)
	}
}

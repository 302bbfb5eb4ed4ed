// internal/logging/logger_test.go
package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestGetLoggerNeverNil(t *testing.T) {
	logger := GetLogger("test")
	if logger == nil {
		t.Fatal("GetLogger returned nil")
	}
}

func TestNoopLoggerIsSilent(t *testing.T) {
	logger := GetNoopLogger()
	// Must not panic and must produce nothing observable.
	logger.Debug("a")
	logger.Info("b", "k", 1)
	logger.Warn("c")
	logger.Error("d")
	if logger.WithField("x", "y") == nil {
		t.Fatal("WithField returned nil")
	}
}

func TestSlogLoggerOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlogLogger(&buf, false)

	logger.WithField("component", "test_component").Info("test message", "key1", "value1")

	line := buf.String()
	if !strings.Contains(line, "test message") {
		t.Errorf("Expected message in output, got %q", line)
	}
	if !strings.Contains(line, "component=test_component") {
		t.Errorf("Expected component field in output, got %q", line)
	}
	if !strings.Contains(line, "key1=value1") {
		t.Errorf("Expected key1 field in output, got %q", line)
	}
}

func TestSlogLoggerDebugGating(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlogLogger(&buf, false)
	logger.Debug("hidden")
	if buf.Len() != 0 {
		t.Errorf("Debug output should be suppressed at info level, got %q", buf.String())
	}

	logger = NewSlogLogger(&buf, true)
	logger.Debug("visible")
	if !strings.Contains(buf.String(), "visible") {
		t.Errorf("Debug output should appear when enabled, got %q", buf.String())
	}
}

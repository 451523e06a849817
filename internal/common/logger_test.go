package common

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestLogLevel_ToSlogLevel(t *testing.T) {
	tests := []struct {
		name     string
		level    LogLevel
		expected slog.Level
	}{
		{"error level", LogLevelError, slog.LevelError},
		{"warn level", LogLevelWarn, slog.LevelWarn},
		{"info level", LogLevelInfo, slog.LevelInfo},
		{"debug level", LogLevelDebug, slog.LevelDebug},
		{"unknown level", LogLevel(42), slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.level.ToSlogLevel(); got != tt.expected {
				t.Errorf("ToSlogLevel() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LogLevelWarn, &buf)

	logger.Info("hidden")
	logger.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info message should be filtered at warn level: %s", out)
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("warn message missing: %s", out)
	}
	if logger.Level() != LogLevelWarn {
		t.Errorf("Level() = %v, want warn", logger.Level())
	}
}

func TestLogger_MasksSensitiveAttributes(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(LogLevelDebug, &buf).WithComponent("test")

	logger.Debug("request",
		"authorization", "Bearer abc123",
		"token", "abc123",
		"header", "Authorization: Bearer abc123",
		"error", errors.New(`post failed: {"token":"abc123"}`),
		"status_code", 201,
	)

	out := buf.String()
	if strings.Contains(out, "abc123") {
		t.Fatalf("secret leaked into log output: %s", out)
	}

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("expected one JSON record, got %q: %v", out, err)
	}
	if rec["component"] != "test" {
		t.Errorf("component attribute missing: %v", rec)
	}
	if rec["status_code"] != float64(201) {
		t.Errorf("non-string attributes must be preserved, got %v", rec["status_code"])
	}
}

func TestLogger_MaskingCanBeDisabled(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LogLevelInfo, &buf)
	logger.EnableMasking(false)
	logger.WithRequest("POST", "https://example.test").Info("request", "token", "abc123")

	if !strings.Contains(buf.String(), "abc123") {
		t.Fatalf("expected raw value with masking disabled: %s", buf.String())
	}
}

func TestLogger_MaskingSharedWithDerivedLoggers(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LogLevelInfo, &buf)
	derived := logger.WithProject("prj_1")
	logger.EnableMasking(false)
	derived.Info("request", "token", "abc123")

	if !strings.Contains(buf.String(), "abc123") || !strings.Contains(buf.String(), "project_id=prj_1") {
		t.Fatalf("derived logger should follow parent masking state: %s", buf.String())
	}
}

func TestColorLogger_PlainWhenNotTerminal(t *testing.T) {
	var buf bytes.Buffer
	logger := NewColorLogger(LogLevelInfo, &buf, false)
	logger.WithComponent("cli").Info("logging configured", "format", "color", "token", "abc123")

	out := buf.String()
	if strings.Contains(out, "\x1b[") {
		t.Errorf("expected no ANSI escapes when writing to a buffer: %q", out)
	}
	for _, want := range []string{"[INFO ]", "logging configured", "component=cli", "format=color", "token=***MASKED***"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in %q", want, out)
		}
	}
}

func TestColorHandler_ForcedColorAndGroups(t *testing.T) {
	var buf bytes.Buffer
	h := NewColorHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	h.SetColorEnabled(true)
	slog.New(h).WithGroup("req").Error("boom", "status", 500)

	out := buf.String()
	if !strings.Contains(out, "\x1b[") {
		t.Errorf("expected ANSI escapes when color is forced: %q", out)
	}
	if !strings.Contains(out, "req.status") {
		t.Errorf("expected grouped key in %q", out)
	}
}

func TestDefaultLogger(t *testing.T) {
	original := GetLogger()
	defer SetDefaultLogger(original)

	var buf bytes.Buffer
	SetDefaultLogger(NewLogger(LogLevelInfo, &buf))
	GetLogger().Info("hello")
	if !strings.Contains(buf.String(), "hello") {
		t.Fatalf("default logger not replaced: %q", buf.String())
	}
}

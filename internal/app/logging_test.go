package app

import (
	"strings"
	"testing"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want LogLevel
	}{
		{"debug", LogLevelDebug},
		{"DEBUG", LogLevelDebug},
		{"info", LogLevelInfo},
		{"warn", LogLevelWarn},
		{"warning", LogLevelWarn},
		{"error", LogLevelError},
		{"nonsense", LogLevelInfo},
		{"", LogLevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseLogLevel(tt.in); got != tt.want {
				t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf strings.Builder
	l := NewLogger(LogLevelWarn, &buf)

	l.Debug("hidden debug")
	l.Info("hidden info")
	l.Warn("visible warning")
	l.Error("visible error")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("suppressed levels leaked: %q", out)
	}
	if !strings.Contains(out, "visible warning") || !strings.Contains(out, "visible error") {
		t.Errorf("expected messages missing: %q", out)
	}
}

func TestLogger_Fields(t *testing.T) {
	var buf strings.Builder
	l := NewLogger(LogLevelInfo, &buf).WithField("rule", 3).WithField("path", "/a/b")

	l.Info("dispatch failed")

	out := buf.String()
	if !strings.Contains(out, "rule=3") || !strings.Contains(out, "path=/a/b") {
		t.Errorf("fields missing from output: %q", out)
	}
}

func TestLogger_Formatting(t *testing.T) {
	var buf strings.Builder
	l := NewLogger(LogLevelInfo, &buf)

	l.Info("loaded %d rules", 7)

	if !strings.Contains(buf.String(), "loaded 7 rules") {
		t.Errorf("format args not applied: %q", buf.String())
	}
}

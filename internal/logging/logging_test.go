package logging

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"
)

func newTestLogger(buf *bytes.Buffer, level Level) *Logger {
	l := New(Config{Level: level, Output: buf, Prefix: "glide"})
	l.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	return l
}

func TestLogLineFormat(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger(&buf, LevelDebug)

	l.WithComponent("scroll").WithField("target", 120).Info("scrolling to %d", 120)

	want := "2026-01-02T03:04:05.000 [INFO] glide: scrolling to 120 {component=scroll, target=120}\n"
	if buf.String() != want {
		t.Errorf("expected %q, got %q", want, buf.String())
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger(&buf, LevelWarn)

	l.Debug("debug")
	l.Info("info")
	l.Warn("warn")
	l.Error("error")

	out := buf.String()
	if strings.Contains(out, "debug") || strings.Contains(out, "info") {
		t.Errorf("expected debug and info to be filtered, got %q", out)
	}
	if !strings.Contains(out, "[WARN]") || !strings.Contains(out, "[ERROR]") {
		t.Errorf("expected warn and error lines, got %q", out)
	}
}

func TestDerivedLoggersShareLevel(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger(&buf, LevelError)
	child := l.WithComponent("snap")

	l.SetLevel(LevelDebug)
	child.Debug("visible")

	if !strings.Contains(buf.String(), "visible") {
		t.Error("expected child logger to follow the parent level")
	}
	if !child.Enabled(LevelDebug) {
		t.Error("expected debug to be enabled")
	}
}

func TestNopDiscards(t *testing.T) {
	l := Nop()
	if l.Enabled(LevelError) {
		t.Error("expected nop logger to be disabled")
	}
	l.Error("ignored")
}

func TestNilLoggerIsSafe(t *testing.T) {
	var l *Logger
	l.Info("ignored")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"INFO", LevelInfo, false},
		{"", LevelInfo, false},
		{"warning", LevelWarn, false},
		{" error ", LevelError, false},
		{"loud", LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
			if tt.wantErr != (err != nil) {
				t.Errorf("expected error %v, got %v", tt.wantErr, err)
			}
			if err != nil && !errors.Is(err, ErrUnknownLevel) {
				t.Errorf("expected ErrUnknownLevel, got %v", err)
			}
		})
	}
}

package telemetry

import (
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestInfoWritesFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	SetLogger(zap.New(core))
	t.Cleanup(func() { SetLogger(nil) })

	Info("request.complete", map[string]any{"status": 200, "path": "/health"})

	entries := logs.FilterMessage("request.complete").All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["path"] != "/health" {
		t.Fatalf("unexpected path field: %v", fields["path"])
	}
	if fields["status"] != int64(200) {
		t.Fatalf("unexpected status field: %v (%T)", fields["status"], fields["status"])
	}
}

func TestWarnLevel(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	SetLogger(zap.New(core))
	t.Cleanup(func() { SetLogger(nil) })

	Warn("generation.fallback", nil)

	entries := logs.All()
	if len(entries) != 1 || entries[0].Level != zapcore.WarnLevel {
		t.Fatalf("expected one warn entry, got %+v", entries)
	}
}

func TestSanitizeError(t *testing.T) {
	long := strings.Repeat("a", 600)
	msg := SanitizeError(errors.New("bad\n" + long + "\r\nend"))

	if strings.Contains(msg, "\n") || strings.Contains(msg, "\r") {
		t.Fatalf("expected newlines to be stripped, got %q", msg)
	}
	if len(msg) != 500 {
		t.Fatalf("expected length 500, got %d", len(msg))
	}
	if SanitizeError(nil) != "" {
		t.Fatalf("expected empty string for nil error")
	}
}

package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestLoggerInit(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		if err := Sync(); err != nil {
			t.Errorf("failed to sync logger: %v", err)
		}
	}()

	if Get() == nil {
		t.Fatal("logger is nil after initialization")
	}

	if err := Init(WithFormat("xml")); !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("expected ErrUnknownFormat, got %v", err)
	}
	if err := Init(WithLevel("loud")); !errors.Is(err, ErrUnknownLevel) {
		t.Fatalf("expected ErrUnknownLevel, got %v", err)
	}
}

func TestLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(WithFormat(FormatJSON), WithWriter(&buf))
	if err != nil {
		t.Fatalf("failed to build logger: %v", err)
	}

	l.Info(context.Background(), "pick list generated",
		String("event", "2026casj"), Int("teams", 42), Bool("custom", false), Duration("took", time.Millisecond))

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("output is not json: %v: %s", err, buf.String())
	}
	if rec["msg"] != "pick list generated" {
		t.Errorf("unexpected msg %v", rec["msg"])
	}
	if rec["event"] != "2026casj" {
		t.Errorf("unexpected event %v", rec["event"])
	}
	if rec["teams"] != float64(42) {
		t.Errorf("unexpected teams %v", rec["teams"])
	}
	if src, _ := rec["source"].(string); !strings.Contains(src, "logger_test.go") {
		t.Errorf("source should point at the caller, got %q", src)
	}
}

func TestLoggerLevel(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(WithLevel("warn"), WithWriter(&buf))
	if err != nil {
		t.Fatalf("failed to build logger: %v", err)
	}

	ctx := context.Background()
	l.Info(ctx, "hidden")
	l.Debug(ctx, "hidden")
	if buf.Len() != 0 {
		t.Fatalf("expected nothing below warn, got %q", buf.String())
	}

	l.Warn(ctx, "shown", Error(errors.New("boom")))
	if !strings.Contains(buf.String(), "shown") || !strings.Contains(buf.String(), "boom") {
		t.Errorf("expected warn output, got %q", buf.String())
	}
}

func TestLoggerNamed(t *testing.T) {
	var buf bytes.Buffer
	if err := Init(WithWriter(&buf)); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}

	Named("engine").Info(context.Background(), "ranked", Int("n", 3))
	if !strings.Contains(buf.String(), "engine.n=3") {
		t.Errorf("expected grouped attribute, got %q", buf.String())
	}

	if err := SetLevelString("error"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	buf.Reset()
	Get().Warn(context.Background(), "suppressed")
	if buf.Len() != 0 {
		t.Errorf("expected warn to be suppressed at error level, got %q", buf.String())
	}
	if err := SetLevelString("info"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

package logger

import (
	"context"
	"errors"
	"log/slog"
	"testing"
)

func TestLoggerInit(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}

	logger := Get()
	if logger == nil {
		t.Fatal("logger is nil after initialization")
	}

	// Init is idempotent; a second call must not replace the logger.
	if err := Init(); err != nil {
		t.Fatalf("failed to re-initialize logger: %v", err)
	}
	if Get() != logger {
		t.Fatal("logger instance changed after repeated Init")
	}
}

// Basic logging test (slog-backed; no Sugar)
func TestLoggerBasic(t *testing.T) {
	logger := Get()
	if logger == nil {
		t.Fatal("logger is nil")
	}

	ctx := context.Background()
	logger.Info(ctx, "test message", String("k", "v"))
	logger.Debug(ctx, "debug message", Int("n", 1))
	logger.Warn(ctx, "warn message", Float64("score", 0.75))
	logger.Error(ctx, "error message", Error(errors.New("boom")))
}

func TestLoggerNamed(t *testing.T) {
	namedLogger := Named("test")
	if namedLogger == nil {
		t.Fatal("named logger is nil")
	}

	ctx := context.Background()
	namedLogger.Info(ctx, "test message")

	nested := namedLogger.Named("inner")
	if nested == nil {
		t.Fatal("nested named logger is nil")
	}
	nested.Info(ctx, "nested message", Any("payload", map[string]int{"a": 1}))
}

func TestFieldConstructors(t *testing.T) {
	cases := []struct {
		field Field
		key   string
	}{
		{String("user", "niluka"), "user"},
		{Int("count", 3), "count"},
		{Float64("weight", 1.5), "weight"},
		{Any("extra", struct{}{}), "extra"},
		{Error(errors.New("boom")), "error"},
	}
	for _, c := range cases {
		if c.field.Key != c.key {
			t.Errorf("field key = %q, want %q", c.field.Key, c.key)
		}
		if c.field.Value == nil {
			t.Errorf("field %q has nil value", c.key)
		}
	}
}

func TestSetLevelString(t *testing.T) {
	defer SetLevel(slog.LevelInfo)

	for _, level := range []string{"debug", "info", "", "warn", "warning", "error", "DEBUG", " Info "} {
		if err := SetLevelString(level); err != nil {
			t.Errorf("SetLevelString(%q) returned error: %v", level, err)
		}
	}

	if err := SetLevelString("verbose"); err == nil {
		t.Error("SetLevelString accepted an unknown level")
	}
}

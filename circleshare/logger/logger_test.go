package logger

import (
	"context"
	"log/slog"
	"testing"
)

func TestCustomHandler_SetLevel(t *testing.T) {
	h := NewHandler("test")
	ctx := context.Background()

	if !h.Enabled(ctx, slog.LevelDebug) {
		t.Error("Enabled(Debug) = false before SetLevel, want true")
	}

	h.SetLevel(slog.LevelWarn)

	if h.Enabled(ctx, slog.LevelInfo) {
		t.Error("Enabled(Info) = true after SetLevel(Warn), want false")
	}
	if !h.Enabled(ctx, slog.LevelWarn) {
		t.Error("Enabled(Warn) = false after SetLevel(Warn), want true")
	}

	derived := h.WithAttrs([]slog.Attr{slog.String("k", "v")})
	if derived.Enabled(ctx, slog.LevelDebug) {
		t.Error("derived handler Enabled(Debug) = true after SetLevel(Warn), want false")
	}
}

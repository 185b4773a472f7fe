package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestNew_RenamesErrorKey(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, slog.LevelDebug)
	log.Debug("rename failed", "error", "permission denied")

	if !strings.Contains(buf.String(), `err="permission denied"`) {
		t.Errorf("output = %q, want err key", buf.String())
	}
}

func TestNew_Level(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, slog.LevelInfo)
	log.Debug("hidden")
	if buf.Len() != 0 {
		t.Errorf("output = %q, want empty", buf.String())
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv(EnvDebug, "")
	if FromEnv().Enabled(context.Background(), slog.LevelError) {
		t.Error("FromEnv() enabled with EnvDebug unset")
	}
	t.Setenv(EnvDebug, "0")
	if FromEnv().Enabled(context.Background(), slog.LevelError) {
		t.Error("FromEnv() enabled with EnvDebug=0")
	}
	t.Setenv(EnvDebug, "1")
	if !FromEnv().Enabled(context.Background(), slog.LevelDebug) {
		t.Error("FromEnv() disabled with EnvDebug=1")
	}
}

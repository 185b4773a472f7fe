package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoad_FromDir(t *testing.T) {
	t.Setenv(EnvPath, "")
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, FileName), "version: 1\ntimeout: 10m\nmax_stderr: 4096\n")

	res, err := Load(dir, "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if res.Path != filepath.Join(dir, FileName) {
		t.Errorf("Path = %q, want %q", res.Path, filepath.Join(dir, FileName))
	}
	if res.Config.Version != 1 {
		t.Errorf("Config.Version = %d, want 1", res.Config.Version)
	}
	if got := res.Config.Timeout(); got != 10*time.Minute {
		t.Errorf("Timeout() = %v, want 10m", got)
	}
	if got := res.Config.MaxStderrBytes(); got != 4096 {
		t.Errorf("MaxStderrBytes() = %d, want 4096", got)
	}
}

func TestLoad_FromSubdirectory(t *testing.T) {
	t.Setenv(EnvPath, "")
	root := t.TempDir()
	writeFile(t, filepath.Join(root, FileName), "version: 2\n")

	sub := filepath.Join(root, "job", "outputs")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}

	res, err := Load(sub, "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if res.Config.Version != 2 {
		t.Errorf("Config.Version = %d, want 2", res.Config.Version)
	}
}

func TestLoad_NoFile(t *testing.T) {
	t.Setenv(EnvPath, "")
	dir := t.TempDir()

	res, err := Load(dir, "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if res.Path != "" {
		t.Errorf("Path = %q, want empty", res.Path)
	}
	cfg := res.Config
	if cfg.Timeout() != 0 {
		t.Errorf("Timeout() = %v, want 0", cfg.Timeout())
	}
	if cfg.MaxStderrBytes() != DefaultMaxStderr {
		t.Errorf("MaxStderrBytes() = %d, want %d", cfg.MaxStderrBytes(), DefaultMaxStderr)
	}
	if cfg.Overflow() != OverflowTruncate {
		t.Errorf("Overflow() = %q, want %q", cfg.Overflow(), OverflowTruncate)
	}
	if cfg.Shell() != DefaultShell {
		t.Errorf("Shell() = %q, want %q", cfg.Shell(), DefaultShell)
	}
}

func TestLoad_ExplicitPathWins(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, FileName), "shell: /bin/bash\n")
	other := filepath.Join(t.TempDir(), "custom.yaml")
	writeFile(t, other, "shell: /bin/dash\n")
	t.Setenv(EnvPath, filepath.Join(dir, FileName))

	res, err := Load(dir, other)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if res.Config.Shell() != "/bin/dash" {
		t.Errorf("Shell() = %q, want /bin/dash", res.Config.Shell())
	}
}

func TestLoad_EnvPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "env.yaml")
	writeFile(t, path, "on_overflow: fail\n")
	t.Setenv(EnvPath, path)

	res, err := Load(t.TempDir(), "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if res.Config.Overflow() != OverflowFail {
		t.Errorf("Overflow() = %q, want %q", res.Config.Overflow(), OverflowFail)
	}
}

func TestLoad_ExplicitMissing(t *testing.T) {
	_, err := Load(t.TempDir(), filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for missing explicit config")
	}
}

func TestLoad_InvalidOverflow(t *testing.T) {
	t.Setenv(EnvPath, "")
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, FileName), "on_overflow: explode\n")

	if _, err := Load(dir, ""); err == nil {
		t.Fatal("expected error for invalid on_overflow")
	}
}

func TestLoad_InvalidTimeout(t *testing.T) {
	t.Setenv(EnvPath, "")
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, FileName), "timeout: soon\n")

	if _, err := Load(dir, ""); err == nil {
		t.Fatal("expected error for invalid timeout")
	}
}

func TestLoad_NonPositiveTimeout(t *testing.T) {
	t.Setenv(EnvPath, "")
	for _, raw := range []string{"-5s", "0s"} {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, FileName), "timeout: "+raw+"\n")

		_, err := Load(dir, "")
		if err == nil {
			t.Fatalf("timeout %s: expected error", raw)
		}
		if !strings.Contains(err.Error(), "must be positive") {
			t.Errorf("timeout %s: err = %v", raw, err)
		}
	}
}

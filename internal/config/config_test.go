package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"hometunes/internal/config"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	cfg, _, exists, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected exists=false for missing file")
	}
	if cfg.Download.DefaultQuality != "192" {
		t.Fatalf("unexpected default quality: %q", cfg.Download.DefaultQuality)
	}
	if cfg.Download.Workers != 2 {
		t.Fatalf("unexpected default workers: %d", cfg.Download.Workers)
	}
	if cfg.MaxDuration() != time.Hour {
		t.Fatalf("unexpected max duration: %v", cfg.MaxDuration())
	}
	if cfg.Bind() != "0.0.0.0:8000" {
		t.Fatalf("unexpected bind: %q", cfg.Bind())
	}
}

func TestLoadOverridesAndExpandsPaths(t *testing.T) {
	path := writeConfig(t, `
[server]
port = 9000

[paths]
temp_dir = "~/hometunes-temp"

[download]
default_quality = "320"
workers = 4
`)
	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("expected resolved existing path, got %q exists=%v", resolved, exists)
	}
	if cfg.Server.Port != 9000 {
		t.Fatalf("unexpected port: %d", cfg.Server.Port)
	}
	if cfg.Download.Workers != 4 {
		t.Fatalf("unexpected workers: %d", cfg.Download.Workers)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		t.Fatalf("home dir: %v", err)
	}
	if cfg.Paths.TempDir != filepath.Join(home, "hometunes-temp") {
		t.Fatalf("expected expanded temp dir, got %q", cfg.Paths.TempDir)
	}
}

func TestLoadRejectsDefaultQualityOutsideAllowedSet(t *testing.T) {
	path := writeConfig(t, `
[download]
default_quality = "64"
`)
	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected validation error for disallowed default quality")
	} else if !strings.Contains(err.Error(), "default_quality") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoadRejectsBadLogFormat(t *testing.T) {
	path := writeConfig(t, `
[logging]
format = "yaml"
`)
	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected validation error for bad log format")
	}
}

func TestQualityAllowed(t *testing.T) {
	cfg := config.Default()
	if !cfg.QualityAllowed("128") {
		t.Fatal("expected 128 to be allowed")
	}
	if cfg.QualityAllowed("64") {
		t.Fatal("expected 64 to be rejected")
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	target := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(target); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}
	cfg, _, exists, err := config.Load(target)
	if err != nil {
		t.Fatalf("sample config does not load: %v", err)
	}
	if !exists {
		t.Fatal("expected sample config to exist")
	}
	if cfg.Download.DefaultQuality != "192" {
		t.Fatalf("sample config changed defaults: %q", cfg.Download.DefaultQuality)
	}
}

func TestEnsureDirectories(t *testing.T) {
	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.TempDir = filepath.Join(base, "temp")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.History.Path = filepath.Join(base, "state", "history.db")

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories returned error: %v", err)
	}
	for _, dir := range []string{cfg.Paths.TempDir, cfg.Paths.LogDir, filepath.Join(base, "state")} {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			t.Fatalf("expected directory %q, err=%v", dir, err)
		}
	}
}

package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"hometunes/internal/api"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestConfigInitWritesSample(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	out, err := runCommand(t, "config", "init")
	if err != nil {
		t.Fatalf("config init: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Wrote sample configuration") {
		t.Fatalf("unexpected output: %s", out)
	}

	home, _ := os.UserHomeDir()
	path := filepath.Join(home, ".config", "hometunes", "config.toml")
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected sample config at %s: %v", path, err)
	}

	if _, err := runCommand(t, "config", "init"); err == nil {
		t.Fatal("expected error without --overwrite")
	}
	if _, err := runCommand(t, "config", "init", "--overwrite"); err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}
}

func TestConfigValidateWithDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	out, err := runCommand(t, "config", "validate")
	if err != nil {
		t.Fatalf("config validate: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Configuration valid") {
		t.Fatalf("unexpected output: %s", out)
	}
}

func TestHistoryCommandRendersTable(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/history" {
			http.NotFound(w, r)
			return
		}
		_ = json.NewEncoder(w).Encode(api.HistoryResponse{
			Entries: []api.HistoryEntry{{
				ID:              1,
				YoutubeID:       "abc123",
				Title:           "Resonance",
				Artist:          "Home",
				DurationSeconds: 213,
				Quality:         "192",
				FileSize:        3456789,
			}},
			Total: 1,
		})
	}))
	defer srv.Close()

	out, err := runCommand(t, "history", "--server", strings.TrimPrefix(srv.URL, "http://"))
	if err != nil {
		t.Fatalf("history: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Resonance") || !strings.Contains(out, "abc123") {
		t.Fatalf("expected entry in output: %s", out)
	}
	if !strings.Contains(out, "3:33") {
		t.Fatalf("expected formatted duration: %s", out)
	}
}

func TestHistoryCommandEmpty(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(api.HistoryResponse{})
	}))
	defer srv.Close()

	out, err := runCommand(t, "history", "--server", srv.URL)
	if err != nil {
		t.Fatalf("history: %v\n%s", err, out)
	}
	if !strings.Contains(out, "No downloads recorded") {
		t.Fatalf("unexpected output: %s", out)
	}
}

func TestStatusReportsUnreachableDaemon(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	out, err := runCommand(t, "status", "--server", "127.0.0.1:1")
	if err != nil {
		t.Fatalf("status: %v\n%s", err, out)
	}
	if !strings.Contains(out, "unreachable") {
		t.Fatalf("expected unreachable daemon in output: %s", out)
	}
	if !strings.Contains(out, "External tools") {
		t.Fatalf("expected tool section in output: %s", out)
	}
}

func TestRenderHistoryTable(t *testing.T) {
	out := renderHistoryTable([]api.HistoryEntry{{
		ID:              7,
		YoutubeID:       "dQw4w9WgXcQ",
		Title:           "Signal",
		Artist:          "Carrier",
		DurationSeconds: 75,
		Quality:         "320",
		FileSize:        2048,
		CreatedAt:       "2026-08-30 10:00:00",
	}})
	for _, want := range []string{"DURATION", "dQw4w9WgXcQ", "1:15", "2.0 KiB"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}

func TestStatusWriterPlainOutput(t *testing.T) {
	var buf strings.Builder
	w := newStatusWriter(&buf)
	w.section("Host checks")
	w.check("Temp dir", stateOK, "/tmp")
	w.check("yt-dlp", stateFail, "not found in PATH")
	out := buf.String()

	if strings.Contains(out, "\x1b[") {
		t.Fatalf("expected no ANSI codes for non-terminal writer: %q", out)
	}
	for _, want := range []string{"== Host checks ==", "[OK] /tmp", "[ERROR] not found in PATH"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestFormatBytes(t *testing.T) {
	cases := map[int64]string{
		512:     "512 B",
		2048:    "2.0 KiB",
		3456789: "3.3 MiB",
	}
	for size, want := range cases {
		if got := formatBytes(size); got != want {
			t.Errorf("formatBytes(%d) = %q, want %q", size, got, want)
		}
	}
}

package logging_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"hometunes/internal/logging"
	"hometunes/internal/services"
)

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNewWritesConsoleLineToFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "logs", "hometunes.log")
	logger, err := logging.New(logging.Options{Level: "info", Format: "console", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	component := logging.NewComponentLogger(logger, "downloader")
	component.Info("download complete", logging.String("youtube_id", "abc123"), logging.Int64("file_size", 42))

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	line := string(data)
	if !strings.Contains(line, "INFO downloader: download complete") {
		t.Fatalf("unexpected log line: %q", line)
	}
	if !strings.Contains(line, "youtube_id=abc123") || !strings.Contains(line, "file_size=42") {
		t.Fatalf("expected attrs in log line: %q", line)
	}
}

func TestNewLevelFiltersDebug(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "hometunes.log")
	logger, err := logging.New(logging.Options{Level: "warn", Format: "console", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("should be dropped")
	logger.Warn("kept")

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if strings.Contains(string(data), "should be dropped") {
		t.Fatalf("info line should have been filtered: %q", string(data))
	}
	if !strings.Contains(string(data), "WARN kept") {
		t.Fatalf("expected warn line: %q", string(data))
	}
}

func TestWithContextAddsRequestID(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "hometunes.log")
	logger, err := logging.New(logging.Options{Format: "console", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	ctx := services.WithRequestID(t.Context(), "req-7")
	logging.WithContext(ctx, logger).Info("hello")

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "request_id=req-7") {
		t.Fatalf("expected request_id attr: %q", string(data))
	}
}

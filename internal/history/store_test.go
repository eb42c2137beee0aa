package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"hometunes/internal/config"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	cfg := config.Default()
	cfg.History.Path = filepath.Join(t.TempDir(), "history.db")
	store, err := Open(&cfg)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestRecordAndRecent(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	first, err := store.Record(ctx, Entry{
		YoutubeID:       "dQw4w9WgXcQ",
		Title:           "Never Gonna Give You Up",
		Artist:          "Rick Astley",
		DurationSeconds: 213,
		Quality:         "192",
		FileSize:        3_456_789,
		RequestedURL:    "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
	})
	if err != nil {
		t.Fatalf("record first: %v", err)
	}
	second, err := store.Record(ctx, Entry{
		YoutubeID: "9bZkp7q19f0",
		Title:     "Gangnam Style",
	})
	if err != nil {
		t.Fatalf("record second: %v", err)
	}
	if second <= first {
		t.Fatalf("expected monotonically increasing ids, got %d then %d", first, second)
	}

	entries, err := store.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].YoutubeID != "9bZkp7q19f0" {
		t.Fatalf("expected newest first, got %q", entries[0].YoutubeID)
	}
	if entries[1].Title != "Never Gonna Give You Up" || entries[1].DurationSeconds != 213 {
		t.Fatalf("unexpected entry: %#v", entries[1])
	}
	if entries[1].CreatedAt.IsZero() {
		t.Fatal("expected created_at to round-trip")
	}
	if time.Since(entries[1].CreatedAt) > time.Minute {
		t.Fatalf("created_at too old: %v", entries[1].CreatedAt)
	}
}

func TestRecentLimit(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if _, err := store.Record(ctx, Entry{YoutubeID: "id", Title: "t"}); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	entries, err := store.Recent(ctx, 3)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}

	count, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 5 {
		t.Fatalf("expected count 5, got %d", count)
	}
}

func TestOpenRejectsMissingPath(t *testing.T) {
	cfg := config.Default()
	cfg.History.Path = ""
	if _, err := Open(&cfg); err == nil {
		t.Fatal("expected error for empty history path")
	}
}

func TestReopenPreservesData(t *testing.T) {
	cfg := config.Default()
	cfg.History.Path = filepath.Join(t.TempDir(), "history.db")

	store, err := Open(&cfg)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if _, err := store.Record(context.Background(), Entry{YoutubeID: "abc", Title: "t"}); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := Open(&cfg)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	defer reopened.Close()

	count, err := reopened.Count(context.Background())
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 entry after reopen, got %d", count)
	}
}

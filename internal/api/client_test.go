package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"hometunes/internal/api"
)

func TestClientHealth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			http.NotFound(w, r)
			return
		}
		_ = json.NewEncoder(w).Encode(api.HealthResponse{Status: "ok", Version: "1.0.0"})
	}))
	defer srv.Close()

	client, err := api.NewClient(strings.TrimPrefix(srv.URL, "http://"))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	health, err := client.Health(context.Background())
	if err != nil {
		t.Fatalf("health: %v", err)
	}
	if health.Status != "ok" || health.Version != "1.0.0" {
		t.Fatalf("unexpected health: %#v", health)
	}
}

func TestClientHistoryPassesLimit(t *testing.T) {
	var gotLimit string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotLimit = r.URL.Query().Get("limit")
		_ = json.NewEncoder(w).Encode(api.HistoryResponse{
			Entries: []api.HistoryEntry{{YoutubeID: "abc123", Title: "Song"}},
			Total:   1,
		})
	}))
	defer srv.Close()

	client, err := api.NewClient(srv.URL)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	resp, err := client.History(context.Background(), 5)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if gotLimit != "5" {
		t.Fatalf("expected limit=5, got %q", gotLimit)
	}
	if len(resp.Entries) != 1 || resp.Entries[0].YoutubeID != "abc123" {
		t.Fatalf("unexpected response: %#v", resp)
	}
}

func TestClientUnreachable(t *testing.T) {
	client, err := api.NewClient("127.0.0.1:1")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if _, err := client.Health(context.Background()); !errors.Is(err, api.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestNewClientRejectsEmptyBind(t *testing.T) {
	if _, err := api.NewClient("  "); err == nil {
		t.Fatal("expected error for empty bind")
	}
}

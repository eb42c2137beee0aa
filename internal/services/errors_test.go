package services_test

import (
	"errors"
	"net/http"
	"testing"

	"hometunes/internal/services"
)

func TestWrapTagsMarker(t *testing.T) {
	err := services.Wrap(services.ErrExtraction, "ytdlp", "extract", "tool exited 1", errors.New("boom"))
	if !errors.Is(err, services.ErrExtraction) {
		t.Fatalf("expected extraction marker, got %v", err)
	}
	if got := err.Error(); got != "extraction error: ytdlp: extract: tool exited 1: boom" {
		t.Fatalf("unexpected message: %q", got)
	}
}

func TestWrapDefaultsToUnexpected(t *testing.T) {
	err := services.Wrap(nil, "", "", "", errors.New("boom"))
	if !errors.Is(err, services.ErrUnexpected) {
		t.Fatalf("expected unexpected marker, got %v", err)
	}
	if got := err.Error(); got != "unexpected error: service failure: boom" {
		t.Fatalf("unexpected message: %q", got)
	}
}

func TestHTTPStatusMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{services.Wrap(services.ErrValidation, "server", "decode", "bad body", nil), http.StatusBadRequest},
		{services.Wrap(services.ErrExtraction, "ytdlp", "extract", "failed", nil), http.StatusUnprocessableEntity},
		{services.Wrap(services.ErrStorage, "workspace", "allocate", "denied", nil), http.StatusUnprocessableEntity},
		{services.Wrap(services.ErrUnexpected, "downloader", "stat", "failed", nil), http.StatusInternalServerError},
		{errors.New("untagged"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := services.HTTPStatus(tc.err); got != tc.want {
			t.Fatalf("HTTPStatus(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}

func TestErrorCode(t *testing.T) {
	if got := services.ErrorCode(services.Wrap(services.ErrExtraction, "ytdlp", "", "", nil)); got != "download_failed" {
		t.Fatalf("expected download_failed, got %q", got)
	}
	if got := services.ErrorCode(errors.New("boom")); got != "server_error" {
		t.Fatalf("expected server_error, got %q", got)
	}
}

func TestMessageStripsMarkerPrefix(t *testing.T) {
	err := services.Wrap(services.ErrExtraction, "ytdlp", "extract", "video too long", nil)
	if got := services.Message(err); got != "ytdlp: extract: video too long" {
		t.Fatalf("unexpected message: %q", got)
	}
}

func TestRequestIDRoundTrip(t *testing.T) {
	ctx := services.WithRequestID(t.Context(), "abc-123")
	id, ok := services.RequestIDFromContext(ctx)
	if !ok || id != "abc-123" {
		t.Fatalf("expected request id round trip, got %q ok=%v", id, ok)
	}
	if _, ok := services.RequestIDFromContext(t.Context()); ok {
		t.Fatal("expected absent request id")
	}
}

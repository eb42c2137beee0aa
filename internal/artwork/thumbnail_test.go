package artwork_test

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	"hometunes/internal/artwork"
)

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestFindThumbnailProbeOrderIsDeterministic(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "video.png", []byte("png-bytes"))
	jpg := writeFile(t, dir, "video.jpg", []byte("jpg-bytes"))

	if got := artwork.FindThumbnail(dir); got != jpg {
		t.Fatalf("expected jpg to win probe order, got %q", got)
	}
}

func TestFindThumbnailWebpFallback(t *testing.T) {
	dir := t.TempDir()
	webp := writeFile(t, dir, "video.webp", []byte("webp-bytes"))
	writeFile(t, dir, "audio.m4a", []byte("audio"))

	if got := artwork.FindThumbnail(dir); got != webp {
		t.Fatalf("expected webp thumbnail, got %q", got)
	}
}

func TestFindThumbnailEmptyDir(t *testing.T) {
	if got := artwork.FindThumbnail(t.TempDir()); got != "" {
		t.Fatalf("expected no thumbnail, got %q", got)
	}
}

func TestReadBase64RoundTrip(t *testing.T) {
	dir := t.TempDir()
	payload := []byte{0xff, 0xd8, 0xff, 0xe0, 0x00}
	writeFile(t, dir, "abc123.jpg", payload)

	encoded := artwork.ReadBase64(dir)
	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if string(decoded) != string(payload) {
		t.Fatalf("round trip mismatch: %v != %v", decoded, payload)
	}
}

func TestReadBase64MissingThumbnail(t *testing.T) {
	if got := artwork.ReadBase64(t.TempDir()); got != "" {
		t.Fatalf("expected empty encoding, got %q", got)
	}
}

func TestIsImagePath(t *testing.T) {
	if !artwork.IsImagePath("/tmp/x/thumb.JPG") {
		t.Fatal("expected .JPG to match")
	}
	if artwork.IsImagePath("/tmp/x/audio.m4a") {
		t.Fatal("expected .m4a to not match")
	}
}

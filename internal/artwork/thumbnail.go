package artwork

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// probeExtensions is the fixed probe order for thumbnail files. yt-dlp writes
// at most one thumbnail per download, but when multiple candidates exist the
// first matching extension wins so behavior stays reproducible.
var probeExtensions = []string{"jpg", "jpeg", "webp", "png"}

// FindThumbnail returns the path of the thumbnail image inside dir, or ""
// when no candidate exists.
func FindThumbnail(dir string) string {
	for _, ext := range probeExtensions {
		matches, err := filepath.Glob(filepath.Join(dir, "*."+ext))
		if err != nil || len(matches) == 0 {
			continue
		}
		sort.Strings(matches)
		return matches[0]
	}
	return ""
}

// ReadBase64 locates the thumbnail inside dir and returns its base64
// encoding. Returns "" when no thumbnail exists or it cannot be read; a
// missing thumbnail is an expected condition, not an error.
func ReadBase64(dir string) string {
	path := FindThumbnail(dir)
	if path == "" {
		return ""
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return base64.StdEncoding.EncodeToString(data)
}

// IsImagePath reports whether path carries one of the probed thumbnail
// extensions.
func IsImagePath(path string) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	for _, candidate := range probeExtensions {
		if ext == candidate {
			return true
		}
	}
	return false
}

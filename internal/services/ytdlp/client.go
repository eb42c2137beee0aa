package ytdlp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"hometunes/internal/services"
)

// formatSelector prefers AAC/m4a since that is YouTube's native audio format;
// copying the stream avoids a lossy re-encode.
const formatSelector = "bestaudio[ext=m4a]/bestaudio[acodec=aac]/bestaudio/best"

// Info holds the metadata yt-dlp reports for a downloaded item.
type Info struct {
	ID        string
	Title     string
	Artist    string
	Uploader  string
	Duration  int
	AudioPath string
	Raw       json.RawMessage
}

// Extractor defines the behaviour required by the download pipeline.
type Extractor interface {
	Extract(ctx context.Context, url, destDir string) (*Info, error)
}

// Executor abstracts command execution for testability. Both stdout and
// stderr lines are forwarded to onLine.
type Executor interface {
	Run(ctx context.Context, binary string, args []string, onLine func(string)) error
}

// Option configures the client.
type Option func(*Client)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(c *Client) {
		if exec != nil {
			c.exec = exec
		}
	}
}

// Client wraps yt-dlp CLI interactions.
type Client struct {
	binary      string
	maxDuration time.Duration
	exec        Executor
}

// New constructs a yt-dlp client. maxDurationSeconds caps the content length
// accepted from the tool; zero disables the cap.
func New(binary string, maxDurationSeconds int, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("yt-dlp binary required")
	}
	client := &Client{
		binary:      binary,
		maxDuration: time.Duration(maxDurationSeconds) * time.Second,
		exec:        commandExecutor{},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Extract downloads the best audio for url into destDir, writing the audio
// artifact and a thumbnail named by the source item id, and returns the
// parsed item metadata.
//
// The duration cap is enforced after extraction because yt-dlp does not
// report a reliable duration before the download completes in this
// configuration; callers must not assume the cap prevents the download
// itself.
func (c *Client) Extract(ctx context.Context, url, destDir string) (*Info, error) {
	if strings.TrimSpace(url) == "" {
		return nil, services.Wrap(services.ErrExtraction, "ytdlp", "extract", "url required", nil)
	}
	if strings.TrimSpace(destDir) == "" {
		return nil, services.Wrap(services.ErrExtraction, "ytdlp", "extract", "destination directory required", nil)
	}

	args := []string{
		"--format", formatSelector,
		"--extract-audio",
		"--audio-format", "m4a",
		"--audio-quality", "0",
		"--embed-metadata",
		"--write-thumbnail",
		"--print-json",
		"--no-warnings",
		"--no-playlist",
		"--output", filepath.Join(destDir, "%(id)s.%(ext)s"),
		"--",
		url,
	}

	var mu sync.Mutex
	var infoLine string
	tail := newLineTail(8)
	// onLine runs concurrently for stdout and stderr.
	err := c.exec.Run(ctx, c.binary, args, func(line string) {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			return
		}
		mu.Lock()
		defer mu.Unlock()
		if strings.HasPrefix(trimmed, "{") && strings.HasSuffix(trimmed, "}") {
			infoLine = trimmed
			return
		}
		tail.add(trimmed)
	})
	if err != nil {
		return nil, services.Wrap(services.ErrExtraction, "ytdlp", "extract", tail.summary(), err)
	}

	info, err := parseInfo(infoLine)
	if err != nil {
		return nil, services.Wrap(services.ErrExtraction, "ytdlp", "extract", "parse tool output", err)
	}

	if c.maxDuration > 0 && time.Duration(info.Duration)*time.Second > c.maxDuration {
		return nil, services.Wrap(services.ErrExtraction, "ytdlp", "extract",
			fmt.Sprintf("video too long (%ds), max %ds", info.Duration, int(c.maxDuration/time.Second)), nil)
	}

	audioPath, err := locateAudioArtifact(destDir)
	if err != nil {
		return nil, err
	}
	info.AudioPath = audioPath
	return info, nil
}

func parseInfo(line string) (*Info, error) {
	if line == "" {
		return nil, errors.New("no info JSON in output")
	}
	var payload struct {
		ID       string  `json:"id"`
		Title    string  `json:"title"`
		Artist   string  `json:"artist"`
		Uploader string  `json:"uploader"`
		Duration float64 `json:"duration"`
	}
	if err := json.Unmarshal([]byte(line), &payload); err != nil {
		return nil, fmt.Errorf("decode info JSON: %w", err)
	}
	return &Info{
		ID:       payload.ID,
		Title:    payload.Title,
		Artist:   payload.Artist,
		Uploader: payload.Uploader,
		Duration: int(payload.Duration),
		Raw:      json.RawMessage(line),
	}, nil
}

// locateAudioArtifact scans destDir for the produced m4a file. Absence after
// a clean tool exit indicates a tool/postprocessor mismatch and is reported
// distinctly from a tool failure.
func locateAudioArtifact(destDir string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(destDir, "*.m4a"))
	if err != nil {
		return "", services.Wrap(services.ErrUnexpected, "ytdlp", "extract", "scan destination", err)
	}
	if len(matches) == 0 {
		return "", services.Wrap(services.ErrExtraction, "ytdlp", "extract", "audio artifact not produced", nil)
	}
	sort.Strings(matches)
	return matches[0], nil
}

var _ Extractor = (*Client)(nil)

package ffmpeg

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Embedder defines the cover-art muxing behaviour required by the download
// pipeline.
type Embedder interface {
	EmbedCoverArt(ctx context.Context, audioPath, imagePath string) error
}

// Executor abstracts command execution for testability.
type Executor interface {
	Run(ctx context.Context, binary string, args []string) ([]byte, error)
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

// Client wraps ffmpeg CLI interactions.
type Client struct {
	binary string
	exec   Executor
}

// New constructs an ffmpeg client.
func New(binary string, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("ffmpeg binary required")
	}
	client := &Client{binary: binary, exec: commandExecutor{}}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// EmbedCoverArt attaches imagePath to the audio container at audioPath as a
// disposition-marked cover-art stream. The audio stream is copied
// bit-for-bit. The mux writes to a temporary sibling file which atomically
// replaces the original on success; on failure the partial output is removed
// and the original artifact is left untouched.
//
// Callers treat any returned error as non-fatal: the un-embedded artifact
// stays valid and playable.
func (c *Client) EmbedCoverArt(ctx context.Context, audioPath, imagePath string) error {
	if strings.TrimSpace(audioPath) == "" {
		return errors.New("audio path required")
	}
	if strings.TrimSpace(imagePath) == "" {
		return errors.New("image path required")
	}

	outputPath := strings.TrimSuffix(audioPath, ".m4a") + ".tmp.m4a"
	args := []string{
		"-y",
		"-i", audioPath,
		"-i", imagePath,
		"-map", "0:a",
		"-map", "1:0",
		"-c:a", "copy",
		"-c:v", "mjpeg",
		"-disposition:v", "attached_pic",
		outputPath,
	}

	if output, err := c.exec.Run(ctx, c.binary, args); err != nil {
		_ = os.Remove(outputPath)
		return fmt.Errorf("ffmpeg embed: %w: %s", err, lastLine(output))
	}

	if err := os.Rename(outputPath, audioPath); err != nil {
		_ = os.Remove(outputPath)
		return fmt.Errorf("replace audio artifact: %w", err)
	}
	return nil
}

func lastLine(output []byte) string {
	lines := strings.Split(strings.TrimSpace(string(output)), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return ""
}

type commandExecutor struct{}

func (commandExecutor) Run(ctx context.Context, binary string, args []string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec
	return cmd.CombinedOutput()
}

var _ Embedder = (*Client)(nil)

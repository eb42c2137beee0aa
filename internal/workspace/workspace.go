package workspace

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"hometunes/internal/logging"
	"hometunes/internal/services"
)

// Manager allocates and releases per-request workspace directories under a
// shared base directory. Each workspace belongs to exactly one request.
type Manager struct {
	base   string
	logger *slog.Logger
}

// NewManager constructs a workspace manager rooted at base.
func NewManager(base string, logger *slog.Logger) (*Manager, error) {
	base = strings.TrimSpace(base)
	if base == "" {
		return nil, services.Wrap(services.ErrStorage, "workspace", "new", "base directory required", nil)
	}
	if err := os.MkdirAll(base, 0o755); err != nil {
		return nil, services.Wrap(services.ErrStorage, "workspace", "new", "create base directory", err)
	}
	return &Manager{
		base:   base,
		logger: logging.NewComponentLogger(logger, "workspace"),
	}, nil
}

// Base returns the shared base directory.
func (m *Manager) Base() string {
	return m.base
}

// Allocate creates a fresh uniquely-named workspace directory and returns its
// path.
func (m *Manager) Allocate() (string, error) {
	path := filepath.Join(m.base, uuid.NewString())
	if err := os.Mkdir(path, 0o755); err != nil {
		return "", services.Wrap(services.ErrStorage, "workspace", "allocate", "create request directory", err)
	}
	return path, nil
}

// Release recursively removes a workspace directory. Best-effort and
// idempotent: failures are logged, never returned, because release runs on
// both success and failure paths and must not mask the primary result.
func (m *Manager) Release(path string) {
	path = strings.TrimSpace(path)
	if path == "" {
		return
	}
	// Refuse paths outside the managed base so a corrupted result record
	// cannot delete unrelated files.
	rel, err := filepath.Rel(m.base, path)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		m.logger.Warn("refusing to release path outside workspace base",
			logging.String("path", path))
		return
	}
	if err := os.RemoveAll(path); err != nil {
		m.logger.Warn("failed to release workspace",
			logging.String("path", path),
			logging.Error(err))
	}
}

package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync/atomic"

	"github.com/gofrs/flock"

	"hometunes/internal/config"
	"hometunes/internal/downloader"
	"hometunes/internal/history"
	"hometunes/internal/logging"
	"hometunes/internal/notifications"
	"hometunes/internal/preflight"
	"hometunes/internal/server"
	"hometunes/internal/services/ffmpeg"
	"hometunes/internal/services/ytdlp"
	"hometunes/internal/workspace"
)

// Daemon wires the download pipeline to its HTTP server and enforces
// single-instance execution through a lock file.
type Daemon struct {
	cfg    *config.Config
	logger *slog.Logger

	workspaces *workspace.Manager
	store      *history.Store
	downloads  *downloader.Service
	server     *server.Server
	notifier   notifications.Service

	lockPath string
	lock     *flock.Flock

	running atomic.Bool
	cancel  context.CancelFunc
}

// New constructs a daemon with initialized dependencies. History is only
// opened when enabled in config; cover-art embedding degrades to a no-op
// when ffmpeg is not configured.
func New(cfg *config.Config, logger *slog.Logger) (*Daemon, error) {
	if cfg == nil || logger == nil {
		return nil, errors.New("daemon requires config and logger")
	}

	workspaces, err := workspace.NewManager(cfg.Paths.TempDir, logger)
	if err != nil {
		return nil, fmt.Errorf("init workspace manager: %w", err)
	}

	extractor, err := ytdlp.New(cfg.Download.YtdlpBinary, cfg.Download.MaxDurationSeconds)
	if err != nil {
		return nil, fmt.Errorf("init yt-dlp client: %w", err)
	}

	var embedder ffmpeg.Embedder
	if cfg.Download.FfmpegBinary != "" {
		client, err := ffmpeg.New(cfg.Download.FfmpegBinary)
		if err != nil {
			return nil, fmt.Errorf("init ffmpeg client: %w", err)
		}
		embedder = client
	}

	var store *history.Store
	if cfg.History.Enabled {
		store, err = history.Open(cfg)
		if err != nil {
			return nil, fmt.Errorf("open history store: %w", err)
		}
	}

	notifier := notifications.NewService(cfg)
	downloads := downloader.NewService(cfg, downloader.Deps{
		Workspaces: workspaces,
		Extractor:  extractor,
		Embedder:   embedder,
		History:    store,
		Notifier:   notifier,
		Logger:     logger,
	})

	lockPath := filepath.Join(cfg.Paths.LogDir, "hometunesd.lock")
	return &Daemon{
		cfg:        cfg,
		logger:     logger.With(logging.String(logging.FieldComponent, "daemon")),
		workspaces: workspaces,
		store:      store,
		downloads:  downloads,
		server:     server.New(cfg, downloads, store, logger),
		notifier:   notifier,
		lockPath:   lockPath,
		lock:       flock.New(lockPath),
	}, nil
}

// Start acquires the daemon lock, sweeps stale workspaces, and begins
// serving HTTP requests.
func (d *Daemon) Start(ctx context.Context) error {
	if d.running.Load() {
		return errors.New("daemon already running")
	}

	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another hometunes daemon instance is already running")
	}

	d.logStartupChecks(ctx)
	d.sweepStaleWorkspaces()

	runCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	d.downloads.Start(runCtx)
	if err := d.server.Start(runCtx); err != nil {
		cancel()
		d.downloads.Stop()
		_ = d.lock.Unlock()
		d.cancel = nil
		return err
	}

	d.running.Store(true)
	d.logger.Info("hometunes daemon started",
		logging.String("bind", d.cfg.Bind()),
		logging.String("lock", d.lockPath))
	return nil
}

// Stop shuts down the server and worker pool and releases the daemon lock.
func (d *Daemon) Stop() {
	if !d.running.Load() {
		return
	}

	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.server.Stop()
	d.downloads.Stop()
	if err := d.lock.Unlock(); err != nil {
		d.logger.Warn("failed to release daemon lock", logging.Error(err))
	}
	d.running.Store(false)
	d.logger.Info("hometunes daemon stopped")
}

// Close releases resources held by the daemon.
func (d *Daemon) Close() error {
	d.Stop()
	if d.store != nil {
		return d.store.Close()
	}
	return nil
}

// LockPath returns the daemon lock file path.
func (d *Daemon) LockPath() string {
	return d.lockPath
}

func (d *Daemon) logStartupChecks(ctx context.Context) {
	for _, result := range preflight.RunAll(ctx, d.cfg) {
		if result.Passed {
			d.logger.Debug("preflight check passed",
				logging.String("check", result.Name),
				logging.String("detail", result.Detail))
			continue
		}
		d.logger.Warn("preflight check failed",
			logging.String("check", result.Name),
			logging.String("detail", result.Detail))
	}
	for _, status := range preflight.CheckSystemDeps(ctx, d.cfg) {
		if status.Available {
			continue
		}
		if status.Optional {
			d.logger.Warn("optional tool missing",
				logging.String("tool", status.Name),
				logging.String("detail", status.Detail))
			continue
		}
		d.logger.Error("required tool missing",
			logging.String("tool", status.Name),
			logging.String("detail", status.Detail))
	}
}

// sweepStaleWorkspaces reclaims directories left behind by a previous crash.
func (d *Daemon) sweepStaleWorkspaces() {
	result := d.workspaces.CleanStale(d.cfg.StaleWorkspaceMaxAge())
	if len(result.Removed) > 0 || len(result.Errors) > 0 {
		d.logger.Info("stale workspace sweep",
			logging.Int("removed", len(result.Removed)),
			logging.Int("errors", len(result.Errors)))
	}
}

package downloader

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync"
	"time"

	"hometunes/internal/artwork"
	"hometunes/internal/config"
	"hometunes/internal/history"
	"hometunes/internal/logging"
	"hometunes/internal/notifications"
	"hometunes/internal/services"
	"hometunes/internal/services/ffmpeg"
	"hometunes/internal/services/ytdlp"
	"hometunes/internal/textutil"
	"hometunes/internal/workspace"
)

// ErrStopped is returned when a download is requested after Stop.
var ErrStopped = errors.New("downloader stopped")

// Result describes one completed download. The caller owns the workspace and
// must release it through the manager once the audio bytes have been consumed.
type Result struct {
	YoutubeID       string
	Title           string
	Artist          string
	Duration        int
	Quality         string
	AudioPath       string
	ThumbnailBase64 string
	WorkspacePath   string
	FileSize        int64
}

// Deps collects the collaborators the service orchestrates.
type Deps struct {
	Workspaces *workspace.Manager
	Extractor  ytdlp.Extractor
	Embedder   ffmpeg.Embedder
	History    *history.Store
	Notifier   notifications.Service
	Logger     *slog.Logger
}

// Service runs downloads on a bounded worker pool so that a burst of requests
// cannot spawn an unbounded number of yt-dlp processes.
type Service struct {
	cfg        *config.Config
	workspaces *workspace.Manager
	extractor  ytdlp.Extractor
	embedder   ffmpeg.Embedder
	store      *history.Store
	notifier   notifications.Service
	logger     *slog.Logger

	jobs      chan *job
	quit      chan struct{}
	wg        sync.WaitGroup
	startOnce sync.Once
	stopOnce  sync.Once
}

type job struct {
	ctx     context.Context
	url     string
	quality string
	done    chan jobResult
}

type jobResult struct {
	result *Result
	err    error
}

// NewService builds a download service from config and collaborators.
// Deps.History and Deps.Embedder may be nil; the corresponding steps are
// skipped. Deps.Notifier defaults to a noop when nil.
func NewService(cfg *config.Config, deps Deps) *Service {
	logger := deps.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	notifier := deps.Notifier
	if notifier == nil {
		notifier = notifications.NewService(&config.Config{})
	}
	return &Service{
		cfg:        cfg,
		workspaces: deps.Workspaces,
		extractor:  deps.Extractor,
		embedder:   deps.Embedder,
		store:      deps.History,
		notifier:   notifier,
		logger:     logger.With(logging.String(logging.FieldComponent, "downloader")),
		jobs:       make(chan *job),
		quit:       make(chan struct{}),
	}
}

// Start launches the worker pool. Workers exit when ctx is cancelled or
// Stop is called.
func (s *Service) Start(ctx context.Context) {
	s.startOnce.Do(func() {
		workers := s.cfg.Download.Workers
		if workers <= 0 {
			workers = 1
		}
		s.logger.Info("starting download workers", logging.Int("workers", workers))
		for i := 0; i < workers; i++ {
			s.wg.Add(1)
			go s.worker(ctx)
		}
	})
}

// Stop shuts the pool down and waits for in-flight downloads to finish.
func (s *Service) Stop() {
	s.stopOnce.Do(func() { close(s.quit) })
	s.wg.Wait()
}

// Download runs the full pipeline for url and blocks until a worker finishes
// it or ctx is cancelled. Quality must already be validated by the caller.
func (s *Service) Download(ctx context.Context, url, quality string) (*Result, error) {
	j := &job{ctx: ctx, url: url, quality: quality, done: make(chan jobResult, 1)}

	select {
	case s.jobs <- j:
	case <-s.quit:
		return nil, ErrStopped
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	select {
	case res := <-j.done:
		return res.result, res.err
	case <-ctx.Done():
		// The job was already handed to a worker, which always delivers to
		// j.done. Its result has no consumer now, so reclaim the workspace
		// here or it would linger until the next stale sweep.
		go func() {
			if res := <-j.done; res.result != nil {
				s.workspaces.Release(res.result.WorkspacePath)
			}
		}()
		return nil, ctx.Err()
	}
}

func (s *Service) worker(ctx context.Context) {
	defer s.wg.Done()
	for {
		select {
		case <-s.quit:
			return
		case <-ctx.Done():
			return
		case j := <-s.jobs:
			if err := j.ctx.Err(); err != nil {
				j.done <- jobResult{err: err}
				continue
			}
			result, err := s.process(j.ctx, j.url, j.quality)
			j.done <- jobResult{result: result, err: err}
		}
	}
}

// process runs one download end to end. On failure the workspace is released
// before the error crosses back to the caller; on success the caller takes
// ownership of the workspace.
func (s *Service) process(ctx context.Context, url, quality string) (*Result, error) {
	logger := logging.WithContext(ctx, s.logger)

	started := time.Now()
	ws, err := s.workspaces.Allocate()
	if err != nil {
		return nil, err
	}

	info, err := s.extractor.Extract(ctx, url, ws)
	if err != nil {
		s.workspaces.Release(ws)
		s.notifyError(err, "download")
		return nil, err
	}

	thumbnail := artwork.ReadBase64(ws)
	if thumbnail == "" {
		logger.Warn("no thumbnail found", logging.String("url", url))
	}

	s.embedCoverArt(ctx, logger, info.AudioPath, ws)

	title := textutil.CleanTitle(info.Title)
	artist := info.Artist
	if artist == "" {
		artist = info.Uploader
	}

	stat, err := os.Stat(info.AudioPath)
	if err != nil {
		s.workspaces.Release(ws)
		return nil, services.Wrap(services.ErrStorage, "downloader", "stat", "read audio artifact size", err)
	}

	result := &Result{
		YoutubeID:       info.ID,
		Title:           title,
		Artist:          artist,
		Duration:        info.Duration,
		Quality:         quality,
		AudioPath:       info.AudioPath,
		ThumbnailBase64: thumbnail,
		WorkspacePath:   ws,
		FileSize:        stat.Size(),
	}

	s.recordHistory(ctx, logger, result, url)
	if notifyErr := s.notifier.NotifyDownloadCompleted(context.WithoutCancel(ctx), title, artist, time.Duration(info.Duration)*time.Second); notifyErr != nil {
		logger.Warn("download notification failed", logging.Error(notifyErr))
	}

	logger.Info("download complete",
		logging.String("youtube_id", info.ID),
		logging.String("title", title),
		logging.Int("duration_seconds", info.Duration),
		logging.Int64("file_size", result.FileSize),
		logging.Duration("elapsed", time.Since(started)))

	return result, nil
}

// embedCoverArt is best effort. A missing ffmpeg or a failed embed downgrades
// the track to plain audio rather than failing the download.
func (s *Service) embedCoverArt(ctx context.Context, logger *slog.Logger, audioPath, ws string) {
	if s.embedder == nil {
		return
	}
	imagePath := artwork.FindThumbnail(ws)
	if imagePath == "" {
		return
	}
	if err := s.embedder.EmbedCoverArt(ctx, audioPath, imagePath); err != nil {
		logger.Warn("cover art embedding failed", logging.Error(err))
	}
}

func (s *Service) recordHistory(ctx context.Context, logger *slog.Logger, result *Result, url string) {
	if s.store == nil {
		return
	}
	_, err := s.store.Record(context.WithoutCancel(ctx), history.Entry{
		YoutubeID:       result.YoutubeID,
		Title:           result.Title,
		Artist:          result.Artist,
		DurationSeconds: result.Duration,
		Quality:         result.Quality,
		FileSize:        result.FileSize,
		RequestedURL:    url,
	})
	if err != nil {
		logger.Warn("history record failed", logging.Error(err))
	}
}

func (s *Service) notifyError(err error, label string) {
	if notifyErr := s.notifier.NotifyError(context.Background(), err, label); notifyErr != nil {
		s.logger.Warn("error notification failed", logging.Error(notifyErr))
	}
}

// ReleaseWorkspace hands workspace reclamation through to the manager so
// callers holding a Result do not need the manager itself.
func (s *Service) ReleaseWorkspace(path string) {
	s.workspaces.Release(path)
}

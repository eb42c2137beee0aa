package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"hometunes/internal/config"
	"hometunes/internal/downloader"
	"hometunes/internal/history"
	"hometunes/internal/logging"
)

// Version is reported by GET /health and GET /.
const Version = "1.0.0"

// Server exposes the download pipeline over HTTP.
type Server struct {
	cfg       *config.Config
	logger    *slog.Logger
	downloads *downloader.Service
	store     *history.Store

	listener net.Listener
	server   *http.Server
}

// New builds the HTTP server. store may be nil when history is disabled.
func New(cfg *config.Config, downloads *downloader.Service, store *history.Store, logger *slog.Logger) *Server {
	if logger == nil {
		logger = logging.NewNop()
	}
	srv := &Server{
		cfg:       cfg,
		logger:    logger.With(logging.String(logging.FieldComponent, "api-server")),
		downloads: downloads,
		store:     store,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", srv.handleIndex)
	mux.HandleFunc("/health", srv.handleHealth)
	mux.HandleFunc("/download", srv.handleDownload)
	mux.HandleFunc("/api/history", srv.handleHistory)

	// No WriteTimeout: responses stream large audio payloads and extraction
	// itself can take minutes on slow networks.
	srv.server = &http.Server{
		Handler:           srv.withRequestID(srv.withCORS(mux)),
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return srv
}

// Handler returns the root handler, primarily for tests.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start begins serving on the configured bind address. Serving stops when
// ctx is cancelled or Stop is called.
func (s *Server) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.cfg.Bind())
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.cfg.Bind(), err)
	}
	s.listener = listener

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("http server error", logging.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}()

	s.logger.Info("listening", logging.String("address", listener.Addr().String()))
	return nil
}

// Stop gracefully shuts the server down.
func (s *Server) Stop() {
	if s == nil || s.server == nil {
		return
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = s.server.Shutdown(shutdownCtx)
	if s.listener != nil {
		_ = s.listener.Close()
		s.listener = nil
	}
}

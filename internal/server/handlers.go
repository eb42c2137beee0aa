package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"hometunes/internal/api"
	"hometunes/internal/logging"
	"hometunes/internal/services"
)

// withRequestID assigns a correlation id to every request so pipeline log
// lines can be traced back to the HTTP request that caused them.
func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		ctx := services.WithRequestID(r.Context(), requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// withCORS answers cross-origin requests permissively. The server sits on a
// home LAN and its clients are mobile apps and browser frontends on other
// origins, so every origin is allowed.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.Header().Set("Access-Control-Expose-Headers", "X-Metadata-Size, Content-Disposition")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "server_error", "method not allowed")
		return
	}
	s.writeJSON(w, http.StatusOK, api.IndexResponse{
		Name:    "HomeTunes",
		Version: Version,
		Endpoints: map[string]string{
			"health":   "GET /health",
			"download": "POST /download",
			"history":  "GET /api/history",
		},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "server_error", "method not allowed")
		return
	}
	s.writeJSON(w, http.StatusOK, api.HealthResponse{Status: "ok", Version: Version})
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "server_error", "method not allowed")
		return
	}

	var req api.DownloadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if !ValidSourceURL(req.URL) {
		s.writeError(w, http.StatusBadRequest, "invalid_request", "invalid YouTube URL")
		return
	}
	quality := strings.TrimSpace(req.Quality)
	if quality == "" {
		quality = s.cfg.Download.DefaultQuality
	}
	if !s.cfg.QualityAllowed(quality) {
		s.writeError(w, http.StatusBadRequest, "invalid_request",
			fmt.Sprintf("quality must be one of: %s", strings.Join(s.cfg.Download.AllowedQualities, ", ")))
		return
	}

	logger := logging.WithContext(r.Context(), s.logger)
	logger.Info("download requested", logging.String("url", req.URL), logging.String("quality", quality))

	result, err := s.downloads.Download(r.Context(), req.URL, quality)
	if err != nil {
		logger.Error("download failed", logging.Error(err))
		s.writeError(w, services.HTTPStatus(err), services.ErrorCode(err), services.Message(err))
		return
	}
	// The pipeline handed workspace ownership to this handler. Release runs
	// exactly once when the handler returns, including on client disconnect.
	defer s.downloads.ReleaseWorkspace(result.WorkspacePath)

	var thumbnail *string
	if result.ThumbnailBase64 != "" {
		thumbnail = &result.ThumbnailBase64
	}
	metadata, err := json.Marshal(api.TrackMetadata{
		Title:           result.Title,
		Artist:          result.Artist,
		Duration:        result.Duration,
		YoutubeID:       result.YoutubeID,
		FileSize:        result.FileSize,
		ThumbnailBase64: thumbnail,
	})
	if err != nil {
		logger.Error("metadata encoding failed", logging.Error(err))
		s.writeError(w, http.StatusInternalServerError, "server_error", "failed to encode metadata")
		return
	}
	metadata = append(metadata, '\n')

	audio, err := os.Open(result.AudioPath)
	if err != nil {
		logger.Error("audio artifact unreadable", logging.Error(err))
		s.writeError(w, http.StatusInternalServerError, "server_error", "failed to open audio artifact")
		return
	}
	defer audio.Close()

	w.Header().Set("Content-Type", "audio/mp4")
	w.Header().Set("X-Metadata-Size", strconv.Itoa(len(metadata)))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.YoutubeID+".m4a"))
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write(metadata); err != nil {
		logger.Warn("client disconnected before metadata", logging.Error(err))
		return
	}

	chunkSize := s.cfg.Download.ChunkSize
	if chunkSize <= 0 {
		chunkSize = 8192
	}
	written, err := io.CopyBuffer(w, audio, make([]byte, chunkSize))
	if err != nil {
		logger.Warn("stream interrupted",
			logging.Int64("bytes_written", written),
			logging.Error(err))
		return
	}
	logger.Info("stream complete",
		logging.String("youtube_id", result.YoutubeID),
		logging.Int64("bytes_written", written))
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "server_error", "method not allowed")
		return
	}
	if s.store == nil {
		s.writeJSON(w, http.StatusOK, api.HistoryResponse{})
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	entries, err := s.store.Recent(r.Context(), limit)
	if err != nil {
		s.logger.Error("history query failed", logging.Error(err))
		s.writeError(w, http.StatusInternalServerError, "server_error", "failed to read history")
		return
	}
	total, err := s.store.Count(r.Context())
	if err != nil {
		s.logger.Error("history count failed", logging.Error(err))
		s.writeError(w, http.StatusInternalServerError, "server_error", "failed to read history")
		return
	}

	payload := api.HistoryResponse{Total: total}
	for _, entry := range entries {
		payload.Entries = append(payload.Entries, api.HistoryEntry{
			ID:              entry.ID,
			YoutubeID:       entry.YoutubeID,
			Title:           entry.Title,
			Artist:          entry.Artist,
			DurationSeconds: entry.DurationSeconds,
			Quality:         entry.Quality,
			FileSize:        entry.FileSize,
			RequestedURL:    entry.RequestedURL,
			CreatedAt:       entry.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}
	s.writeJSON(w, http.StatusOK, payload)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response", logging.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, code, message string) {
	s.writeJSON(w, status, api.ErrorResponse{Error: code, Message: message})
}

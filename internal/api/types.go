package api

// DownloadRequest is the body accepted by POST /download.
type DownloadRequest struct {
	URL     string `json:"url"`
	Quality string `json:"quality,omitempty"`
}

// TrackMetadata is the JSON line sent ahead of the audio bytes.
type TrackMetadata struct {
	Title           string `json:"title"`
	Artist          string `json:"artist"`
	Duration        int    `json:"duration"`
	YoutubeID       string `json:"youtube_id"`
	FileSize        int64  `json:"file_size"`
	// Nil when no thumbnail was downloaded, so the field serializes
	// as an explicit null rather than an empty string.
	ThumbnailBase64 *string `json:"thumbnail_base64"`
}

// ErrorResponse is the body returned for failed requests.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// HealthResponse is returned by GET /health. Mobile clients use it as a
// connection test.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// IndexResponse is returned by GET /.
type IndexResponse struct {
	Name      string            `json:"name"`
	Version   string            `json:"version"`
	Endpoints map[string]string `json:"endpoints"`
}

// HistoryEntry is one recorded download as exposed over the API.
type HistoryEntry struct {
	ID              int64  `json:"id"`
	YoutubeID       string `json:"youtube_id"`
	Title           string `json:"title"`
	Artist          string `json:"artist"`
	DurationSeconds int    `json:"duration_seconds"`
	Quality         string `json:"quality"`
	FileSize        int64  `json:"file_size"`
	RequestedURL    string `json:"requested_url"`
	CreatedAt       string `json:"created_at"`
}

// HistoryResponse is returned by GET /api/history.
type HistoryResponse struct {
	Entries []HistoryEntry `json:"entries"`
	Total   int64          `json:"total"`
}

// Package downloader orchestrates the download pipeline: workspace
// allocation, yt-dlp extraction, thumbnail capture, cover art embedding,
// title cleanup, and history recording.
//
// Work runs on a bounded pool sized by download.workers so concurrent HTTP
// requests share a fixed number of external tool invocations. Successful
// results transfer workspace ownership to the caller; the workspace must be
// released exactly once after the audio has been streamed.
package downloader

// Package artwork handles the thumbnail image yt-dlp writes next to a
// downloaded audio artifact.
//
// The thumbnail travels two ways: base64 inside the metadata preamble for the
// mobile app, and embedded as cover art inside the audio container for
// third-party players (see internal/services/ffmpeg). The probe order over
// image extensions is fixed so repeated runs pick the same file.
package artwork

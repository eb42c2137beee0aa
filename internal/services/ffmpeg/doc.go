// Package ffmpeg wraps the external ffmpeg binary used to embed thumbnail
// images as cover art inside downloaded audio containers.
//
// Embedding is cosmetic: the mobile app reads the base64 thumbnail from the
// metadata preamble, while the embedded art exists for third-party players.
// The pipeline therefore treats every failure here, including a missing
// ffmpeg binary, as recoverable.
package ffmpeg

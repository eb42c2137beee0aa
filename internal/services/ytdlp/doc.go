// Package ytdlp wraps the external yt-dlp binary used to fetch audio from a
// media-source URL.
//
// The client drives one invocation per request: best-audio format selection
// favouring the source's native AAC stream, m4a extraction, metadata
// embedding, and a thumbnail written alongside the audio, all into the
// request's workspace. Item metadata is parsed from the tool's info JSON on
// stdout. The content duration cap is enforced once the tool reports the
// duration; the produced artifact is located by scanning the workspace so a
// silent postprocessor failure surfaces as its own error.
package ytdlp

// Package workspace manages the per-request temporary directories that hold
// download artifacts.
//
// Every download request gets its own uuid-named directory under the
// configured temp base; nothing is shared between concurrent requests.
// Release is best-effort and never fails the caller, since cleanup runs on
// success, failure, and mid-stream abort alike. CleanStale sweeps directories
// orphaned by a previous crash.
package workspace

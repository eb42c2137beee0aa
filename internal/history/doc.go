// Package history records completed downloads in a local SQLite database.
//
// Only track metadata is stored. The audio bytes themselves are streamed
// to the client and never written outside the per-request workspace.
package history

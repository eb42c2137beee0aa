// Package api defines the JSON payloads shared between the HTTP server and
// its clients, plus a small client the CLI uses to query a running daemon.
package api

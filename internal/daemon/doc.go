// Package daemon composes the download service, history store, and HTTP
// server into a single lifecycle with flock-based locking to prevent
// multiple hometunesd instances from sharing one temp directory.
package daemon

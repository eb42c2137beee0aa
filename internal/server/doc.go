// Package server exposes the download pipeline over HTTP.
//
// The response framing for POST /download is one UTF-8 JSON metadata line
// followed immediately by the raw m4a bytes. The X-Metadata-Size header
// declares the byte length of the JSON line including its trailing newline
// so clients can split the two without scanning.
package server

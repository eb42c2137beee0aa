// Package preflight provides readiness checks for the filesystem paths
// and external tools HomeTunes depends on.
//
// The daemon runs these checks once at startup and logs the outcome; the
// CLI "hometunes status" command uses the same functions to display host
// readiness without starting the server.
package preflight

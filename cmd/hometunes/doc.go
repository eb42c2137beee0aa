// Package main hosts the HomeTunes CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into HTTP
// calls against the daemon, host readiness checks, and configuration
// scaffolding. It centralizes configuration resolution and server address
// discovery so subcommands can focus on user experience instead of wiring.
package main

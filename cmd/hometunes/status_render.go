package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

type checkState int

const (
	stateOK checkState = iota
	stateWarn
	stateFail
)

// statusWriter prints the sectioned check report produced by the status
// command, with ANSI color when the destination is a terminal.
type statusWriter struct {
	out   io.Writer
	color bool
}

func newStatusWriter(out io.Writer) *statusWriter {
	color := false
	if file, ok := out.(*os.File); ok {
		fd := file.Fd()
		color = isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	}
	return &statusWriter{out: out, color: color}
}

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
)

func (w *statusWriter) section(title string) {
	header := fmt.Sprintf("== %s ==", title)
	rule := strings.Repeat("-", len(header))
	if w.color {
		header = ansiBlue + header + ansiReset
		rule = ansiBlue + rule + ansiReset
	}
	fmt.Fprintln(w.out, header)
	fmt.Fprintln(w.out, rule)
}

func (w *statusWriter) blank() {
	fmt.Fprintln(w.out)
}

func (w *statusWriter) check(label string, state checkState, detail string) {
	status := fmt.Sprintf("[%s]", state.tag())
	if detail != "" {
		status += " " + detail
	}
	line := fmt.Sprintf("  %-20s %s", label+":", status)
	if w.color {
		line = state.color() + line + ansiReset
	}
	fmt.Fprintln(w.out, line)
}

func (s checkState) tag() string {
	switch s {
	case stateWarn:
		return "WARN"
	case stateFail:
		return "ERROR"
	default:
		return "OK"
	}
}

func (s checkState) color() string {
	switch s {
	case stateWarn:
		return ansiYellow
	case stateFail:
		return ansiRed
	default:
		return ansiGreen
	}
}

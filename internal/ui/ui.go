// Package ui prints the line-oriented results of the non-interactive
// subcommands, with ANSI colors when the output is a terminal.
package ui

import (
	"fmt"
	"io"
)

// ANSI color codes.
const (
	reset  = "\033[0m"
	bold   = "\033[1m"
	dim    = "\033[2m"
	yellow = "\033[33m"
	green  = "\033[32m"
	red    = "\033[31m"
	cyan   = "\033[36m"
)

// Printer writes check results to w and counts failures.
type Printer struct {
	w        io.Writer
	color    bool
	failures int
	warnings int
}

// New returns a Printer writing to w. Colors are emitted only when color is
// true.
func New(w io.Writer, color bool) *Printer {
	return &Printer{w: w, color: color}
}

func (p *Printer) paint(code, s string) string {
	if !p.color {
		return s
	}
	return code + s + reset
}

// Heading prints a bold section title.
func (p *Printer) Heading(title string) {
	fmt.Fprintln(p.w, p.paint(bold+cyan, title))
}

// OK reports a passed check.
func (p *Printer) OK(format string, args ...any) {
	fmt.Fprintf(p.w, "%s %s\n", p.paint(green, "✓"), fmt.Sprintf(format, args...))
}

// Warn reports a non-fatal anomaly.
func (p *Printer) Warn(format string, args ...any) {
	p.warnings++
	fmt.Fprintf(p.w, "%s %s\n", p.paint(yellow+bold, "⚠"), fmt.Sprintf(format, args...))
}

// Fail reports a failed check.
func (p *Printer) Fail(format string, args ...any) {
	p.failures++
	fmt.Fprintf(p.w, "%s %s\n", p.paint(red+bold, "✗"), fmt.Sprintf(format, args...))
}

// Info prints a dimmed note.
func (p *Printer) Info(format string, args ...any) {
	fmt.Fprintln(p.w, p.paint(dim, "· "+fmt.Sprintf(format, args...)))
}

// Failures is the number of Fail calls so far.
func (p *Printer) Failures() int {
	return p.failures
}

// Summary prints the closing line and returns an error when any check failed.
func (p *Printer) Summary() error {
	switch {
	case p.failures > 0:
		fmt.Fprintln(p.w, p.paint(red+bold, fmt.Sprintf("%d check(s) failed, %d warning(s)", p.failures, p.warnings)))
		return fmt.Errorf("validation failed: %d check(s)", p.failures)
	case p.warnings > 0:
		fmt.Fprintln(p.w, p.paint(yellow, fmt.Sprintf("ok with %d warning(s)", p.warnings)))
	default:
		fmt.Fprintln(p.w, p.paint(green+bold, "all checks passed"))
	}
	return nil
}

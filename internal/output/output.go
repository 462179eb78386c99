// Package output provides formatted output utilities for the CLI.
package output

import (
	"fmt"
	"io"
	"os"
)

// ANSI escape sequences used when color is enabled.
const (
	reset  = "\033[0m"
	bold   = "\033[1m"
	red    = "\033[31m"
	green  = "\033[32m"
	yellow = "\033[33m"
	cyan   = "\033[36m"
)

// Writer handles CLI output formatting.
type Writer struct {
	out   io.Writer
	err   io.Writer
	color bool
	quiet bool
}

// New creates a new Writer with default settings.
func New() *Writer {
	return &Writer{
		out:   os.Stdout,
		err:   os.Stderr,
		color: isTerminal(),
	}
}

// NewWithWriters creates a Writer with custom io.Writers (for testing).
func NewWithWriters(out, err io.Writer, color bool) *Writer {
	return &Writer{out: out, err: err, color: color}
}

// SetQuiet enables or disables quiet mode.
func (w *Writer) SetQuiet(quiet bool) {
	w.quiet = quiet
}

// Print writes to stdout.
func (w *Writer) Print(format string, args ...interface{}) {
	fmt.Fprintf(w.out, format, args...)
}

// Println writes a line to stdout.
func (w *Writer) Println(format string, args ...interface{}) {
	fmt.Fprintf(w.out, format+"\n", args...)
}

// Info prints an info message (skipped in quiet mode).
func (w *Writer) Info(format string, args ...interface{}) {
	if w.quiet {
		return
	}
	w.Println(format, args...)
}

// Success prints a success message.
func (w *Writer) Success(format string, args ...interface{}) {
	if w.color {
		w.Println(green+format+reset, args...)
	} else {
		w.Println(format, args...)
	}
}

// Warning prints a warning message to stderr.
func (w *Writer) Warning(format string, args ...interface{}) {
	if w.color {
		fmt.Fprintf(w.err, yellow+"warning: "+format+reset+"\n", args...)
	} else {
		fmt.Fprintf(w.err, "warning: "+format+"\n", args...)
	}
}

// ErrorPrefix prints an error message to stderr with an "error:" prefix.
func (w *Writer) ErrorPrefix(format string, args ...interface{}) {
	if w.color {
		fmt.Fprintf(w.err, bold+red+"error: "+reset+red+format+reset+"\n", args...)
	} else {
		fmt.Fprintf(w.err, "error: "+format+"\n", args...)
	}
}

// Suggestion prints an indented actionable hint under an error.
func (w *Writer) Suggestion(text string) {
	if text == "" {
		return
	}
	if w.color {
		fmt.Fprintf(w.err, "  %shint:%s %s\n", cyan, reset, text)
	} else {
		fmt.Fprintf(w.err, "  hint: %s\n", text)
	}
}

// Heading prints a bold section heading.
func (w *Writer) Heading(format string, args ...interface{}) {
	if w.quiet {
		return
	}
	if w.color {
		w.Println(bold+format+reset, args...)
	} else {
		w.Println(format, args...)
	}
}

// isTerminal reports whether stdout is attached to a terminal.
func isTerminal() bool {
	info, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

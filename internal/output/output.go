// Package output provides formatted output utilities for the CLI and the
// doctest runner's failure reports.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Writer handles CLI output formatting.
type Writer struct {
	out     io.Writer
	err     io.Writer
	color   bool
	quiet   bool
	verbose bool
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
	return &Writer{
		out:   out,
		err:   err,
		color: color,
	}
}

// SetQuiet enables or disables quiet mode.
func (w *Writer) SetQuiet(quiet bool) {
	w.quiet = quiet
}

// SetVerbose enables or disables verbose mode.
func (w *Writer) SetVerbose(verbose bool) {
	w.verbose = verbose
}

// Print writes to stdout.
func (w *Writer) Print(format string, args ...interface{}) {
	fmt.Fprintf(w.out, format, args...)
}

// Println writes a line to stdout.
func (w *Writer) Println(format string, args ...interface{}) {
	fmt.Fprintf(w.out, format+"\n", args...)
}

// Error writes to stderr.
func (w *Writer) Error(format string, args ...interface{}) {
	fmt.Fprintf(w.err, format, args...)
}

// Errorln writes a line to stderr.
func (w *Writer) Errorln(format string, args ...interface{}) {
	fmt.Fprintf(w.err, format+"\n", args...)
}

// ErrorPrefix writes an error line with the program prefix.
func (w *Writer) ErrorPrefix(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if w.color {
		w.Errorln("%snumdoc:%s %s", red, reset, msg)
	} else {
		w.Errorln("numdoc: %s", msg)
	}
}

// Info prints an info message (skipped in quiet mode).
func (w *Writer) Info(format string, args ...interface{}) {
	if w.quiet {
		return
	}
	w.Println(format, args...)
}

// Verbose prints a message only in verbose mode.
func (w *Writer) Verbose(format string, args ...interface{}) {
	if !w.verbose || w.quiet {
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

// Warning prints a warning message.
func (w *Writer) Warning(format string, args ...interface{}) {
	if w.color {
		w.Errorln(yellow+"warning: "+format+reset, args...)
	} else {
		w.Errorln("warning: "+format, args...)
	}
}

// Section prints a section header. The title is normalized to title case
// so that summary headings look uniform regardless of how callers spell them.
func (w *Writer) Section(title string) {
	if w.quiet {
		return
	}
	title = cases.Title(language.English).String(title)
	w.Println("")
	if w.color {
		w.Println("%s=== %s ===%s", bold+cyan, title, reset)
	} else {
		w.Println("=== %s ===", title)
	}
}

// List prints a list of items.
func (w *Writer) List(items []string) {
	for _, item := range items {
		w.Println("  - %s", item)
	}
}

// TestName prints the name of the test-group being run (verbosity >= 1).
func (w *Writer) TestName(name string) {
	if w.quiet {
		return
	}
	w.Println("%s", name)
}

// ItemHeader prints an underlined test-group name, used to label failure
// transcripts in the report.
func (w *Writer) ItemHeader(name string) {
	if w.color {
		w.Errorln("\n %s%s%s\n %s", bold, name, reset, strings.Repeat("-", len(name)))
	} else {
		w.Errorln("\n %s\n %s", name, strings.Repeat("-", len(name)))
	}
}

// ExampleFailure prints the transcript of a failing example: its source,
// the documented expected output, and the actual captured output.
func (w *Writer) ExampleFailure(name string, line int, source, want, got string) {
	w.ItemHeader(name)
	w.Errorln("Line %d:", line)
	w.transcriptBlock("Failed example:", source)
	if strings.TrimSpace(want) == "" {
		w.Errorln("Expected nothing")
	} else {
		w.transcriptBlock("Expected:", want)
	}
	if strings.TrimSpace(got) == "" {
		w.Errorln("Got nothing")
	} else {
		w.transcriptBlock("Got:", got)
	}
}

// ExampleError prints the transcript of an example whose source raised.
func (w *Writer) ExampleError(name string, line int, source string, err error) {
	w.ItemHeader(name)
	w.Errorln("Line %d:", line)
	w.transcriptBlock("Failed example:", source)
	w.Errorln("Exception raised:")
	if w.color {
		w.Errorln("    %s%v%s", red, err, reset)
	} else {
		w.Errorln("    %v", err)
	}
}

// ExampleSuccess prints the transcript of a passing example (max verbosity).
func (w *Writer) ExampleSuccess(source, got string) {
	if !w.verbose {
		return
	}
	w.transcriptBlock("Trying:", source)
	if strings.TrimSpace(got) == "" {
		w.Println("ok (no output)")
	} else {
		w.transcriptBlock("ok, got:", got)
	}
}

func (w *Writer) transcriptBlock(label, body string) {
	w.Errorln("%s", label)
	for _, line := range strings.Split(strings.TrimRight(body, "\n"), "\n") {
		w.Errorln("    %s", line)
	}
}

// Summary prints the final failed/attempted counts.
func (w *Writer) Summary(failed, attempted int) {
	if w.quiet {
		return
	}
	if failed == 0 {
		w.Success("0 failed, %d attempted", attempted)
		return
	}
	if w.color {
		w.Println("%s%d failed, %d attempted%s", red, failed, attempted, reset)
	} else {
		w.Println("%d failed, %d attempted", failed, attempted)
	}
}

// isTerminal returns true if stdout is a terminal.
func isTerminal() bool {
	// Simple check - could be enhanced with golang.org/x/term
	if fi, _ := os.Stdout.Stat(); fi != nil {
		return (fi.Mode() & os.ModeCharDevice) != 0
	}
	return false
}

// ANSI color codes.
const (
	reset  = "\033[0m"
	bold   = "\033[1m"
	dim    = "\033[2m"
	red    = "\033[31m"
	green  = "\033[32m"
	yellow = "\033[33m"
	cyan   = "\033[36m"
)

// HelpTitle formats the main help title line.
func (w *Writer) HelpTitle(title string) {
	if w.color {
		w.Println("%s%s%s", bold+cyan, title, reset)
	} else {
		w.Println("%s", title)
	}
}

// HelpSection formats a section header (e.g., "Commands:").
func (w *Writer) HelpSection(title string) {
	w.Println("")
	if w.color {
		w.Println("%s%s%s", bold+yellow, title, reset)
	} else {
		w.Println("%s", title)
	}
}

// HelpEntry formats a command or flag with its description.
func (w *Writer) HelpEntry(name, description string, width int) {
	if w.color {
		w.Println("  %s%-*s%s  %s%s%s", cyan, width, name, reset, dim, description, reset)
	} else {
		w.Println("  %-*s  %s", width, name, description)
	}
}

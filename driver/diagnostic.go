package driver

import (
	"fmt"
	"io"
	"strings"

	"assertgen/colors"
	"assertgen/syntax"

	"github.com/charmbracelet/x/ansi"
)

const diagnosticWidth = 100

// WriteDiagnostic prints `err` for a terminal. `host` is the text the error's
// line and column refer to; when it contains that line, the line is shown
// with the error underlined.
func WriteDiagnostic(w io.Writer, err *syntax.Error, host string) {
	indent := "  "

	_, writeErr := fmt.Fprintf(w, "%s %s\n", colors.Location(err.Span.String()+":"), colors.Error(err.Message))
	if writeErr != nil {
		panic(writeErr)
	}

	if err.Reason != "" {
		rendered := ansi.Wordwrap(colors.Extra(err.Reason), diagnosticWidth-len(indent), " ")
		for _, line := range strings.Split(rendered, "\n") {
			_, writeErr := fmt.Fprintf(w, "%s%s\n", indent, line)
			if writeErr != nil {
				panic(writeErr)
			}
		}
	}

	line, ok := sourceLine(host, err.Span.Start.Line)
	if !ok {
		return
	}

	width := 1
	if err.Span.End.Line == err.Span.Start.Line && err.Span.End.Column > err.Span.Start.Column {
		width = err.Span.End.Column - err.Span.Start.Column
	}

	padding := caretPadding(line, err.Span.Start.Column-1)

	_, writeErr = fmt.Fprintf(w, "\n%s%s\n%s%s%s\n", indent, line, indent, padding, colors.Caret(strings.Repeat("^", width)))
	if writeErr != nil {
		panic(writeErr)
	}
}

func sourceLine(host string, line int) (string, bool) {
	if host == "" || line < 1 {
		return "", false
	}

	lines := strings.Split(host, "\n")
	if line > len(lines) {
		return "", false
	}

	return strings.TrimSuffix(lines[line-1], "\r"), true
}

// caretPadding keeps tabs so the caret lines up with the text above it.
func caretPadding(line string, column int) string {
	column = min(max(column, 0), len(line))

	var padding strings.Builder
	for _, c := range []byte(line[:column]) {
		if c == '\t' {
			padding.WriteByte('\t')
		} else {
			padding.WriteByte(' ')
		}
	}

	return padding.String()
}

// WriteDiagnostics prints every error and returns how many there were.
func WriteDiagnostics(w io.Writer, errs []*syntax.Error, hosts map[string]string) int {
	for i, err := range errs {
		if i > 0 {
			_, writeErr := fmt.Fprintln(w)
			if writeErr != nil {
				panic(writeErr)
			}
		}

		WriteDiagnostic(w, err, hosts[err.Span.Path])
	}

	return len(errs)
}

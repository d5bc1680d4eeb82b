package diag

import (
	"fmt"
	"io"
	"strings"
)

// LineCol converts a byte offset into a 1-based line and column
func LineCol(source string, offset int) (int, int) {
	if offset > len(source) {
		offset = len(source)
	}
	line := 1 + strings.Count(source[:offset], "\n")
	col := offset - strings.LastIndexByte(source[:offset], '\n')
	return line, col
}

// Render writes each diagnostic as "name:line:col: severity: message",
// followed by its notes and a caret line under the offending text.
func Render(w io.Writer, name, source string, ds Diagnostics) {
	for _, d := range ds {
		renderOne(w, name, source, d)
		for _, n := range d.Notes {
			renderOne(w, name, source, n)
		}
	}
}

func renderOne(w io.Writer, name, source string, d *Diagnostic) {
	line, col := LineCol(source, d.Range.Start)
	fmt.Fprintf(w, "%s:%d:%d: %s: %s [%s]\n", name, line, col, d.Severity(), d.Message(), d.Code)

	lines := strings.Split(source, "\n")
	if line-1 >= len(lines) {
		return
	}
	text := lines[line-1]
	width := d.Range.End - d.Range.Start
	if width < 1 {
		width = 1
	}
	if col-1+width > len(text) {
		width = max(1, len(text)-(col-1))
	}
	fmt.Fprintf(w, "  %s\n  %s%s\n", text, strings.Repeat(" ", col-1), strings.Repeat("^", width))
}

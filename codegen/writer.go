package codegen

import (
	"fmt"
	"strings"
)

// cWriter manages indented C++ output for the glue renderer. It
// encapsulates the output buffer, indentation level, and the #line
// directive emission used when fragments are interleaved with original
// source.
type cWriter struct {
	sb     strings.Builder
	indent int
}

// Linef writes an indented, formatted line with a trailing newline.
func (w *cWriter) Linef(format string, args ...interface{}) {
	w.sb.WriteString(strings.Repeat("\t", w.indent))
	fmt.Fprintf(&w.sb, format, args...)
	w.sb.WriteByte('\n')
}

// Blank writes an empty line.
func (w *cWriter) Blank() {
	w.sb.WriteByte('\n')
}

// Raw writes unindented text directly to the buffer.
func (w *cWriter) Raw(s string) {
	w.sb.WriteString(s)
}

// LineDirective emits a #line marker attributing subsequent lines to
// file:line.
func (w *cWriter) LineDirective(line int, file string) {
	fmt.Fprintf(&w.sb, "#line %d %q\n", line, file)
}

// Indent increases the indentation level.
func (w *cWriter) Indent() { w.indent++ }

// Dedent decreases the indentation level.
func (w *cWriter) Dedent() { w.indent-- }

// String returns the accumulated output.
func (w *cWriter) String() string { return w.sb.String() }

package codegen

import (
	"strings"

	"github.com/rubiojr/jsglue/scanner"
)

// Assemble interleaves verbatim source with rendered fragments. Original
// text is preserved byte for byte, and every fragment is bracketed by
// #line markers: one resetting attribution to the generated file, one
// restoring it to the input file at the next original line. A compiler
// error inside hand-written code therefore still reports the true input
// position.
func Assemble(src, inputName, outputName string, regions []scanner.Region, fragments []string) string {
	w := &cWriter{}
	cursor := 0
	line := 1
	for i, r := range regions {
		chunk := src[cursor:r.End]
		w.Raw(chunk)
		line += strings.Count(chunk, "\n")
		w.LineDirective(1, outputName)
		w.Raw(fragments[i])
		w.LineDirective(line, inputName)
		cursor = r.End
	}
	w.Raw(src[cursor:])
	return w.String()
}

// Package diag collects and prints generator diagnostics. A diagnostic
// names a position in the original input as file:line:column and is
// always advisory: the generator keeps going no matter how many are
// reported, deferring real failure to the native compiler that consumes
// the generated unit.
package diag

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"
)

// Diagnostic is one advisory message anchored to a source position.
// Line and Col are 1-based; Col counts bytes from the preceding line break.
type Diagnostic struct {
	File string
	Line int
	Col  int
	Msg  string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s:%d:%d: %s", d.File, d.Line, d.Col, d.Msg)
}

// Bag accumulates diagnostics in the order they are reported, which for a
// single forward pass over the input is source order.
type Bag struct {
	diags []Diagnostic
}

func NewBag() *Bag {
	return &Bag{}
}

// Add appends one diagnostic.
func (b *Bag) Add(d Diagnostic) {
	b.diags = append(b.diags, d)
}

// Addf appends a diagnostic with a formatted message.
func (b *Bag) Addf(file string, line, col int, format string, args ...interface{}) {
	b.Add(Diagnostic{File: file, Line: line, Col: col, Msg: fmt.Sprintf(format, args...)})
}

// Items returns the collected diagnostics in report order.
func (b *Bag) Items() []Diagnostic {
	return b.diags
}

func (b *Bag) Len() int {
	return len(b.diags)
}

// Position converts a byte offset into a 1-based line and column.
// Offsets past the end of src resolve to the position just after the
// last byte.
func Position(src string, off int) (line, col int) {
	if off > len(src) {
		off = len(src)
	}
	line = 1 + strings.Count(src[:off], "\n")
	col = off - strings.LastIndexByte(src[:off], '\n')
	return line, col
}

// SortByPosition orders diagnostics by line, then column. The member
// kinds are scanned independently, so restoring source order before
// printing takes one stable sort per region.
func SortByPosition(diags []Diagnostic) {
	sort.SliceStable(diags, func(i, j int) bool {
		if diags[i].Line != diags[j].Line {
			return diags[i].Line < diags[j].Line
		}
		return diags[i].Col < diags[j].Col
	})
}

var posColor = color.New(color.Bold)

// Fprint writes diagnostics to w, one per line, with the position prefix
// bolded when color output is enabled.
func Fprint(w io.Writer, diags []Diagnostic) {
	for _, d := range diags {
		pos := posColor.Sprintf("%s:%d:%d:", d.File, d.Line, d.Col)
		fmt.Fprintf(w, "%s %s\n", pos, d.Msg)
	}
}

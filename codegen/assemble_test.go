package codegen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rubiojr/jsglue/scanner"
)

func TestAssembleSingleRegion(t *testing.T) {
	src := "top\nstruct Foo : ScriptObject {\n};\nbottom\n"
	regions := scanner.Regions(src, "ScriptObject")
	require.Len(t, regions, 1)

	out := Assemble(src, "foo.cpp", "foo.generated.cpp", regions, []string{"\nFRAG\n"})

	want := "top\nstruct Foo : ScriptObject {\n};\n" +
		"#line 1 \"foo.generated.cpp\"\n" +
		"\nFRAG\n" +
		"#line 4 \"foo.cpp\"\n" +
		"bottom\n"
	assert.Equal(t, want, out)
}

func TestAssembleMultiRegion(t *testing.T) {
	src := "a\nstruct A : ScriptObject {\n};\nmid\nstruct B : ScriptObject {\n};\ntail\n"
	regions := scanner.Regions(src, "ScriptObject")
	require.Len(t, regions, 2)

	out := Assemble(src, "i.cpp", "o.cpp", regions, []string{"\n// A\n", "\n// B\n"})

	want := "a\nstruct A : ScriptObject {\n};\n" +
		"#line 1 \"o.cpp\"\n" +
		"\n// A\n" +
		"#line 4 \"i.cpp\"\n" +
		"mid\nstruct B : ScriptObject {\n};\n" +
		"#line 1 \"o.cpp\"\n" +
		"\n// B\n" +
		"#line 7 \"i.cpp\"\n" +
		"tail\n"
	assert.Equal(t, want, out)
}

func TestAssembleNoRegionsIsIdentity(t *testing.T) {
	src := "nothing tagged here\nint x;\n"
	assert.Equal(t, src, Assemble(src, "i.cpp", "o.cpp", nil, nil))
}

// A region that runs to end of input without a final newline keeps the
// plain concatenation: the reset marker lands directly after the last
// source byte.
func TestAssembleRegionAtEOFWithoutNewline(t *testing.T) {
	src := "struct Foo : ScriptObject {\n};"
	regions := scanner.Regions(src, "ScriptObject")
	require.Len(t, regions, 1)
	require.Equal(t, len(src), regions[0].End)

	out := Assemble(src, "i.cpp", "o.cpp", regions, []string{"\nFRAG\n"})

	want := "struct Foo : ScriptObject {\n};" +
		"#line 1 \"o.cpp\"\n" +
		"\nFRAG\n" +
		"#line 2 \"i.cpp\"\n"
	assert.Equal(t, want, out)
}

// Dropping every marker-bracketed block from the output must leave the
// original file byte for byte.
func TestAssembleReconstructsSource(t *testing.T) {
	src := "#include \"a.h\"\n\nstruct A : ScriptObject {\n\tJSValueRef jsget_x(JSValueRef *exc);\n};\n\nstatic int n;\n\nclass B : ScriptObject {\n};\nint tail() { return 0; }\n"
	regions := scanner.Regions(src, "ScriptObject")
	require.Len(t, regions, 2)

	out := Assemble(src, "i.cpp", "o.cpp", regions, []string{"\n// glue A\n", "\n// glue B\n"})

	var kept strings.Builder
	skip := false
	for _, ln := range strings.SplitAfter(out, "\n") {
		switch {
		case ln == "#line 1 \"o.cpp\"\n":
			skip = true
		case skip && strings.HasPrefix(ln, "#line "):
			skip = false
		case !skip:
			kept.WriteString(ln)
		}
	}
	assert.Equal(t, src, kept.String())
}

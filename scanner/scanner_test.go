package scanner

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const marker = "ScriptObject"

func TestScanner_SingleRegion(t *testing.T) {
	src := "#include <x.h>\n" +
		"struct Foo : ScriptObject {\n" +
		"\tint x;\n" +
		"};\n" +
		"int tail;\n"

	regions := Regions(src, marker)
	require.Len(t, regions, 1)

	r := regions[0]
	assert.Equal(t, "Foo", r.Name)
	assert.Equal(t, strings.Index(src, "struct Foo"), r.Start)
	// span ends just past the line break after the closing brace
	assert.Equal(t, strings.Index(src, "};\n")+3, r.End)
	assert.Equal(t, "int tail;\n", src[r.End:])
}

func TestScanner_ClassKeyword(t *testing.T) {
	src := "class Bar : ScriptObject {\n};\n"
	regions := Regions(src, marker)
	require.Len(t, regions, 1)
	assert.Equal(t, "Bar", regions[0].Name)
}

func TestScanner_NestedBraces(t *testing.T) {
	src := "struct Foo : ScriptObject {\n" +
		"\tvoid helper() { if (x) { y(); } }\n" +
		"\tstruct Inner { int z; };\n" +
		"};\n" +
		"after\n"

	regions := Regions(src, marker)
	require.Len(t, regions, 1)
	assert.Equal(t, "after\n", src[regions[0].End:])
}

func TestScanner_SingleLineDefinition(t *testing.T) {
	src := "struct Foo : ScriptObject { JSValueRef jsget_bar(JSValueRef* exc); };\nrest\n"
	regions := Regions(src, marker)
	require.Len(t, regions, 1)
	assert.Equal(t, "Foo", regions[0].Name)
	assert.Equal(t, 0, regions[0].Start)
	assert.Equal(t, "rest\n", src[regions[0].End:])
}

func TestScanner_NoTrailingNewline(t *testing.T) {
	src := "struct Foo : ScriptObject {\n};"
	regions := Regions(src, marker)
	require.Len(t, regions, 1)
	assert.Equal(t, len(src), regions[0].End)
}

func TestScanner_MultipleRegionsDisjointAndOrdered(t *testing.T) {
	src := "struct A : ScriptObject {\n};\n" +
		"int between;\n" +
		"class B : ScriptObject {\n};\n" +
		"struct C : ScriptObject {\n};\n"

	regions := Regions(src, marker)
	require.Len(t, regions, 3)
	assert.Equal(t, "A", regions[0].Name)
	assert.Equal(t, "B", regions[1].Name)
	assert.Equal(t, "C", regions[2].Name)
	for i := 1; i < len(regions); i++ {
		assert.GreaterOrEqual(t, regions[i].Start, regions[i-1].End)
	}
}

func TestScanner_IgnoresUntaggedTypes(t *testing.T) {
	src := "struct Plain {\n};\n" +
		"struct Derived : OtherBase {\n};\n" +
		"struct Tagged : ScriptObject {\n};\n"

	regions := Regions(src, marker)
	require.Len(t, regions, 1)
	assert.Equal(t, "Tagged", regions[0].Name)
}

func TestScanner_CustomMarker(t *testing.T) {
	src := "struct Foo : Scriptable {\n};\n"
	assert.Empty(t, Regions(src, marker))

	regions := Regions(src, "Scriptable")
	require.Len(t, regions, 1)
	assert.Equal(t, "Foo", regions[0].Name)
}

func TestScanner_RestartableIteration(t *testing.T) {
	src := "struct A : ScriptObject {\n};\nstruct B : ScriptObject {\n};\n"
	sc := New(src, marker)

	a, ok := sc.Next()
	require.True(t, ok)
	assert.Equal(t, "A", a.Name)

	b, ok := sc.Next()
	require.True(t, ok)
	assert.Equal(t, "B", b.Name)
	assert.GreaterOrEqual(t, b.Start, a.End)

	_, ok = sc.Next()
	assert.False(t, ok)
	_, ok = sc.Next()
	assert.False(t, ok)
}

// Braces inside comments are counted like any other byte. The span of a
// definition whose body comments out a brace therefore closes early or
// late; pin that down so nobody "fixes" it casually.
func TestScanner_CommentBraceCorruptsSpan(t *testing.T) {
	src := "struct Foo : ScriptObject {\n" +
		"\t// stray {\n" +
		"};\n" +
		"after\n"

	regions := Regions(src, marker)
	require.Len(t, regions, 1)
	// the commented { raises depth, so the }; line no longer closes the span
	assert.Equal(t, len(src), regions[0].End)
}

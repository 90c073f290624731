package codegen

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rubiojr/jsglue/config"
	"github.com/rubiojr/jsglue/scanner"
)

// Benchmark the full generation pipeline (scan + extract + render +
// assemble) on the two-type fixture.
func BenchmarkGenerateSprite(b *testing.B) {
	data, err := os.ReadFile(filepath.Join("testdata", "sprite.cpp"))
	if err != nil {
		b.Fatal(err)
	}
	src := string(data)
	g := New(config.Default())

	b.ResetTimer()
	for b.Loop() {
		if _, err := g.Generate(context.Background(), src, "sprite.cpp", "sprite.generated.cpp"); err != nil {
			b.Fatal(err)
		}
	}
}

// manyRegions builds a source with n tagged definitions carrying a full
// member set each.
func manyRegions(n int) string {
	var sb strings.Builder
	for i := 0; i < n; i++ {
		name := fmt.Sprintf("Widget%d", i)
		fmt.Fprintf(&sb, "struct %s : ScriptObject {\n", name)
		fmt.Fprintf(&sb, "\t%s(int id);\n", name)
		sb.WriteString("\tbool init(size_t argc, const JSValueRef argv[], JSValueRef *exception);\n")
		sb.WriteString("\tJSValueRef jscall_update(size_t argc, const JSValueRef argv[], JSValueRef *exception);\n")
		sb.WriteString("\tJSValueRef jsget_id(JSValueRef *exception);\n")
		sb.WriteString("\tbool jsset_id(JSValueRef value, JSValueRef *exception);\n")
		sb.WriteString("};\n\n")
	}
	return sb.String()
}

func BenchmarkGenerateManyRegions(b *testing.B) {
	src := manyRegions(100)
	g := New(config.Default())

	b.ResetTimer()
	for b.Loop() {
		if _, err := g.Generate(context.Background(), src, "many.cpp", "many.generated.cpp"); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkGenerateManyRegionsParallel(b *testing.B) {
	src := manyRegions(100)
	g := New(config.Default())
	g.Jobs = 4

	b.ResetTimer()
	for b.Loop() {
		if _, err := g.Generate(context.Background(), src, "many.cpp", "many.generated.cpp"); err != nil {
			b.Fatal(err)
		}
	}
}

// Benchmark region scanning only.
func BenchmarkScanRegions(b *testing.B) {
	src := manyRegions(100)

	b.ResetTimer()
	for b.Loop() {
		if got := scanner.Regions(src, "ScriptObject"); len(got) != 100 {
			b.Fatalf("expected 100 regions, got %d", len(got))
		}
	}
}

package codegen

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/rubiojr/jsglue/cache"
	"github.com/rubiojr/jsglue/config"
	"github.com/rubiojr/jsglue/diag"
	"github.com/rubiojr/jsglue/extract"
	"github.com/rubiojr/jsglue/scanner"
)

// Generator runs the whole pipeline: scan, extract, render, assemble.
// Extraction is sequential so diagnostics come out in source order;
// rendering fans out across regions when Jobs allows, with fragments
// reassembled in region order.
type Generator struct {
	Profile config.Profile
	Jobs    int
	Force   bool
	Cache   *cache.Cache
	Log     *zap.SugaredLogger
}

// Result is one file's generation outcome. Header is the companion
// declaration text, computed but never written. Cached means the output
// on disk was already current and the write was skipped.
type Result struct {
	Output      string
	Header      string
	OutPath     string
	Cached      bool
	Inventories []extract.Inventory
	Diags       []diag.Diagnostic
}

// New returns a Generator with sequential rendering and a no-op logger.
func New(profile config.Profile) *Generator {
	return &Generator{Profile: profile, Jobs: 1, Log: zap.NewNop().Sugar()}
}

// GeneratedName returns the output file name for an input path:
// <base>.generated<ext>.
func GeneratedName(inputPath string) string {
	base := filepath.Base(inputPath)
	ext := filepath.Ext(base)
	return strings.TrimSuffix(base, ext) + ".generated" + ext
}

// Generate runs the pipeline over src, which was read from inputName.
// outputName is the identity the generated unit's own #line markers
// carry.
func (g *Generator) Generate(ctx context.Context, src, inputName, outputName string) (*Result, error) {
	regions := scanner.Regions(src, g.Profile.Marker)
	g.Log.Debugw("scanned input", "file", inputName, "regions", len(regions))

	ex := extract.NewExtractor(g.Profile)
	invs := make([]extract.Inventory, len(regions))
	var diags []diag.Diagnostic
	for i, r := range regions {
		bag := diag.NewBag()
		invs[i] = ex.Extract(src, inputName, r, bag)
		regionDiags := bag.Items()
		diag.SortByPosition(regionDiags)
		diags = append(diags, regionDiags...)
		g.Log.Debugw("extracted region", "type", r.Name,
			"ctors", len(invs[i].Ctors), "methods", len(invs[i].Methods),
			"getters", len(invs[i].Getters), "setters", len(invs[i].Setters),
			"init", invs[i].HasInit)
	}

	fragments := make([]string, len(invs))
	if g.Jobs > 1 && len(invs) > 1 {
		eg, gctx := errgroup.WithContext(ctx)
		eg.SetLimit(g.Jobs)
		for i := range invs {
			eg.Go(func() error {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}
				fragments[i] = RenderFragment(NewContext(invs[i], g.Profile))
				return nil
			})
		}
		if err := eg.Wait(); err != nil {
			return nil, err
		}
	} else {
		for i := range invs {
			fragments[i] = RenderFragment(NewContext(invs[i], g.Profile))
		}
	}

	return &Result{
		Output:      Assemble(src, inputName, outputName, regions, fragments),
		Header:      Header(invs, g.Profile),
		Inventories: invs,
		Diags:       diags,
	}, nil
}

// GenerateFile runs the pipeline for inputPath and writes the generated
// unit under outDir, unless the cache proves the file on disk is already
// current. Diagnostics ride on the result; callers decide how to report
// them, and they never affect whether the output is written.
func (g *Generator) GenerateFile(ctx context.Context, inputPath, outDir string) (*Result, error) {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", inputPath, err)
	}
	src := string(data)
	outputName := GeneratedName(inputPath)
	outPath := filepath.Join(outDir, outputName)

	res, err := g.Generate(ctx, src, inputPath, outputName)
	if err != nil {
		return nil, err
	}
	res.OutPath = outPath

	inputSum := cache.Sum(src)
	profileSum := g.Profile.Sum()
	if !g.Force && g.Cache.Fresh(outPath, inputSum, profileSum) {
		g.Log.Debugw("output up to date", "path", outPath)
		res.Cached = true
		return res, nil
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return res, fmt.Errorf("creating %s: %w", outDir, err)
	}
	if err := os.WriteFile(outPath, []byte(res.Output), 0o644); err != nil {
		return res, fmt.Errorf("writing %s: %w", outPath, err)
	}
	if err := g.Cache.Store(outPath, inputSum, profileSum, cache.Sum(res.Output)); err != nil {
		g.Log.Debugw("cache store failed", "path", outPath, "error", err)
	}
	g.Log.Infow("wrote generated unit", "path", outPath, "regions", len(res.Inventories))
	return res, nil
}

// CheckFile runs scanning and extraction for inputPath without writing
// anything.
func (g *Generator) CheckFile(ctx context.Context, inputPath string) (*Result, error) {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", inputPath, err)
	}
	return g.Generate(ctx, string(data), inputPath, GeneratedName(inputPath))
}

// Package cmd implements the jsglue command line interface.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/rubiojr/jsglue/cache"
	"github.com/rubiojr/jsglue/codegen"
	"github.com/rubiojr/jsglue/config"
	"github.com/rubiojr/jsglue/diag"
	"github.com/rubiojr/jsglue/watcher"
)

const usageLine = "usage: jsglue <input file> <output dir>"

// errUsage marks argument problems that print as the bare usage line
// instead of a prefixed error.
var errUsage = errors.New(usageLine)

// toolVersion is set by Execute and feeds the cache manifest key.
var toolVersion string

// Execute runs the jsglue CLI with the given version string.
func Execute(version string) {
	toolVersion = version

	// -h/--help keeps the original contract: the one-line usage message
	// on stderr and exit status 1, never a generated help page.
	for _, arg := range os.Args[1:] {
		if arg == "-h" || arg == "--help" {
			fmt.Fprintln(os.Stderr, usageLine)
			os.Exit(1)
		}
	}

	cmd := &cli.Command{
		Name:                   "jsglue",
		Usage:                  "Generate script-bridge glue for tagged native types",
		Version:                version,
		UseShortOptionHandling: true,
		HideHelp:               true,
		Flags:                  genFlags(),
		// Allow `jsglue input.cpp out/` as shorthand for `jsglue gen`
		Action: genAction,
		Commands: []*cli.Command{
			{
				Name:      "gen",
				Usage:     "Generate the glue unit for a source file",
				ArgsUsage: "<input file> <output dir>",
				Flags:     genFlags(),
				Action:    genAction,
			},
			{
				Name:      "check",
				Usage:     "Report signature diagnostics without writing output",
				ArgsUsage: "<input file>",
				Flags:     checkFlags(),
				Action:    checkAction,
			},
			{
				Name:      "inspect",
				Usage:     "List the bridgeable members discovered per tagged type",
				ArgsUsage: "<input file>",
				Flags:     checkFlags(),
				Action:    inspectAction,
			},
			{
				Name:      "watch",
				Usage:     "Regenerate whenever the input file changes",
				ArgsUsage: "<input file> <output dir>",
				Flags:     genFlags(),
				Action:    watchAction,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, usageLine)
		} else {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

// checkFlags are shared by every command. Flag instances carry parse
// state, so each command gets its own slice.
func checkFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Profile file (defaults to jsglue.toml when present)",
		},
		&cli.BoolFlag{
			Name:  "debug",
			Usage: "Enable debug logging",
		},
		&cli.BoolFlag{
			Name:    "no-color",
			Aliases: []string{"C"},
			Usage:   "Disable ANSI color output",
		},
	}
}

// genFlags adds the generation-only flags on top of checkFlags.
func genFlags() []cli.Flag {
	return append(checkFlags(),
		&cli.BoolFlag{
			Name:    "force",
			Aliases: []string{"f"},
			Usage:   "Regenerate even when the cache says the output is current",
		},
		&cli.IntFlag{
			Name:    "jobs",
			Aliases: []string{"j"},
			Usage:   "Render regions in parallel",
			Value:   1,
		},
	)
}

// newGenerator builds the pipeline pieces every command needs: color
// policy, profile, and logger.
func newGenerator(cmd *cli.Command) (*codegen.Generator, error) {
	if cmd.Bool("no-color") || os.Getenv("NO_COLOR") != "" || !term.IsTerminal(int(os.Stderr.Fd())) {
		color.NoColor = true
	}

	var profile config.Profile
	var err error
	if path := cmd.String("config"); path != "" {
		profile, err = config.Load(path)
	} else {
		profile, err = config.Discover()
	}
	if err != nil {
		return nil, err
	}

	g := codegen.New(profile)
	if cmd.Bool("debug") {
		zl, err := zap.NewDevelopment()
		if err != nil {
			return nil, fmt.Errorf("creating logger: %w", err)
		}
		g.Log = zl.Sugar()
	}
	return g, nil
}

// applyGenFlags wires the pieces only generating commands use: force,
// parallelism, and the output manifest cache. A cache that cannot be
// opened degrades to regenerating every time.
func applyGenFlags(cmd *cli.Command, g *codegen.Generator) {
	g.Force = cmd.Bool("force")
	if jobs := cmd.Int("jobs"); jobs > 1 {
		g.Jobs = jobs
	}
	if c, err := cache.Open(toolVersion); err != nil {
		g.Log.Warnw("cache unavailable", "error", err)
	} else {
		g.Cache = c
	}
}

func genAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() < 2 {
		return errUsage
	}
	g, err := newGenerator(cmd)
	if err != nil {
		return err
	}
	applyGenFlags(cmd, g)

	args := cmd.Args().Slice()
	res, err := g.GenerateFile(ctx, args[0], args[1])
	if res != nil {
		diag.Fprint(os.Stderr, res.Diags)
	}
	return err
}

func checkAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() < 1 {
		return fmt.Errorf("usage: jsglue check [-c config] <input file>")
	}
	g, err := newGenerator(cmd)
	if err != nil {
		return err
	}
	res, err := g.CheckFile(ctx, cmd.Args().First())
	if err != nil {
		return err
	}
	diag.Fprint(os.Stderr, res.Diags)
	if len(res.Diags) > 0 {
		os.Exit(1)
	}
	return nil
}

func watchAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() < 2 {
		return errUsage
	}
	g, err := newGenerator(cmd)
	if err != nil {
		return err
	}
	applyGenFlags(cmd, g)

	args := cmd.Args().Slice()
	input, outDir := args[0], args[1]

	// Errors during a regeneration round are reported and the watch
	// keeps going; only a failure to set up the watch itself is fatal.
	regen := func() {
		res, err := g.GenerateFile(ctx, input, outDir)
		if res != nil {
			diag.Fprint(os.Stderr, res.Diags)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
	}
	regen()

	w, err := watcher.New(input, g.Log, regen)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	g.Log.Infow("watching for changes", "file", input)
	return w.Run(ctx)
}

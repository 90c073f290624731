package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/rubiojr/jsglue/config"
	"github.com/rubiojr/jsglue/diag"
	"github.com/rubiojr/jsglue/extract"
)

// inspectAction lists what extraction discovered per tagged type.
// Diagnostics still go to stderr; the listing goes to stdout and the
// exit status stays 0.
func inspectAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() < 1 {
		return fmt.Errorf("usage: jsglue inspect [-c config] <input file>")
	}
	g, err := newGenerator(cmd)
	if err != nil {
		return err
	}
	input := cmd.Args().First()
	res, err := g.CheckFile(ctx, input)
	if err != nil {
		return err
	}
	diag.Fprint(os.Stderr, res.Diags)

	fmt.Printf("File: %s\n", input)
	fmt.Printf("Regions: %d\n", len(res.Inventories))
	for _, inv := range res.Inventories {
		fmt.Printf("\n%s\n", inv.Region.Name)
		printInventory(inv, g.Profile)
	}
	return nil
}

func printInventory(inv extract.Inventory, p config.Profile) {
	if len(inv.Ctors) == 0 {
		fmt.Printf("  + %-28s [implicit constructor]\n", inv.Region.Name+"()")
	}
	for _, c := range inv.Ctors {
		fmt.Printf("  + %-28s [constructor]\n", fmt.Sprintf("%s(%s)", inv.Region.Name, c.Raw))
	}
	if inv.HasInit {
		fmt.Printf("  ! %-28s [initializer]\n", p.InitName)
	}
	groups := extract.Classify(inv.Getters, inv.Setters)
	for _, name := range groups.ReadWrite {
		fmt.Printf("  ~ %-28s [read-write]\n", name)
	}
	for _, name := range groups.ReadOnly {
		fmt.Printf("  ✓ %-28s [read-only]\n", name)
	}
	for _, m := range inv.Methods {
		fmt.Printf("  λ %-28s [method]\n", m.Name)
	}
}

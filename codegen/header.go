package codegen

import (
	"fmt"
	"strings"

	"github.com/rubiojr/jsglue/config"
	"github.com/rubiojr/jsglue/extract"
)

// Header returns the companion declaration text: one public factory
// signature per tagged type, taken from its first constructor (or the
// implicit zero-argument one). The text is computed alongside the
// generated unit but never written to disk.
func Header(invs []extract.Inventory, profile config.Profile) string {
	var sb strings.Builder
	for _, inv := range invs {
		var ctor extract.Ctor
		if len(inv.Ctors) > 0 {
			ctor = inv.Ctors[0]
		}
		fmt.Fprintf(&sb, "JSObjectRef %s_new(%s);\n", inv.Region.Name, factoryParams(ctor, profile))
	}
	return sb.String()
}

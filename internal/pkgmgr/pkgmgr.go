// Package pkgmgr is the read-only boundary to platform package managers and
// install-inventory tools (pacman, vswhere). It answers "what is installed
// where" and never installs anything.
package pkgmgr

import (
	"context"
	"strings"

	"github.com/ccenv/ccenv/internal/execx"
	"github.com/ccenv/ccenv/internal/family"
)

// Package is one installed package as reported by an inventory tool.
// Fields may be empty when the tool does not report them: pacman reports
// name and version, vswhere reports only locations.
type Package struct {
	Name     string
	Version  string
	Location string
}

// Query runs the family's inventory tool and parses its output. A missing
// tool, nonzero exit or timeout yields (nil, false): inventory absence is
// "no information", not an error.
func Query(ctx context.Context, runner execx.Runner, inv *family.InventoryConfig) ([]Package, bool) {
	if inv == nil || inv.Tool == "" {
		return nil, false
	}
	if _, ok := runner.LookPath(inv.Tool); !ok {
		return nil, false
	}

	res, err := runner.Run(ctx, execx.InventoryQueryTimeout, inv.Tool, inv.Args...)
	if err != nil || !res.Ok() {
		return nil, false
	}

	pkgs := parse(res.Stdout, inv.Parse)
	if len(pkgs) == 0 {
		return nil, false
	}
	return pkgs, true
}

// parse splits inventory output by the configured shape. "pairs" expects
// "name version" per line; "paths" expects one installation root per line.
func parse(out, mode string) []Package {
	var pkgs []Package
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		switch mode {
		case "paths":
			pkgs = append(pkgs, Package{Location: line})
		default: // "pairs"
			name, version, _ := strings.Cut(line, " ")
			pkgs = append(pkgs, Package{Name: name, Version: strings.TrimSpace(version)})
		}
	}
	return pkgs
}

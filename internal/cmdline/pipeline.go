package cmdline

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/folidity-lang/folidity/internal/diag"
	"github.com/folidity-lang/folidity/internal/ir"
	"github.com/folidity-lang/folidity/internal/parser"
	"github.com/folidity-lang/folidity/internal/resolver"
)

// loadAndResolve runs passes 1 through 8 (parse, then resolver.Resolve) over
// the file at path, the common prefix every subcommand shares.
func loadAndResolve(path string) (src string, filename string, contract *ir.Contract, bus *diag.Bus, err error) {
	data, readErr := os.ReadFile(path)
	if readErr != nil {
		return "", "", nil, nil, errors.Wrapf(readErr, "reading %s", path)
	}
	src = string(data)
	filename = filepath.Base(path)

	bus = &diag.Bus{}
	tree := parser.Parse(src, bus)
	contract = resolver.Resolve(tree, bus)
	return src, filename, contract, bus, nil
}

// report prints every diagnostic on bus and returns ErrDiagnostics if any
// were Error-level, gating progression past a pass per spec §7.
func report(c *Command, src, filename string, bus *diag.Bus) error {
	diag.Present(c.Stderr(), src, filename, bus.All())
	if bus.HasErrors() {
		return ErrDiagnostics
	}
	return nil
}

// Package resolver implements the compiler's semantic middle end: the
// multi-pass resolver that turns internal/fast's untyped parse tree into
// internal/ir's typed, symbol-linked IR (spec §2, §4).
package resolver

import (
	"github.com/folidity-lang/folidity/internal/diag"
	"github.com/folidity-lang/folidity/internal/fast"
	"github.com/folidity-lang/folidity/internal/ir"
	"github.com/folidity-lang/folidity/internal/types"
)

// reservedTypeNames are identifiers a declaration may not use as its own
// name (spec §4.1).
var reservedTypeNames = map[string]bool{
	"model": true, "state": true, "enum": true, "fn": true,
	"mapping": true, "list": true, "set": true, "int": true,
	"uint": true, "float": true, "string": true, "address": true,
	"hex": true, "char": true, "bool": true, "unit": true,
}

const maxEnumVariants = 120

type delayedStruct struct {
	Handle types.Handle
	Node   *fast.StructDecl
}

type delayedModel struct {
	Handle types.Handle
	Node   *fast.ModelDecl
}

type delayedState struct {
	Handle types.Handle
	Node   *fast.StateDecl
}

type delayedFunction struct {
	Handle types.Handle
	Node   *fast.FunctionDecl
}

// resolver holds the cross-pass state threaded through one compilation run.
type resolver struct {
	contract *ir.Contract

	delayedStructs   []delayedStruct
	delayedModels    []delayedModel
	delayedStates    []delayedState
	delayedFunctions []delayedFunction
}

// Resolve runs every semantic pass in spec §2's order over src, returning
// the fully typed contract. Errors accumulate on bus; callers check
// bus.HasErrors() before proceeding to verification (spec §7).
func Resolve(src *fast.Source, bus *diag.Bus) *ir.Contract {
	r := &resolver{contract: ir.NewContract(bus)}

	r.resolveDeclarations(src)
	r.resolveFields()
	r.resolveFunctionSignatures(src)
	r.resolveInheritance()
	r.resolveFunctionBodies()
	r.resolveBounds()

	return r.contract
}

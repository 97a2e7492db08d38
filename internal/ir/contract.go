// Package ir is the typed, symbol-linked intermediate representation the
// resolver (internal/resolver) produces and the verifier (internal/verifier)
// and emitter (internal/emitter) consume. It mirrors
// folidity_semantics::{contract,ast,global_symbol,symtable} from the
// original implementation, adapted to Go's lack of cyclic ownership: every
// cross-entity reference is a types.Handle into one of Contract's vectors,
// never a pointer (spec §9).
package ir

import (
	"github.com/folidity-lang/folidity/internal/diag"
	"github.com/folidity-lang/folidity/internal/source"
	"github.com/folidity-lang/folidity/internal/types"
)

// DeclSymbol is a tagged handle into a global declaration vector, plus the
// span of its defining identifier (used for "already defined" diagnostics
// that need to point back at the first definition).
type DeclSymbol struct {
	Handle types.Handle
	Span   source.Span
}

// Contract is the root IR: a flat arena of declaration vectors plus the
// global symbol table and diagnostic sink. It owns every IR node; nothing
// outside it holds a node by pointer across passes, only by handle.
type Contract struct {
	Enums     []*EnumDecl
	Structs   []*StructDecl
	Models    []*ModelDecl
	States    []*StateDecl
	Functions []*Function

	// DeclarationSymbols maps an identifier to its tagged global handle.
	DeclarationSymbols map[string]DeclSymbol

	// NextVarID is the monotonically increasing id handed out to scoped
	// variables across the whole contract (spec §3 "Scopes and symbol
	// table"); it is never reset mid-compilation.
	NextVarID int

	Diagnostics *diag.Bus
}

func NewContract(bus *diag.Bus) *Contract {
	return &Contract{
		DeclarationSymbols: make(map[string]DeclSymbol),
		Diagnostics:        bus,
	}
}

// AllocVarID hands out the next globally-unique variable id.
func (c *Contract) AllocVarID() int {
	id := c.NextVarID
	c.NextVarID++
	return id
}

// Lookup resolves a global identifier to its declaration symbol. It does not
// itself push a diagnostic on miss: callers hold the span of the referencing
// identifier (which may differ from any span stored in the IR), so they are
// better placed to report "not declared" themselves.
func (c *Contract) Lookup(name string) (DeclSymbol, bool) {
	s, ok := c.DeclarationSymbols[name]
	return s, ok
}

// Define registers name against handle at span, reporting and refusing the
// redefinition if the name is already taken. The first definition always
// wins (spec §4.1).
func (c *Contract) Define(name string, handle types.Handle, span source.Span) bool {
	if existing, ok := c.DeclarationSymbols[name]; ok {
		c.Diagnostics.Push(diag.SemanticError(span,
			"%s %q already defined", existing.Handle.Kind, name).
			WithNotes(diag.SemanticError(existing.Span, "first defined here")))
		return false
	}
	c.DeclarationSymbols[name] = DeclSymbol{Handle: handle, Span: span}
	return true
}

// Enum returns the declaration a handle of kind DeclEnum points at.
func (c *Contract) Enum(h types.Handle) *EnumDecl { return c.Enums[h.Index] }

// Struct returns the declaration a handle of kind DeclStruct points at.
func (c *Contract) Struct(h types.Handle) *StructDecl { return c.Structs[h.Index] }

// Model returns the declaration a handle of kind DeclModel points at.
func (c *Contract) Model(h types.Handle) *ModelDecl { return c.Models[h.Index] }

// State returns the declaration a handle of kind DeclState points at.
func (c *Contract) State(h types.Handle) *StateDecl { return c.States[h.Index] }

// Function returns the declaration a handle of kind DeclFunction points at.
func (c *Contract) Function(h types.Handle) *Function { return c.Functions[h.Index] }

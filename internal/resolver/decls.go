package resolver

import (
	"github.com/folidity-lang/folidity/internal/diag"
	"github.com/folidity-lang/folidity/internal/fast"
	"github.com/folidity-lang/folidity/internal/ir"
	"github.com/folidity-lang/folidity/internal/types"
)

// resolveDeclarations is pass 1 (spec §4.1): registers global names,
// allocates stub IR entries for Struct/Model/State, fully resolves Enums
// in-place, and records delayed entries for field/body resolution.
func (r *resolver) resolveDeclarations(src *fast.Source) {
	for _, d := range src.Declarations {
		switch n := d.(type) {
		case *fast.EnumDecl:
			r.analyzeEnum(n)
		case *fast.StructDecl:
			r.analyzeStruct(n)
		case *fast.ModelDecl:
			r.analyzeModel(n)
		case *fast.StateDecl:
			r.analyzeState(n)
		// FunctionDecl is handled by resolveFunctionSignatures, which runs
		// after fields so a function's parameter/return types can already
		// resolve against struct/model/state declarations.
		case *fast.FunctionDecl:
		}
	}
}

// checkReserved reports and returns false when name is a reserved type
// keyword (spec §4.1 "Reserved names").
func (r *resolver) checkReserved(name fast.Identifier) bool {
	if reservedTypeNames[name.Name] {
		r.contract.Diagnostics.Push(diag.SemanticError(name.Span,
			"%q is a reserved name and cannot be used as a declaration name", name.Name))
		return false
	}
	return true
}

func (r *resolver) analyzeEnum(n *fast.EnumDecl) {
	if !r.checkReserved(n.Name) {
		return
	}
	if len(n.Variants) == 0 {
		r.contract.Diagnostics.Push(diag.SemanticError(n.SourceSpan, "enum %q must declare at least one variant", n.Name.Name))
		return
	}
	if len(n.Variants) > maxEnumVariants {
		r.contract.Diagnostics.Push(diag.SemanticError(n.SourceSpan,
			"enum %q declares %d variants, exceeding the limit of %d", n.Name.Name, len(n.Variants), maxEnumVariants))
		return
	}

	decl := &ir.EnumDecl{Sp: n.SourceSpan, Name: n.Name.Name}
	seen := make(map[string]bool, len(n.Variants))
	for _, v := range n.Variants {
		if seen[v.Name] {
			r.contract.Diagnostics.Push(diag.SemanticError(v.Span, "duplicate enum variant %q", v.Name))
			continue
		}
		seen[v.Name] = true
		decl.Variants = append(decl.Variants, ir.EnumVariant{Name: v.Name, Sp: v.Span})
	}

	idx := len(r.contract.Enums)
	r.contract.Enums = append(r.contract.Enums, decl)
	r.contract.Define(n.Name.Name, types.Handle{Kind: types.DeclEnum, Index: idx}, n.Name.Span)
}

func (r *resolver) analyzeStruct(n *fast.StructDecl) {
	if !r.checkReserved(n.Name) {
		return
	}
	idx := len(r.contract.Structs)
	stub := &ir.StructDecl{Sp: n.SourceSpan, Name: n.Name.Name}
	r.contract.Structs = append(r.contract.Structs, stub)
	h := types.Handle{Kind: types.DeclStruct, Index: idx}
	if !r.contract.Define(n.Name.Name, h, n.Name.Span) {
		return
	}
	r.delayedStructs = append(r.delayedStructs, delayedStruct{Handle: h, Node: n})
}

func (r *resolver) analyzeModel(n *fast.ModelDecl) {
	if !r.checkReserved(n.Name) {
		return
	}
	idx := len(r.contract.Models)
	stub := &ir.ModelDecl{Sp: n.SourceSpan, Name: n.Name.Name}
	r.contract.Models = append(r.contract.Models, stub)
	h := types.Handle{Kind: types.DeclModel, Index: idx}
	if !r.contract.Define(n.Name.Name, h, n.Name.Span) {
		return
	}
	r.delayedModels = append(r.delayedModels, delayedModel{Handle: h, Node: n})
}

func (r *resolver) analyzeState(n *fast.StateDecl) {
	if !r.checkReserved(n.Name) {
		return
	}
	idx := len(r.contract.States)
	stub := &ir.StateDecl{Sp: n.SourceSpan, Name: n.Name.Name}
	r.contract.States = append(r.contract.States, stub)
	h := types.Handle{Kind: types.DeclState, Index: idx}
	if !r.contract.Define(n.Name.Name, h, n.Name.Span) {
		return
	}
	r.delayedStates = append(r.delayedStates, delayedState{Handle: h, Node: n})
}
